package cmdreg

import (
	"strings"
	"unicode"

	"golang.org/x/xerrors"
)

var (
	// ErrUnknownCommand is returned by Get when no command has the name.
	ErrUnknownCommand = xerrors.New("unknown command")
	// ErrInvalidSpec is returned by Register for commands that cannot be
	// dispatched to.
	ErrInvalidSpec = xerrors.New("invalid command spec")
)

// Registry maps command names to commands, keeping declaration order.
type Registry struct {
	order    []Command
	commands map[string]Command
}

// New creates a registry holding cmds in the given order.
func New(cmds ...Command) (*Registry, error) {
	r := &Registry{}
	for _, c := range cmds {
		err := r.Register(c)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register validates c and appends it to the registry.
// The zero Registry is empty and ready to use.
func (r *Registry) Register(c Command) error {
	if isNil(c) {
		return xerrors.Errorf("nil command: %w", ErrInvalidSpec)
	}
	if r.commands == nil {
		r.commands = make(map[string]Command)
	}
	name := c.Spec().Name
	err := validate(c)
	if err != nil {
		return xerrors.Errorf("command %q: %v: %w", name, err, ErrInvalidSpec)
	}
	if _, exists := r.commands[name]; exists {
		return xerrors.Errorf("command %q already registered: %w", name, ErrInvalidSpec)
	}
	r.commands[name] = c
	r.order = append(r.order, c)
	return nil
}

// isNil also catches typed nil pointers of the adapters in this package.
func isNil(c Command) bool {
	switch c := c.(type) {
	case nil:
		return true
	case *Func:
		return c == nil
	case *Group:
		return c == nil
	}
	return false
}

func validate(c Command) error {
	name := c.Spec().Name
	switch {
	case name == "":
		return xerrors.New("empty name")
	case strings.HasPrefix(name, "-"):
		return xerrors.New("name starts with -")
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return xerrors.New("name contains whitespace")
	}

	if f, ok := c.(*Func); ok {
		if f.Setup == nil {
			return xerrors.New("missing setup")
		}
		if f.Main == nil {
			return xerrors.New("missing main")
		}
	}

	if pc, ok := c.(ParentCommand); ok {
		// Validate the whole tree up front so a broken group fails at startup.
		_, err := New(pc.Subcommands()...)
		if err != nil {
			return err
		}
		if len(pc.Subcommands()) == 0 {
			return xerrors.New("group has no commands")
		}
	}
	return nil
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (Command, error) {
	c, ok := r.commands[name]
	if !ok {
		return nil, xerrors.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	return c, nil
}

// List returns all commands in declaration order.
func (r *Registry) List() []Command {
	return append([]Command(nil), r.order...)
}

// Visible returns the commands that are not hidden, in declaration order.
func (r *Registry) Visible() []Command {
	var cmds []Command
	for _, c := range r.order {
		if c.Spec().Hidden {
			continue
		}
		cmds = append(cmds, c)
	}
	return cmds
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, c := range r.order {
		names = append(names, c.Spec().Name)
	}
	return names
}

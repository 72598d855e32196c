package cmdreg

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.coder.com/cli"

	"github.com/beer-asr/beer/internal/seeding"
)

// Command is a subcommand that can be plugged into the dispatcher.
type Command interface {
	// Spec describes the command. Name is the keyword used on the command
	// line and Desc is the one-line summary shown in help.
	Spec() cli.CommandSpec
	// RegisterFlags registers the command's flags on its sub-parser.
	RegisterFlags(fl *pflag.FlagSet)
	// Run executes the command and returns the process exit status.
	Run(inv *Invocation, log *logrus.Logger) int
}

// ParentCommand is a command that only groups other commands.
// Its own Run is never called by the dispatcher.
type ParentCommand interface {
	Command
	Subcommands() []Command
}

// Invocation is the result of parsing the process arguments.
// It is built once and must not be modified by commands.
type Invocation struct {
	Debug      bool
	Seed       int64
	ConfigPath string

	// Path holds the command names from the root to the selected command.
	Path []string
	// Command is the selected leaf command.
	Command Command
	// Flags is the selected command's parsed flag set.
	Flags *pflag.FlagSet
	// Args are the selected command's positional arguments.
	Args []string

	Rand *seeding.Sources
}

// Seeded reports whether a seed was requested.
func (inv *Invocation) Seeded() bool {
	return inv.Seed >= 0
}

var _ Command = &Func{}

// Func adapts plain functions to Command.
type Func struct {
	Name   string
	Usage  string
	Desc   string
	Hidden bool

	Setup func(fl *pflag.FlagSet)
	Main  func(inv *Invocation, log *logrus.Logger) int
}

func (f *Func) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:   f.Name,
		Usage:  f.Usage,
		Desc:   f.Desc,
		Hidden: f.Hidden,
	}
}

func (f *Func) RegisterFlags(fl *pflag.FlagSet) {
	f.Setup(fl)
}

func (f *Func) Run(inv *Invocation, log *logrus.Logger) int {
	return f.Main(inv, log)
}

var _ ParentCommand = &Group{}

// Group is a ParentCommand with no flags of its own.
type Group struct {
	Name     string
	Desc     string
	Hidden   bool
	Commands []Command
}

func (g *Group) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:   g.Name,
		Usage:  "COMMAND [COMMAND FLAGS] [ARGS...]",
		Desc:   g.Desc,
		Hidden: g.Hidden,
	}
}

func (g *Group) RegisterFlags(fl *pflag.FlagSet) {}

// Run returns the usage exit status; a group always needs a subcommand.
func (g *Group) Run(inv *Invocation, log *logrus.Logger) int {
	log.Errorf("%s: a command is required", g.Name)
	return 2
}

func (g *Group) Subcommands() []Command {
	return g.Commands
}

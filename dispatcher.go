package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"

	"github.com/beer-asr/beer/internal/cmdreg"
	"github.com/beer-asr/beer/internal/logging"
	"github.com/beer-asr/beer/internal/seeding"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	errHelp                  = xerrors.New("help requested")
	errCommandRequired       = xerrors.New("a command is required")
	errInstallAutocomplete   = xerrors.New("install autocomplete")
	errUninstallAutocomplete = xerrors.New("uninstall autocomplete")
)

// usageError is a malformed command line. path holds the commands selected
// before the error so the right usage can be printed.
type usageError struct {
	path []cmdreg.Command
	err  error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// dispatcher builds the command line surface from a registry and runs
// exactly one command per process.
type dispatcher struct {
	name string
	desc string
	reg  *cmdreg.Registry

	sources *seeding.Sources
	// seeder is called once, before the command runs, when --seed >= 0.
	seeder seeding.Seeder
	// configureLog sets up the logger passed to the command.
	configureLog func(debug bool) *logrus.Logger

	defaultConfig string
	stdout        io.Writer
	stderr        io.Writer
}

func newDispatcher(reg *cmdreg.Registry) *dispatcher {
	return &dispatcher{
		name: "beer",
		desc: `Bayesian speech toolkit.

Global flags must come before COMMAND. Every command accepts -h for help.`,
		reg:     reg,
		sources: seeding.Default,
		seeder:  seeding.Default,
		configureLog: func(debug bool) *logrus.Logger {
			return logging.Configure(os.Stderr, debug)
		},
		defaultConfig: defaultConfigPath(),
		stdout:        os.Stdout,
		stderr:        os.Stderr,
	}
}

func (d *dispatcher) newFlagSet(name string) *pflag.FlagSet {
	fl := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fl.SetOutput(io.Discard)
	// Usage is printed by the dispatcher.
	fl.Usage = func() {}
	return fl
}

// rootFlags returns the parser for the global flags.
func (d *dispatcher) rootFlags(gf *globalFlags) *pflag.FlagSet {
	fl := d.newFlagSet(d.name)
	gf.register(fl, d.defaultConfig)
	// Stop at the command name; everything after it belongs to the command.
	fl.SetInterspersed(false)
	return fl
}

// commandFlags returns the sub-parser for the command at the end of path.
func (d *dispatcher) commandFlags(path []cmdreg.Command) *pflag.FlagSet {
	cmd := path[len(path)-1]
	fl := d.newFlagSet(d.commandName(path))
	cmd.RegisterFlags(fl)
	_, isParent := cmd.(cmdreg.ParentCommand)
	fl.SetInterspersed(!isParent)
	return fl
}

func (d *dispatcher) commandName(path []cmdreg.Command) string {
	names := []string{d.name}
	for _, c := range path {
		names = append(names, c.Spec().Name)
	}
	return strings.Join(names, " ")
}

func flagError(path []cmdreg.Command, err error) error {
	if xerrors.Is(err, pflag.ErrHelp) {
		err = errHelp
	}
	return &usageError{path: path, err: err}
}

// parse parses argv, not including the program name.
func (d *dispatcher) parse(argv []string) (*cmdreg.Invocation, error) {
	var gf globalFlags
	fl := d.rootFlags(&gf)
	err := fl.Parse(argv)
	if err != nil {
		return nil, flagError(nil, err)
	}

	switch {
	case gf.installAutocomplete:
		return nil, errInstallAutocomplete
	case gf.uninstallAutocomplete:
		return nil, errUninstallAutocomplete
	}

	conf, err := readConfig(gf.configPath)
	if err != nil {
		return nil, err
	}
	gf.apply(fl, conf)

	inv := &cmdreg.Invocation{
		Debug:      gf.debug,
		Seed:       gf.seed,
		ConfigPath: gf.configPath,
		Rand:       d.sources,
	}

	var (
		reg  = d.reg
		args = fl.Args()
		path []cmdreg.Command
	)
	for {
		if len(args) == 0 {
			return nil, &usageError{path: path, err: errCommandRequired}
		}

		cmd, err := reg.Get(args[0])
		if err != nil {
			return nil, &usageError{path: path, err: err}
		}
		path = append(path, cmd)
		inv.Path = append(inv.Path, cmd.Spec().Name)

		sub := d.commandFlags(path)
		err = sub.Parse(args[1:])
		if err != nil {
			return nil, flagError(path, err)
		}

		pc, ok := cmd.(cmdreg.ParentCommand)
		if !ok {
			inv.Command = cmd
			inv.Flags = sub
			inv.Args = sub.Args()
			return inv, nil
		}

		reg, err = cmdreg.New(pc.Subcommands()...)
		if err != nil {
			return nil, xerrors.Errorf("failed to load %q: %w", d.commandName(path), err)
		}
		args = sub.Args()
	}
}

// run parses argv, applies the global state and runs the selected command.
// The command's exit status is returned unchanged.
func (d *dispatcher) run(argv []string) int {
	inv, err := d.parse(argv)
	if err != nil {
		return d.fail(err)
	}

	if inv.Seeded() {
		d.seeder.SeedAll(inv.Seed)
	}
	log := d.configureLog(inv.Debug)

	if inv.Seeded() {
		log.Debugf("seeded random sources with %d", inv.Seed)
	} else {
		log.Debug("random sources left unseeded")
	}
	log.WithField("command", strings.Join(inv.Path, " ")).Debug("dispatching")

	return inv.Command.Run(inv, log)
}

func (d *dispatcher) fail(err error) int {
	var uerr *usageError
	switch {
	case xerrors.As(err, &uerr):
		if xerrors.Is(uerr.err, errHelp) {
			d.usage(d.stdout, uerr.path)
			return exitOK
		}
		fmt.Fprintf(d.stderr, "%s: %v\n\n", d.commandName(uerr.path), uerr.err)
		d.usage(d.stderr, uerr.path)
		return exitUsage
	case xerrors.Is(err, errInstallAutocomplete):
		return d.installAutocomplete()
	case xerrors.Is(err, errUninstallAutocomplete):
		return d.uninstallAutocomplete()
	default:
		fmt.Fprintf(d.stderr, "%s: %v\n", d.name, err)
		return exitFailure
	}
}

// usage writes the help for the command at the end of path, or for the
// root when path is empty.
func (d *dispatcher) usage(w io.Writer, path []cmdreg.Command) {
	var (
		usage string
		desc  string
		cmds  []cmdreg.Command
		flags *pflag.FlagSet
	)
	if len(path) == 0 {
		usage = "[GLOBAL FLAGS] COMMAND [COMMAND FLAGS] [ARGS...]"
		desc = d.desc
		cmds = d.reg.Visible()
	} else {
		spec := path[len(path)-1].Spec()
		usage, desc = spec.Usage, spec.Desc
		if usage == "" {
			usage = "[FLAGS]"
		}
		if pc, ok := path[len(path)-1].(cmdreg.ParentCommand); ok {
			sub, err := cmdreg.New(pc.Subcommands()...)
			if err == nil {
				cmds = sub.Visible()
			}
		}
		flags = d.commandFlags(path)
	}

	fmt.Fprintf(w, "Usage: %s %s\n", d.commandName(path), usage)
	if desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}

	if len(cmds) > 0 {
		fmt.Fprint(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, c := range cmds {
			fmt.Fprintf(tw, "  %s\t%s\n", c.Spec().Name, c.Spec().Desc)
		}
		tw.Flush()
	}

	if flags != nil && flags.HasFlags() {
		fmt.Fprintf(w, "\n%s flags:\n%s", d.commandName(path), flags.FlagUsages())
	}

	var gf globalFlags
	fmt.Fprintf(w, "\nGlobal flags:\n%s", d.rootFlags(&gf).FlagUsages())
}

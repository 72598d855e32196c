package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/posener/complete"
	"github.com/posener/complete/cmd/install"
	"github.com/spf13/pflag"
	"go.coder.com/flog"

	"github.com/beer-asr/beer/internal/cmdreg"
)

// argPredictor is implemented by commands that know what their positional
// arguments look like.
type argPredictor interface {
	PredictArgs() complete.Predictor
}

func (d *dispatcher) genAutocomplete() complete.Command {
	ac := complete.Command{
		Sub:         complete.Commands{},
		Flags:       complete.Flags{},
		GlobalFlags: complete.Flags{},
	}

	var gf globalFlags
	visitFlags(d.rootFlags(&gf), func(name string, f *pflag.Flag) {
		switch f.Name {
		// special case for autocompleting configs
		case "config":
			ac.GlobalFlags[name] = complete.PredictFiles("*.toml")
		default:
			ac.GlobalFlags[name] = predictFlag(f)
		}
	})

	d.genSubcommandAutocomplete(ac, nil, d.reg.Visible())
	return ac
}

// genCommandAutocomplete generates an autocomplete entry for the command at
// the end of path. It will recursively add all subcommands.
func (d *dispatcher) genCommandAutocomplete(parent complete.Command, path []cmdreg.Command) {
	cmd := path[len(path)-1]
	child := complete.Command{
		Sub:   complete.Commands{},
		Flags: complete.Flags{},
	}

	visitFlags(d.commandFlags(path), func(name string, f *pflag.Flag) {
		child.Flags[name] = predictFlag(f)
	})

	if ap, ok := cmd.(argPredictor); ok {
		child.Args = ap.PredictArgs()
	}

	if pc, ok := cmd.(cmdreg.ParentCommand); ok {
		sub, err := cmdreg.New(pc.Subcommands()...)
		if err == nil {
			d.genSubcommandAutocomplete(child, path, sub.Visible())
		}
	}

	parent.Sub[cmd.Spec().Name] = child
}

// genSubcommandAutocomplete walks down a command tree, adding child commands to their parent.
func (d *dispatcher) genSubcommandAutocomplete(parent complete.Command, path []cmdreg.Command, cmds []cmdreg.Command) {
	for _, e := range cmds {
		p := append(append([]cmdreg.Command(nil), path...), e)
		d.genCommandAutocomplete(parent, p)
	}
}

// visitFlags calls fn once for every spelling of every flag in fl.
func visitFlags(fl *pflag.FlagSet, fn func(name string, f *pflag.Flag)) {
	fl.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		fn(fmtFlag(f.Name), f)
		if f.Shorthand != "" {
			fn(fmtFlag(f.Shorthand), f)
		}
	})
}

func predictFlag(f *pflag.Flag) complete.Predictor {
	if f.Value.Type() == "bool" {
		return complete.PredictNothing
	}
	return complete.PredictAnything
}

func fmtFlag(name string) string {
	if utf8.RuneCountInString(name) > 1 {
		return fmt.Sprintf("--%s", name)
	}

	return fmt.Sprintf("-%s", name)
}

// complete serves a shell completion request.
// It returns false when the process wasn't started by the shell for completion.
func (d *dispatcher) complete() bool {
	return complete.New(d.name, d.genAutocomplete()).Complete()
}

func (d *dispatcher) installAutocomplete() int {
	err := install.Install(d.name)
	if err != nil {
		flog.Error("failed to install autocomplete: %v", err)
		return exitFailure
	}
	flog.Success("installed autocomplete for %v, restart your shell to use it", d.name)
	return exitOK
}

func (d *dispatcher) uninstallAutocomplete() int {
	err := install.Uninstall(d.name)
	if err != nil {
		flog.Error("failed to uninstall autocomplete: %v", err)
		return exitFailure
	}
	flog.Success("uninstalled autocomplete for %v", d.name)
	return exitOK
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/posener/complete"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.coder.com/cli"
	"golang.org/x/xerrors"

	"github.com/beer-asr/beer/internal/cmdreg"
	"github.com/beer-asr/beer/internal/phones"
)

func hmmCmd(stdin io.Reader, stdout io.Writer) cmdreg.Command {
	return &cmdreg.Group{
		Name: "hmm",
		Desc: "Hidden Markov Model (HMM)",
		Commands: []cmdreg.Command{
			&phonelistcmd{in: stdin, out: stdout},
		},
	}
}

var (
	_ cmdreg.Command = &phonelistcmd{}
	_ argPredictor   = &phonelistcmd{}
)

type phonelistcmd struct {
	in  io.Reader
	out io.Writer

	noUttID bool
	exclude []string
}

func (c *phonelistcmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "phonelist",
		Usage: "[FLAGS] [TRANSCRIPTION...]",
		Desc:  "List the units found in transcriptions.",
	}
}

func (c *phonelistcmd) RegisterFlags(fl *pflag.FlagSet) {
	fl.BoolVarP(&c.noUttID, "no-uttid", "u", false, "Lines have no leading utterance id.")
	fl.StringSliceVar(&c.exclude, "exclude", nil, "Units to leave out, comma separated.")
}

func (c *phonelistcmd) PredictArgs() complete.Predictor {
	return complete.PredictFiles("*")
}

// Run reads every transcription (stdin for none or "-") and prints the
// sorted unit set, one per line.
func (c *phonelistcmd) Run(inv *cmdreg.Invocation, log *logrus.Logger) int {
	l := &phones.Lister{NoUttID: c.noUttID, Exclude: c.exclude}

	paths := inv.Args
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, p := range paths {
		err := c.add(l, p)
		if err != nil {
			log.Error(err)
			return exitFailure
		}
		log.WithField("file", p).Debug("read transcription")
	}

	units := l.Units()
	for _, u := range units {
		fmt.Fprintln(c.out, u)
	}
	log.Debugf("found %d units", len(units))
	return exitOK
}

func (c *phonelistcmd) add(l *phones.Lister, path string) error {
	if path == "-" {
		return l.Add("<stdin>", c.in)
	}

	fi, err := os.Open(path)
	if err != nil {
		return xerrors.Errorf("failed to open transcription: %w", err)
	}
	defer fi.Close()

	return l.Add(path, fi)
}

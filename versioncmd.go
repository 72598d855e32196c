package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.coder.com/cli"

	"github.com/beer-asr/beer/internal/cmdreg"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

var _ cmdreg.Command = &versioncmd{}

type versioncmd struct {
	out io.Writer
}

func (v *versioncmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name: "version",
		Desc: "Retrieve the current version.",
	}
}

func (v *versioncmd) RegisterFlags(fl *pflag.FlagSet) {}

func (v *versioncmd) Run(inv *cmdreg.Invocation, log *logrus.Logger) int {
	fmt.Fprintln(v.out, version)
	return exitOK
}

package main

import (
	"io"
	"os"

	"go.coder.com/flog"

	"github.com/beer-asr/beer/internal/cmdreg"
)

// commands returns the top-level commands in the order they are listed in help.
func commands(stdin io.Reader, stdout io.Writer) []cmdreg.Command {
	return []cmdreg.Command{
		hmmCmd(stdin, stdout),
		&rngcheckcmd{out: stdout},
		&versioncmd{out: stdout},
	}
}

func main() {
	reg, err := cmdreg.New(commands(os.Stdin, os.Stdout)...)
	if err != nil {
		flog.Fatal("failed to register commands: %v", err)
	}

	d := newDispatcher(reg)
	if d.complete() {
		return
	}
	os.Exit(d.run(os.Args[1:]))
}

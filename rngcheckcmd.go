package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"go.coder.com/cli"

	"github.com/beer-asr/beer/internal/cmdreg"
	"github.com/beer-asr/beer/internal/randstr"
	"github.com/beer-asr/beer/internal/seeding"
)

var _ cmdreg.Command = &rngcheckcmd{}

type rngcheckcmd struct {
	out io.Writer

	count int
	idLen int
}

func (c *rngcheckcmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "rngcheck",
		Usage: "[--count N] [--id-length N]",
		Desc:  "Print draws from the seeded random sources.",
	}
}

func (c *rngcheckcmd) RegisterFlags(fl *pflag.FlagSet) {
	fl.IntVarP(&c.count, "count", "n", 3, "Number of draws per source.")
	fl.IntVar(&c.idLen, "id-length", 8, "Length of the random identifier.")
}

func (c *rngcheckcmd) Run(inv *cmdreg.Invocation, log *logrus.Logger) int {
	if len(inv.Args) > 0 {
		log.Errorf("unexpected arguments: %v", strings.Join(inv.Args, " "))
		return exitUsage
	}
	if c.count < 0 || c.idLen < 0 {
		log.Error("--count and --id-length must not be negative")
		return exitUsage
	}

	seed := "unseeded"
	if inv.Seeded() {
		seed = fmt.Sprint(inv.Seed)
	}
	log.Debugf("drawing %d values per source", c.count)

	tw := tabwriter.NewWriter(c.out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "seed\t%v\n", seed)
	fmt.Fprintf(tw, "%v\t%v\n", seeding.General, fmtDraws(inv.Rand.General(), c.count))
	fmt.Fprintf(tw, "%v\t%v\n", seeding.Array, fmtDraws(inv.Rand.Array(), c.count))
	fmt.Fprintf(tw, "id\t%v\n", randstr.MakeCharset(inv.Rand.General(), randstr.Human, c.idLen))
	err := tw.Flush()
	if err != nil {
		log.Errorf("failed to write draws: %v", err)
		return exitFailure
	}
	return exitOK
}

func fmtDraws(r *rand.Rand, n int) string {
	draws := make([]string, n)
	for i := range draws {
		draws[i] = fmt.Sprint(r.Uint64())
	}
	return strings.Join(draws, " ")
}

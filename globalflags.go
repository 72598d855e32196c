package main

import (
	"github.com/spf13/pflag"
)

type globalFlags struct {
	debug      bool
	seed       int64
	configPath string

	installAutocomplete   bool
	uninstallAutocomplete bool
}

func (gf *globalFlags) register(fl *pflag.FlagSet, configPath string) {
	fl.BoolVarP(&gf.debug, "debug", "d", false, "Enable debug logging.")
	fl.Int64VarP(&gf.seed, "seed", "s", -1, "Seed all random sources. Negative values leave them unseeded.")
	fl.StringVar(&gf.configPath, "config", configPath, "Path to config.")

	fl.BoolVar(&gf.installAutocomplete, "install-autocomplete", false, "Install shell autocomplete.")
	fl.BoolVar(&gf.uninstallAutocomplete, "uninstall-autocomplete", false, "Uninstall shell autocomplete.")
}

// apply fills in the values the config sets and the command line doesn't.
func (gf *globalFlags) apply(fl *pflag.FlagSet, c config) {
	if c.Debug != nil && !fl.Changed("debug") {
		gf.debug = *c.Debug
	}
	if c.Seed != nil && !fl.Changed("seed") {
		gf.seed = *c.Seed
	}
}

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"
)

// config describes beer.toml.
// Every key is optional and only provides a default for the matching flag.
type config struct {
	Debug *bool  `toml:"debug"`
	Seed  *int64 `toml:"seed"`
}

// defaultConfigPath returns $BEER_CONFIG, or beer/beer.toml in the user
// config directory.
func defaultConfigPath() string {
	if p := os.Getenv("BEER_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "beer", "beer.toml")
}

func cleanPath(path string) string {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(path)
	}

	path = filepath.Clean(path)
	if path == "~" {
		return homedir
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(homedir, path[2:])
	}
	return path
}

// readConfig reads the config at path. A missing file is an empty config.
func readConfig(path string) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	path = cleanPath(path)

	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if os.IsNotExist(err) {
			return config{}, nil
		}
		return config{}, xerrors.Errorf("failed to parse config @ %v: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return config{}, xerrors.Errorf("unknown keys in config @ %v: %v", path, strings.Join(keys, ", "))
	}
	return c, nil
}

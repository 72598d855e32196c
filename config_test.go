package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
		return p
	}

	t.Run("Missing", func(t *testing.T) {
		c, err := readConfig(filepath.Join(dir, "missing.toml"))
		require.NoError(t, err)
		assert.Nil(t, c.Debug)
		assert.Nil(t, c.Seed)
	})
	t.Run("NoPath", func(t *testing.T) {
		c, err := readConfig("")
		require.NoError(t, err)
		assert.Equal(t, config{}, c)
	})
	t.Run("Values", func(t *testing.T) {
		c, err := readConfig(write("full.toml", "# comment\ndebug = true\nseed = 42\n"))
		require.NoError(t, err)
		require.NotNil(t, c.Debug)
		require.NotNil(t, c.Seed)
		assert.True(t, *c.Debug)
		assert.Equal(t, int64(42), *c.Seed)
	})
	t.Run("Partial", func(t *testing.T) {
		c, err := readConfig(write("partial.toml", "seed = 0\n"))
		require.NoError(t, err)
		assert.Nil(t, c.Debug)
		require.NotNil(t, c.Seed)
		assert.Equal(t, int64(0), *c.Seed)
	})
	t.Run("WrongType", func(t *testing.T) {
		_, err := readConfig(write("type.toml", "seed = \"x\"\n"))
		assert.Error(t, err)
	})
	t.Run("Unknown", func(t *testing.T) {
		_, err := readConfig(write("unknown.toml", "seed = 1\n[extra]\nkey = 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "extra")
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("BEER_CONFIG", "/etc/beer.toml")
	assert.Equal(t, "/etc/beer.toml", defaultConfigPath())

	t.Setenv("BEER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	p := defaultConfigPath()
	assert.Equal(t, filepath.Join("beer", "beer.toml"), filepath.Join(filepath.Base(filepath.Dir(p)), filepath.Base(p)))
}

func Test_cleanPath(t *testing.T) {
	t.Setenv("HOME", "/home/ammar")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"Abs", "/home/ammar/test", "/home/ammar/test"},
		{"Tilde", "~/.config/beer.toml", "/home/ammar/.config/beer.toml"},
		{"TildeOnly", "~", "/home/ammar"},
		{"Relative", "conf/../beer.toml", "beer.toml"},
		{"TildeInside", "/a/~/b", "/a/~/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanPath(tt.path))
		})
	}
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beer-asr/beer/internal/cmdreg"
)

// newCommandsHarness wires the shipped commands to in-memory stdin/stdout.
func newCommandsHarness(t *testing.T, stdin string) *harness {
	var out bytes.Buffer
	h := newHarness(t, commands(strings.NewReader(stdin), &out)...)
	h.stdout = &out
	h.d.stdout = &out
	h.d.seeder = h.d.sources
	return h
}

func TestCommandsRegistry(t *testing.T) {
	reg, err := cmdreg.New(commands(os.Stdin, os.Stdout)...)
	require.NoError(t, err)
	assert.Equal(t, []string{"hmm", "rngcheck", "version"}, reg.Names())

	for _, c := range reg.List() {
		assert.NotEmpty(t, c.Spec().Desc, c.Spec().Name)
	}
}

func TestVersionCmd(t *testing.T) {
	h := newCommandsHarness(t, "")

	require.Equal(t, exitOK, h.d.run([]string{"version"}))
	assert.Equal(t, version+"\n", h.stdout.String())
}

func TestRngcheckCmd(t *testing.T) {
	run := func(args ...string) string {
		h := newCommandsHarness(t, "")
		code := h.d.run(append([]string{"rngcheck"}, args...))
		require.Equal(t, exitOK, code, h.stderr.String()+h.logs.String())
		return h.stdout.String()
	}
	seeded := func(seed string, args ...string) string {
		h := newCommandsHarness(t, "")
		code := h.d.run(append([]string{"-s", seed, "rngcheck"}, args...))
		require.Equal(t, exitOK, code, h.stderr.String()+h.logs.String())
		return h.stdout.String()
	}

	t.Run("Reproducible", func(t *testing.T) {
		a := seeded("17", "-n", "5")
		assert.Equal(t, a, seeded("17", "-n", "5"))
		assert.NotEqual(t, a, seeded("18", "-n", "5"))
		assert.Regexp(t, `(?m)^seed\s+17$`, a)
		assert.Regexp(t, `(?m)^general\s+\d+ \d+ \d+ \d+ \d+$`, a)
		assert.Regexp(t, `(?m)^array\s+\d+ \d+ \d+ \d+ \d+$`, a)
		assert.Regexp(t, `(?m)^id\s+[2-9a-z]{8}$`, a)
	})
	t.Run("Unseeded", func(t *testing.T) {
		a := run()
		assert.Regexp(t, `(?m)^seed\s+unseeded$`, a)
		assert.NotEqual(t, a, run())
	})
	t.Run("IDLength", func(t *testing.T) {
		assert.Regexp(t, `(?m)^id\s+[2-9a-z]{12}$`, seeded("1", "--id-length", "12"))
	})
	t.Run("BadArgs", func(t *testing.T) {
		for _, args := range [][]string{{"rngcheck", "extra"}, {"rngcheck", "--count=-1"}} {
			h := newCommandsHarness(t, "")
			assert.Equal(t, exitUsage, h.d.run(args))
			assert.Contains(t, h.logs.String(), "ERROR: ")
			assert.Empty(t, h.stdout.String())
		}
	})
}

func TestPhonelistCmd(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("utt1 sil k ae t sil\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("utt2 sil d ao g sil\n\n"), 0644))

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"Files", "", []string{a, b}, "ae\nao\nd\ng\nk\nsil\nt\n"},
		{"Exclude", "", []string{"--exclude", "sil", a}, "ae\nk\nt\n"},
		{"Stdin", "u1 b a\n", nil, "a\nb\n"},
		{"StdinDash", "u1 b a\n", []string{"-", a}, "a\nae\nb\nk\nsil\nt\n"},
		{"NoUttID", "b a\nc\n", []string{"-u"}, "a\nb\nc\n"},
		{"Empty", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newCommandsHarness(t, tt.stdin)

			code := h.d.run(append([]string{"hmm", "phonelist"}, tt.args...))
			require.Equal(t, exitOK, code, h.stderr.String()+h.logs.String())
			assert.Equal(t, tt.want, h.stdout.String())
		})
	}

	t.Run("MissingFile", func(t *testing.T) {
		h := newCommandsHarness(t, "")

		code := h.d.run([]string{"hmm", "phonelist", filepath.Join(dir, "nope.txt")})
		assert.Equal(t, exitFailure, code)
		assert.Contains(t, h.logs.String(), "ERROR: failed to open transcription")
		assert.Empty(t, h.stdout.String())
	})
	t.Run("Debug", func(t *testing.T) {
		h := newCommandsHarness(t, "")

		require.Equal(t, exitOK, h.d.run([]string{"-d", "hmm", "phonelist", a}))
		assert.Contains(t, h.logs.String(), "DEBUG: found 4 units\n")
		assert.Contains(t, h.logs.String(), "DEBUG: read transcription file="+a+"\n")
	})
}

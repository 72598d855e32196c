// Package phones reads unit inventories out of phonetic transcriptions.
package phones

import (
	"bufio"
	"io"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// Lister collects the distinct units of one or more transcriptions.
// A transcription has one utterance per line: an utterance id followed by
// whitespace-separated units. Blank lines are skipped.
type Lister struct {
	// NoUttID is set when lines carry units only.
	NoUttID bool
	// Exclude lists units left out of the result.
	Exclude []string

	units map[string]struct{}
}

// Add reads the transcription in r. name is used in error messages.
func (l *Lister) Add(name string, r io.Reader) error {
	if l.units == nil {
		l.units = make(map[string]struct{})
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if !l.NoUttID {
			fields = fields[1:]
		}
		for _, u := range fields {
			l.units[u] = struct{}{}
		}
	}
	err := sc.Err()
	if err != nil {
		return xerrors.Errorf("%s:%d: failed to read transcription: %w", name, lineno+1, err)
	}
	return nil
}

// Units returns the collected units in lexical order.
func (l *Lister) Units() []string {
	skip := make(map[string]bool, len(l.Exclude))
	for _, u := range l.Exclude {
		skip[u] = true
	}

	units := make([]string, 0, len(l.units))
	for u := range l.units {
		if skip[u] {
			continue
		}
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}

// Package logging configures the logger handed to every beer command.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// levelColors is read-only after init.
var levelColors = map[logrus.Level]*color.Color{
	logrus.TraceLevel: levelColor(color.FgHiBlack),
	logrus.DebugLevel: levelColor(color.FgHiMagenta),
	logrus.InfoLevel:  levelColor(color.FgHiBlue),
	logrus.WarnLevel:  levelColor(color.FgHiYellow),
	logrus.ErrorLevel: levelColor(color.FgHiRed),
	logrus.FatalLevel: levelColor(color.FgRed, color.Bold),
	logrus.PanicLevel: levelColor(color.FgRed, color.Bold),
}

// levelColor returns a colour that is applied even when stdout is not a
// terminal; Formatter.Color decides whether it is used at all.
func levelColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Formatter renders entries as "<LEVEL>: <message>" followed by any fields
// as sorted key=value pairs.
type Formatter struct {
	// Color enables coloured level names.
	Color bool
}

var _ logrus.Formatter = &Formatter{}

func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	b := e.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(f.level(e.Level))
	b.WriteString(": ")
	b.WriteString(strings.TrimRight(e.Message, "\n"))

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func (f *Formatter) level(l logrus.Level) string {
	name := strings.ToUpper(l.String())
	if !f.Color {
		return name
	}
	c, ok := levelColors[l]
	if !ok {
		return name
	}
	return c.Sprint(name)
}

// Level returns the threshold used for the debug flag.
func Level(debug bool) logrus.Level {
	if debug {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// New returns a logger writing to w with the threshold for debug.
func New(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	setup(log, w, debug)
	return log
}

// Configure sets up the process-wide logger and returns it.
// It is meant to be called once, before any command runs.
func Configure(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.StandardLogger()
	setup(log, w, debug)
	return log
}

func setup(log *logrus.Logger, w io.Writer, debug bool) {
	log.SetOutput(w)
	log.SetFormatter(&Formatter{Color: isTerminal(w)})
	log.SetLevel(Level(debug))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

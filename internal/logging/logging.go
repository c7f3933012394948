// Package logging builds the leveled stderr logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix tags every line so that logs stay attributable in pipelines.
const Prefix = "pepidx"

// Levels lists the names accepted by New and --log-level.
var Levels = []string{"debug", "info", "warn", "error"}

// New returns a logger writing to w at the named level. quiet raises the
// level to error so that only failures are reported.
func New(w io.Writer, level string, quiet bool) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if quiet && lvl < log.ErrorLevel {
		lvl = log.ErrorLevel
	}
	l := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: false,
	})
	return l, nil
}

// ParseLevel maps a level name to a log.Level. The empty string is info.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}
	return log.InfoLevel, fmt.Errorf("unknown log level %q (want one of %s)", s, strings.Join(Levels, ", "))
}

// Discard returns a logger that drops everything; handy for tests and
// library callers that did not configure one.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

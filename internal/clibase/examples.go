package clibase

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Example is one quickstart entry: what it does and the arguments after the
// command name.
type Example struct {
	Doc  string
	Args []string
}

// PrintExamples prints a quickstart header, each example as a comment
// line followed by the command line, and a closing tip.
func PrintExamples(out io.Writer, name string, examples []Example) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s quickstart\n\n", name)
	for i, ex := range examples {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "  # %s\n  %s %s\n", ex.Doc, name, strings.Join(ex.Args, " "))
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}

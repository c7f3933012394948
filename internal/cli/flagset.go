package cli

import (
	"flag"
	"io"

	"pepidx/internal/clibase"
)

// NewFlagSet returns a FlagSet with ContinueOnError and the shared usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, _ func(string) string) {
		_, _ = io.WriteString(out, "Usage:\n  "+name+" --peptides peptides.txt [flags] proteins.fasta [more.fasta ...]\n")
	})
	return fs
}

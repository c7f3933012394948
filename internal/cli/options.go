// internal/cli/options.go
package cli

import (
	"flag"
	"io"

	"pepidx/internal/clibase"
	"pepidx/internal/cliutil"
	"pepidx/internal/config"
)

// Options holds all CLI flags and arguments.
type Options struct {
	clibase.Common
	Params config.Params
}

func register(fs *flag.FlagSet, o *Options) (noHeader, help *bool) {
	noHeader = clibase.Register(fs, &o.Common, &o.Params)
	help = fs.Bool("h", false, "show this help message")
	return noHeader, help
}

// ParseArgs registers and parses all flags on fs and returns the options.
// Values come from, in increasing precedence: defaults, the --config file,
// explicit flags. Positional arguments are protein databases (globs allowed).
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	opt := Options{Params: config.Defaults()}
	noHeader, help := register(fs, &opt)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if *help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}
	posArgs = append(posArgs, fs.Args()...)

	if opt.ConfigPath != "" {
		// re-parse the same flags on top of the file values
		p := config.Defaults()
		if err := config.LoadFile(opt.ConfigPath, &p); err != nil {
			return opt, err
		}
		opt = Options{Params: p}
		again := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
		again.SetOutput(io.Discard)
		noHeader, _ = register(again, &opt)
		if err := again.Parse(flagArgs); err != nil {
			return opt, err
		}
	}
	if err := clibase.AfterParse(&opt.Common, &opt.Params, noHeader, posArgs); err != nil {
		return opt, err
	}
	return opt, nil
}

var examples = []clibase.Example{
	{Doc: "exact and ambiguity-tolerant mapping (default: 3 ambiguous residues)",
		Args: []string{"--peptides", "peps.txt", "uniprot.fasta.gz"}},
	{Doc: "allow one mismatch, JSON lines, summary file",
		Args: []string{"-i", "peps.txt", "--mm-max", "1", "-o", "jsonl", "--summary", "run.json", "db/*.fasta"}},
	{Doc: "show each hit as an alignment",
		Args: []string{"-i", "peps.txt", "-o", "pretty", "--sort", "db.fasta"}},
	{Doc: "parameters from a file, I/L equivalence forced on the command line",
		Args: []string{"--config", "params.yaml", "--il-equivalent", "-i", "peps.txt", "db.fasta"}},
}

// PrintExamples writes the quickstart for --examples.
func PrintExamples(out io.Writer, name string) {
	clibase.PrintExamples(out, name, examples)
}

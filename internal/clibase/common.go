// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"

	"pepidx/internal/cliutil"
	"pepidx/internal/config"
)

// Common holds the inputs and switches that are not run parameters.
type Common struct {
	// Input
	PeptideFile string
	Databases   []string
	ConfigPath  string

	// Misc
	Quiet    bool
	Version  bool
	Examples bool
}

// sliceValue appends each value to a *[]string (for --database/-d)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// Register wires every flag onto fs. Run parameters write into p, whose
// current values become the flag defaults; the rest writes into c. It
// returns a pointer to the "no-header" bool for AfterParse.
func Register(fs *flag.FlagSet, c *Common, p *config.Params) *bool {
	// Inputs
	fs.StringVar(&c.PeptideFile, "peptides", "", "peptide list (one per line, optional id<TAB>seq) or '-'")
	fs.StringVar(&c.PeptideFile, "i", "", "alias of --peptides")
	dbVal := &sliceValue{dst: &c.Databases}
	fs.Var(dbVal, "database", "protein FASTA file(s) (repeatable)")
	fs.Var(dbVal, "d", "alias of --database")
	fs.StringVar(&c.ConfigPath, "config", "", "YAML parameter file; flags override its values")

	// Matching
	fs.IntVar(&p.AAAMax, "aaa-max", p.AAAMax, "max ambiguous residues resolved per peptide")
	fs.IntVar(&p.MMMax, "mm-max", p.MMMax, "max mismatches per peptide")
	fs.IntVar(&p.MaxSpawns, "max-spawns", p.MaxSpawns, "cap on live partial matches per protein (0=unlimited)")
	fs.BoolVar(&p.Prefilter, "prefilter", p.Prefilter, "skip proteins without a literal hit when both budgets are 0")

	// Database
	fs.StringVar(&p.DecoyString, "decoy-string", p.DecoyString, "accession marker of decoy proteins")
	fs.StringVar(&p.DecoyStringPosition, "decoy-position", p.DecoyStringPosition, "decoy marker position: prefix | suffix")
	fs.StringVar(&p.MissingDecoyAction, "missing-decoy-action", p.MissingDecoyAction, "when no decoy is hit: error | warn | silent")
	fs.BoolVar(&p.ILEquivalent, "il-equivalent", p.ILEquivalent, "treat I, L and J as the same residue")

	// Mapping
	fs.BoolVar(&p.AllowUnmatched, "allow-unmatched", p.AllowUnmatched, "do not fail when a peptide matches no protein")
	fs.BoolVar(&p.KeepUnreferencedProteins, "keep-unreferenced", p.KeepUnreferencedProteins, "list proteins without peptides in --proteins")
	fs.BoolVar(&p.WriteProteinDescription, "protein-description", p.WriteProteinDescription, "include protein descriptions in JSON output")

	// Performance
	fs.IntVar(&p.Threads, "threads", p.Threads, "worker threads (0=all CPUs)")
	fs.IntVar(&p.Threads, "t", p.Threads, "alias of --threads")
	fs.IntVar(&p.ChunkSize, "chunk-size", p.ChunkSize, "split proteins into N-residue windows (0=no chunking)")
	fs.IntVar(&p.DedupeCap, "dedupe-cap", p.DedupeCap, "matches remembered for window dedupe (0=default)")

	// Output
	fs.StringVar(&p.Output, "output", p.Output, "output: text | json | jsonl | pretty")
	fs.StringVar(&p.Output, "o", p.Output, "alias of --output")
	fs.BoolVar(&p.Sort, "sort", p.Sort, "sort outputs deterministically")
	noHeader := new(bool)
	*noHeader = !p.Header
	fs.BoolVar(noHeader, "no-header", *noHeader, "suppress header line")
	fs.StringVar(&p.SummaryFile, "summary", p.SummaryFile, "write the run summary as JSON to FILE")
	fs.StringVar(&p.ProteinsFile, "proteins", p.ProteinsFile, "write the referenced proteins as TSV to FILE")
	fs.StringVar(&p.MetricsFile, "metrics-file", p.MetricsFile, "write Prometheus metrics to FILE")
	fs.StringVar(&p.LogLevel, "log-level", p.LogLevel, "log level: debug | info | warn | error")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "only log errors")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit")
	fs.BoolVar(&c.Version, "version", false, "print version and exit")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit")

	return noHeader
}

// AfterParse finalizes header and expands positionals, then runs shared validation.
func AfterParse(c *Common, p *config.Params, noHeader *bool, posArgs []string) error {
	p.Header = !*noHeader

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.Databases = append(c.Databases, exp...)
	}
	return Validate(c, p)
}

// Validate applies the input invariants, then the parameter constraints.
func Validate(c *Common, p *config.Params) error {
	if c.PeptideFile == "" {
		return errors.New("provide --peptides")
	}
	if len(c.Databases) == 0 {
		return errors.New("at least one protein database is required")
	}
	stdin := 0
	if c.PeptideFile == "-" {
		stdin++
	}
	for _, d := range c.Databases {
		if d == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("only one input may be read from stdin ('-')")
	}
	return p.Validate()
}

// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"pepidx/internal/version"
)

// UsageCommon installs the Usage() handler on fs. extra prints
// tool-specific sections (usage line, examples).
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s: map peptides to proteins with ambiguity-tolerant matching\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -i, --peptides file          Peptide list or '-' for STDIN [*]")
		fmt.Fprintln(out, "  -d, --database file          Protein FASTA file(s) (repeatable; also positional) [*]")
		fmt.Fprintln(out, "      --config file            YAML parameter file; flags override it")

		fmt.Fprintln(out, "\nMatching:")
		fmt.Fprintf(out, "      --aaa-max int            Ambiguous residues resolved per peptide [%s]\n", def("aaa-max"))
		fmt.Fprintf(out, "      --mm-max int             Mismatches per peptide [%s]\n", def("mm-max"))
		fmt.Fprintf(out, "      --max-spawns int         Live partial matches per protein (0=unlimited) [%s]\n", def("max-spawns"))
		fmt.Fprintf(out, "      --prefilter              Literal prefilter for exact scans [%s]\n", def("prefilter"))
		fmt.Fprintf(out, "      --il-equivalent          Treat I, L and J as one residue [%s]\n", def("il-equivalent"))

		fmt.Fprintln(out, "\nTarget/decoy:")
		fmt.Fprintf(out, "      --decoy-string string    Decoy accession marker [%s]\n", def("decoy-string"))
		fmt.Fprintf(out, "      --decoy-position string  prefix | suffix [%s]\n", def("decoy-position"))
		fmt.Fprintf(out, "      --missing-decoy-action   error | warn | silent [%s]\n", def("missing-decoy-action"))

		fmt.Fprintln(out, "\nMapping:")
		fmt.Fprintf(out, "      --allow-unmatched        Do not fail on peptides without a protein [%s]\n", def("allow-unmatched"))
		fmt.Fprintf(out, "      --keep-unreferenced      Keep proteins without peptides in --proteins [%s]\n", def("keep-unreferenced"))
		fmt.Fprintf(out, "      --protein-description    Include protein descriptions in JSON [%s]\n", def("protein-description"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int            Worker threads (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --chunk-size int         Split proteins into N-residue windows (0=no chunking) [%s]\n", def("chunk-size"))
		fmt.Fprintf(out, "      --dedupe-cap int         Matches remembered for window dedupe (0=default) [%s]\n", def("dedupe-cap"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string          text | json | jsonl | pretty [%s]\n", def("output"))
		fmt.Fprintf(out, "      --sort                   Sort outputs deterministically [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --no-header              Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintln(out, "      --summary file           Write the run summary (JSON)")
		fmt.Fprintln(out, "      --proteins file          Write the protein table (TSV)")
		fmt.Fprintln(out, "      --metrics-file file      Write Prometheus metrics")
		fmt.Fprintf(out, "      --log-level string       debug | info | warn | error [%s]\n", def("log-level"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "  -q, --quiet                  Only log errors")
		fmt.Fprintln(out, "      --examples               Print usage examples and exit")
		fmt.Fprintln(out, "  -v, --version                Print version and exit")
		fmt.Fprintln(out, "  -h, --help                   Show this help and exit")
	}
}

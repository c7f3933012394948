// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"pepidx/pkg/api"
)

// PeptideArgs is what a registered writer receives.
type PeptideArgs struct {
	Sort   bool
	Header bool
	In     <-chan api.PeptideV1
}

// PeptideWriterFunc drains args.In into w.
type PeptideWriterFunc func(w io.Writer, args PeptideArgs) error

// Writer registry (format → handler). Register in init() blocks.
var peptideWriters = map[string]PeptideWriterFunc{}

// RegisterPeptide adds or replaces the writer for format (last wins).
func RegisterPeptide(format string, fn PeptideWriterFunc) { peptideWriters[format] = fn }

// Formats lists the registered formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(peptideWriters))
	for f := range peptideWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WritePeptides dispatches to the writer registered for format. On an
// unknown format the input is drained so that senders never block.
func WritePeptides(format string, w io.Writer, args PeptideArgs) error {
	fn, ok := peptideWriters[format]
	if !ok {
		for range args.In {
		}
		return fmt.Errorf("unknown peptide format %q (no writer registered)", format)
	}
	return fn(w, args)
}

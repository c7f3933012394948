// internal/writers/jsonl.go
package writers

import (
	"io"

	"pepidx/internal/jsonlutil"
	"pepidx/pkg/api"
)

// StartPeptideJSONLWriter streams each peptide as one JSON line (v1).
func StartPeptideJSONLWriter(out io.Writer, bufSize int) (chan<- api.PeptideV1, <-chan error) {
	return jsonlutil.Start[api.PeptideV1](out, bufSize,
		func(p api.PeptideV1) any { return p },
		IsBrokenPipe,
	)
}

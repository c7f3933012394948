package output

import (
	"fmt"
	"io"
	"os"

	"pepidx/internal/jsonutil"
	"pepidx/pkg/api"
)

// WriteJSON writes a single JSON array of v1 peptides (pretty-indented).
func WriteJSON(w io.Writer, list []api.PeptideV1) error {
	if list == nil {
		list = []api.PeptideV1{}
	}
	return jsonutil.EncodePretty(w, list)
}

// WriteSummaryFile writes s as indented JSON to path.
func WriteSummaryFile(path string, s api.RunSummaryV1) error {
	return jsonutil.WriteFile(path, s)
}

// WriteProteinsFile writes the protein table to path.
func WriteProteinsFile(path string, list []api.ProteinV1, header bool) error {
	return writeFile(path, func(w io.Writer) error { return WriteProteinsTSV(w, list, header) })
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"pepidx/pkg/api"
)

// FormatRowsTSV returns one TSV row per evidence of p, or a single row with
// empty protein columns when p is unmatched. No trailing newlines.
func FormatRowsTSV(p api.PeptideV1) []string {
	class := p.TargetDecoy
	if class == "" {
		class = Unmatched
	}
	tail := fmt.Sprintf("%s\t%s\t%d", class, strconv.FormatBool(p.Unique), p.Proteins)
	if len(p.Evidences) == 0 {
		return []string{fmt.Sprintf("%s\t%s\t\t\t\t\t\t%s", p.Peptide, p.Sequence, tail)}
	}
	rows := make([]string, 0, len(p.Evidences))
	for _, e := range p.Evidences {
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s",
			p.Peptide, p.Sequence, e.Protein, e.Start, e.End, e.AABefore, e.AAAfter, tail))
	}
	return rows
}

// WriteText writes the rows of every peptide, optionally after TSVHeader.
func WriteText(w io.Writer, list []api.PeptideV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, p := range list {
		for _, row := range FormatRowsTSV(p) {
			if _, err := fmt.Fprintln(w, row); err != nil {
				return err
			}
		}
	}
	return nil
}

// StreamText writes rows as peptides arrive on in.
func StreamText(w io.Writer, in <-chan api.PeptideV1, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
			return err
		}
	}
	for p := range in {
		for _, row := range FormatRowsTSV(p) {
			if _, err := fmt.Fprintln(bw, row); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteProteinsTSV writes the --proteins table.
func WriteProteinsTSV(w io.Writer, list []api.ProteinV1, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, ProteinTSVHeader); err != nil {
			return err
		}
	}
	for _, p := range list {
		if _, err := fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%s\n", p.Accession, p.Decoy, p.Peptides, p.Length, p.Description); err != nil {
			return err
		}
	}
	return nil
}

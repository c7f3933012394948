package output

import (
	"sort"

	"pepidx/pkg/api"
)

// LessPeptide defines a stable order for peptides (for --sort).
func LessPeptide(a, b api.PeptideV1) bool {
	if a.Sequence != b.Sequence {
		return a.Sequence < b.Sequence
	}
	if a.Peptide != b.Peptide {
		return a.Peptide < b.Peptide
	}
	return a.Line < b.Line
}

// SortPeptides orders list in place.
func SortPeptides(list []api.PeptideV1) {
	sort.SliceStable(list, func(i, j int) bool { return LessPeptide(list[i], list[j]) })
}

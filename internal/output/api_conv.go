package output

import (
	"pepidx/internal/mapping"
	"pepidx/internal/protein"
	"pepidx/pkg/api"
)

// ToAPIPeptide converts a mapped peptide to the stable wire schema (v1).
// Protein descriptions are attached only when withDesc is set.
func ToAPIPeptide(h mapping.PeptideHit, withDesc bool) api.PeptideV1 {
	v := api.PeptideV1{
		ID:          h.ID,
		Line:        h.Line,
		Peptide:     h.Raw,
		Sequence:    h.Seq,
		TargetDecoy: h.Class,
		Unique:      h.Unique(),
		Proteins:    h.Proteins,
		Evidences:   make([]api.EvidenceV1, 0, len(h.Evidences)),
	}
	for _, e := range h.Evidences {
		ev := api.EvidenceV1{
			Protein:  e.Protein.Accession,
			Start:    e.Start,
			End:      e.End,
			AABefore: string(e.AABefore),
			AAAfter:  string(e.AAAfter),
			Decoy:    e.Protein.Decoy,
		}
		if site := e.Protein.Seq[e.Start:e.End]; site != h.Seq {
			ev.Site = site
		}
		if withDesc {
			ev.Description = e.Protein.Description
		}
		v.Evidences = append(v.Evidences, ev)
	}
	return v
}

// ToAPIProteins lists database proteins with their reference counts.
// Unreferenced proteins are kept only when keepUnreferenced is set.
func ToAPIProteins(db *protein.DB, refs []int, keepUnreferenced bool) []api.ProteinV1 {
	out := make([]api.ProteinV1, 0, db.Len())
	for i, p := range db.Proteins {
		if refs[i] == 0 && !keepUnreferenced {
			continue
		}
		out = append(out, api.ProteinV1{
			Accession:   p.Accession,
			Description: p.Description,
			Decoy:       p.Decoy,
			Peptides:    refs[i],
			Length:      len(p.Seq),
		})
	}
	return out
}

// ToAPISummary converts the run statistics to the wire schema.
func ToAPISummary(s mapping.Summary, version string, maxAAA, maxMM int) api.RunSummaryV1 {
	return api.RunSummaryV1{
		RunID:             s.RunID,
		Version:           version,
		Peptides:          s.Peptides,
		Sequences:         s.Sequences,
		Proteins:          s.Proteins,
		DecoyProteins:     s.DecoyProteins,
		Evidences:         s.Evidences,
		MatchedUnique:     s.MatchedUnique,
		MatchedShared:     s.MatchedShared,
		Unmatched:         s.Unmatched,
		Target:            s.Target,
		Decoy:             s.Decoy,
		TargetDecoy:       s.TargetDecoy,
		Referenced:        s.Referenced,
		Unreferenced:      s.Unreferenced,
		TruncatedProteins: s.TruncatedProteins,
		MaxAAA:            maxAAA,
		MaxMM:             maxMM,
	}
}

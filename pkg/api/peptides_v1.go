// pkg/api/peptides_v1.go
package api

// EvidenceV1 is one occurrence of a peptide in a protein.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type EvidenceV1 struct {
	Protein     string `json:"protein"`
	Description string `json:"description,omitempty"`
	Start       int    `json:"start"`          // 0-based, protein coordinates
	End         int    `json:"end"`            // exclusive
	AABefore    string `json:"aa_before"`      // "[" at the N-terminus
	AAAfter     string `json:"aa_after"`       // "]" at the C-terminus
	Site        string `json:"site,omitempty"` // protein residues, only when they differ from the sequence
	Decoy       bool   `json:"decoy,omitempty"`
}

// PeptideV1 is the stable JSON/JSONL schema for one input peptide.
type PeptideV1 struct {
	ID          string       `json:"id,omitempty"`
	Line        int          `json:"line"`
	Peptide     string       `json:"peptide"`                // as written in the input
	Sequence    string       `json:"sequence"`               // normalised residues
	TargetDecoy string       `json:"target_decoy,omitempty"` // "target" | "decoy" | "target+decoy"
	Unique      bool         `json:"unique"`
	Proteins    int          `json:"proteins"`
	Evidences   []EvidenceV1 `json:"evidences"`
}

// ProteinV1 is one database protein with its peptide reference count.
type ProteinV1 struct {
	Accession   string `json:"accession"`
	Description string `json:"description,omitempty"`
	Decoy       bool   `json:"decoy"`
	Peptides    int    `json:"peptides"` // distinct sequences referencing it
	Length      int    `json:"length"`
}

// RunSummaryV1 is the stable schema of the --summary file.
type RunSummaryV1 struct {
	RunID             string `json:"run_id"`
	Version           string `json:"version"`
	Peptides          int    `json:"peptides"`
	Sequences         int    `json:"sequences"`
	Proteins          int    `json:"proteins"`
	DecoyProteins     int    `json:"decoy_proteins"`
	Evidences         int    `json:"evidences"`
	MatchedUnique     int    `json:"matched_unique"`
	MatchedShared     int    `json:"matched_shared"`
	Unmatched         int    `json:"unmatched"`
	Target            int    `json:"target"`
	Decoy             int    `json:"decoy"`
	TargetDecoy       int    `json:"target_decoy"`
	Referenced        int    `json:"referenced_proteins"`
	Unreferenced      int    `json:"unreferenced_proteins"`
	TruncatedProteins int    `json:"truncated_proteins,omitempty"`
	MaxAAA            int    `json:"aaa_max"`
	MaxMM             int    `json:"mm_max"`
}

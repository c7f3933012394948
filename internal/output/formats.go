package output

// Output formats accepted by --output.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatJSONL  = "jsonl"
	FormatPretty = "pretty"
)

// TSVHeader is the canonical header row for text/TSV evidence output.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "peptide\tsequence\tprotein\tstart\tend\taa_before\taa_after\ttarget_decoy\tunique\tproteins"

// ProteinTSVHeader heads the --proteins table.
const ProteinTSVHeader = "accession\tdecoy\tpeptides\tlength\tdescription"

// Unmatched fills the target_decoy column of peptides without evidence.
const Unmatched = "unmatched"

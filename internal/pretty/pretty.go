// Package pretty renders peptide evidences as small ASCII alignments.
package pretty

import (
	"fmt"
	"strings"

	"pepidx/core/aa"
	"pepidx/pkg/api"
)

// Options control the ASCII rendering.
type Options struct {
	// Draw the residues flanking the site ("K.PEPTIDE.G").
	ShowFlanks bool

	// Glyphs
	ExactGlyph    string // default "|"
	PartialGlyph  string // default "¦", protein ambiguity code resolved to the peptide residue
	MismatchGlyph string // default " "
}

// DefaultOptions is the look used by --output pretty.
var DefaultOptions = Options{
	ShowFlanks:    true,
	ExactGlyph:    "|",
	PartialGlyph:  "¦",
	MismatchGlyph: " ",
}

const linePrefix = "# "

func (o Options) exact() string {
	if o.ExactGlyph == "" {
		return DefaultOptions.ExactGlyph
	}
	return o.ExactGlyph
}

func (o Options) partial() string {
	if o.PartialGlyph == "" {
		return DefaultOptions.PartialGlyph
	}
	return o.PartialGlyph
}

func (o Options) mismatch() string {
	if o.MismatchGlyph == "" {
		return DefaultOptions.MismatchGlyph
	}
	return o.MismatchGlyph
}

// MatchLine returns one glyph per peptide residue: exact where the site
// carries the same residue, partial where the site's ambiguity code covers
// it, and the mismatch glyph otherwise.
func MatchLine(pep, site string, opt Options) string {
	n := min(len(pep), len(site))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		switch {
		case pep[i] == site[i]:
			b.WriteString(opt.exact())
		case aa.FromByte(site[i]).Resolves(aa.FromByte(pep[i])):
			b.WriteString(opt.partial())
		default:
			b.WriteString(opt.mismatch())
		}
	}
	return b.String()
}

// RenderEvidence prints the block for one evidence of p.
func RenderEvidence(p api.PeptideV1, e api.EvidenceV1, opt Options) string {
	site := e.Site
	if site == "" {
		site = p.Sequence
	}
	pad := ""
	top := site
	if opt.ShowFlanks {
		top = e.AABefore + "." + site + "." + e.AAAfter
		pad = strings.Repeat(" ", len(e.AABefore)+1)
	}
	kind := "target"
	if e.Decoy {
		kind = "decoy"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s  %s:%d-%d  %s\n", linePrefix, p.Peptide, e.Protein, e.Start, e.End, kind)
	fmt.Fprintf(&b, "%s  %s\n", linePrefix, top)
	fmt.Fprintf(&b, "%s  %s%s\n", linePrefix, pad, strings.TrimRight(MatchLine(p.Sequence, site, opt), " "))
	fmt.Fprintf(&b, "%s  %s%s\n", linePrefix, pad, p.Sequence)
	b.WriteString("#\n")
	return b.String()
}

// RenderPeptide prints every evidence of p, or a one-line note when p
// matched nothing.
func RenderPeptide(p api.PeptideV1, opt Options) string {
	if len(p.Evidences) == 0 {
		return fmt.Sprintf("%s%s  (no match)\n#\n", linePrefix, p.Peptide)
	}
	var b strings.Builder
	for _, e := range p.Evidences {
		b.WriteString(RenderEvidence(p, e, opt))
	}
	return b.String()
}

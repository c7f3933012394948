// Package indexer compiles a peptide list into one ambiguity-tolerant
// automaton and finds peptide occurrences in proteins.
package indexer

import (
	"fmt"

	"pepidx/core/actrie"
	"pepidx/internal/prefilter"
	"pepidx/internal/protein"
)

// Terminus markers for AABefore / AAAfter.
const (
	NTerm byte = '['
	CTerm byte = ']'
)

// Options selects the tolerance of the scan.
type Options struct {
	MaxAAA    int
	MaxMM     int
	MaxSpawns int // 0 = unlimited
	Prefilter bool
}

// Match is one peptide occurrence. Start and End are protein coordinates,
// End exclusive.
type Match struct {
	Peptide  int // index into Peptides()
	Protein  int // protein.Protein.Index
	Start    int
	End      int
	AABefore byte
	AAAfter  byte
}

// Result is the outcome of scanning one protein window.
type Result struct {
	Matches     []Match
	Prefiltered bool // skipped by the literal prefilter
	Truncated   bool // spawn cap hit; tolerant matches may be missing
}

// Indexer is immutable after New and safe for concurrent use; each
// goroutine scans with its own State.
type Indexer struct {
	trie     *actrie.Trie
	peptides []string
	pre      *prefilter.Filter
	cfg      actrie.MatchConfig
}

// New builds the index over the distinct sequences in peptides. Sequence i
// of peptides becomes needle i.
func New(peptides []string, o Options) (*Indexer, error) {
	t := actrie.New(o.MaxAAA, o.MaxMM)
	t.SetMaxSpawns(o.MaxSpawns)
	if err := t.AddNeedlesAndCompress(peptides); err != nil {
		return nil, fmt.Errorf("indexer: %w", err)
	}
	x := &Indexer{trie: t, peptides: peptides, cfg: t.Config()}
	if o.Prefilter && !x.cfg.Tolerant() {
		pre, err := prefilter.New(peptides)
		if err != nil {
			return nil, fmt.Errorf("indexer: %w", err)
		}
		x.pre = pre
	}
	return x, nil
}

// NewState returns a scan cursor for this index.
func (x *Indexer) NewState() *actrie.State { return actrie.NewState() }

// Peptides returns the indexed sequences by needle index.
func (x *Indexer) Peptides() []string { return x.peptides }

// Config returns the budgets every scan uses.
func (x *Indexer) Config() actrie.MatchConfig { return x.cfg }

// MaxLen returns the longest peptide length.
func (x *Indexer) MaxLen() int { return x.trie.MaxNeedleLen() }

// Nodes returns the automaton size.
func (x *Indexer) Nodes() int { return x.trie.NodeCount() }

// Scan finds every peptide in p.
func (x *Indexer) Scan(st *actrie.State, p *protein.Protein) Result {
	return x.ScanWindow(st, p, 0, len(p.Seq))
}

// ScanWindow finds the peptides lying wholly inside p.Seq[off:end].
// Coordinates and flanking residues refer to the whole protein.
func (x *Indexer) ScanWindow(st *actrie.State, p *protein.Protein, off, end int) Result {
	var res Result
	window := p.Seq[off:end]
	if x.pre != nil && prefilter.Applicable(x.cfg, window) && !x.pre.MayMatch([]byte(window)) {
		res.Prefiltered = true
		return res
	}
	st.SetQuery(window)
	for x.trie.NextHits(st) {
		stop := off + st.TextPos()
		for _, h := range st.Hits() {
			res.Matches = append(res.Matches, x.match(p, h.Needle, off+h.Pos, stop))
		}
	}
	res.Truncated = st.Truncated()
	return res
}

func (x *Indexer) match(p *protein.Protein, needle, start, stop int) Match {
	m := Match{Peptide: needle, Protein: p.Index, Start: start, End: stop, AABefore: NTerm, AAAfter: CTerm}
	if start > 0 {
		m.AABefore = p.Seq[start-1]
	}
	if stop < len(p.Seq) {
		m.AAAfter = p.Seq[stop]
	}
	return m
}

// Package mapping turns raw matches into per-peptide protein references,
// classifies them as target or decoy, and computes the run summary.
package mapping

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"pepidx/core/peptide"
	"pepidx/internal/indexer"
	"pepidx/internal/protein"
)

var (
	// ErrUnmatchedPeptides is returned by Check when some peptide matched no
	// protein and unmatched peptides are not allowed.
	ErrUnmatchedPeptides = errors.New("mapping: peptides without protein match")
	// ErrNoDecoyHits is returned by Check when no peptide hit a decoy protein
	// and the missing-decoy action is "error".
	ErrNoDecoyHits = errors.New("mapping: no peptide matched a decoy protein")
)

// Target/decoy classes of a matched peptide.
const (
	ClassTarget      = "target"
	ClassDecoy       = "decoy"
	ClassTargetDecoy = "target+decoy"
)

// Missing-decoy actions.
const (
	DecoyError  = "error"
	DecoyWarn   = "warn"
	DecoySilent = "silent"
)

// Evidence is one occurrence of a peptide in a protein.
type Evidence struct {
	Protein  *protein.Protein
	Start    int
	End      int
	AABefore byte
	AAAfter  byte
}

// PeptideHit is one input peptide with all its occurrences.
type PeptideHit struct {
	peptide.Peptide
	Evidences []Evidence
	Class     string // "" when unmatched
	Proteins  int    // distinct proteins referenced
}

// Unique reports whether the peptide maps to exactly one protein.
func (h PeptideHit) Unique() bool { return h.Proteins == 1 }

// Matched reports whether the peptide has at least one evidence.
func (h PeptideHit) Matched() bool { return len(h.Evidences) > 0 }

// Summary is the run-level statistics block.
type Summary struct {
	RunID             string
	Peptides          int
	Sequences         int // distinct normalised sequences
	Proteins          int
	DecoyProteins     int
	Evidences         int
	MatchedUnique     int
	MatchedShared     int
	Unmatched         int
	Target            int
	Decoy             int
	TargetDecoy       int
	Referenced        int // proteins with at least one peptide
	Unreferenced      int
	TruncatedProteins int
}

// Result is the outcome of a mapping run.
type Result struct {
	Peptides []PeptideHit
	// Refs counts the distinct peptide sequences referencing each protein,
	// by protein index.
	Refs    []int
	Summary Summary
}

// Collector accumulates matches by peptide sequence. It is not safe for
// concurrent use; the pipeline calls Add from a single goroutine.
type Collector struct {
	bySeq [][]indexer.Match
}

// NewCollector sizes a collector for n indexed sequences.
func NewCollector(n int) *Collector {
	return &Collector{bySeq: make([][]indexer.Match, n)}
}

// Add records one match. It satisfies the pipeline visit callback.
func (c *Collector) Add(m indexer.Match) error {
	if m.Peptide < 0 || m.Peptide >= len(c.bySeq) {
		return fmt.Errorf("mapping: match for unknown peptide %d", m.Peptide)
	}
	c.bySeq[m.Peptide] = append(c.bySeq[m.Peptide], m)
	return nil
}

// Build assigns the collected matches to peps. seqs is the indexed sequence
// list (needle order) and db the database the matches refer to.
func (c *Collector) Build(peps []peptide.Peptide, seqs []string, db *protein.DB) *Result {
	needle := make(map[string]int, len(seqs))
	for i, s := range seqs {
		needle[s] = i
	}

	// evidences and class per sequence, shared by every peptide with it
	type perSeq struct {
		ev       []Evidence
		class    string
		proteins int
	}
	cache := make([]*perSeq, len(seqs))
	refs := make([]int, db.Len())

	res := &Result{Peptides: make([]PeptideHit, 0, len(peps))}
	for _, p := range peps {
		i, ok := needle[p.Seq]
		if !ok {
			res.Peptides = append(res.Peptides, PeptideHit{Peptide: p})
			continue
		}
		ps := cache[i]
		if ps == nil {
			ps = &perSeq{}
			ps.ev, ps.class, ps.proteins = evidences(c.bySeq[i], db)
			cache[i] = ps
			seen := -1
			for _, e := range ps.ev {
				if e.Protein.Index != seen {
					refs[e.Protein.Index]++
					seen = e.Protein.Index
				}
			}
		}
		res.Peptides = append(res.Peptides, PeptideHit{Peptide: p, Evidences: ps.ev, Class: ps.class, Proteins: ps.proteins})
	}
	res.Refs = refs
	res.Summary = summarize(res, seqs, db)
	return res
}

func evidences(ms []indexer.Match, db *protein.DB) ([]Evidence, string, int) {
	if len(ms) == 0 {
		return nil, "", 0
	}
	sort.Slice(ms, func(a, b int) bool {
		if ms[a].Protein != ms[b].Protein {
			return ms[a].Protein < ms[b].Protein
		}
		return ms[a].Start < ms[b].Start
	})
	out := make([]Evidence, 0, len(ms))
	var target, decoy bool
	proteins := 0
	for k, m := range ms {
		// the window dedupe set is bounded; drop repeats it let through
		if k > 0 && ms[k-1].Protein == m.Protein && ms[k-1].Start == m.Start {
			continue
		}
		p := &db.Proteins[m.Protein]
		out = append(out, Evidence{Protein: p, Start: m.Start, End: m.End, AABefore: m.AABefore, AAAfter: m.AAAfter})
		if k == 0 || ms[k-1].Protein != m.Protein {
			proteins++
		}
		if p.Decoy {
			decoy = true
		} else {
			target = true
		}
	}
	class := ClassTarget
	switch {
	case target && decoy:
		class = ClassTargetDecoy
	case decoy:
		class = ClassDecoy
	}
	return out, class, proteins
}

func summarize(res *Result, seqs []string, db *protein.DB) Summary {
	s := Summary{
		RunID:         uuid.NewString(),
		Peptides:      len(res.Peptides),
		Sequences:     len(seqs),
		Proteins:      db.Len(),
		DecoyProteins: db.Decoys(),
	}
	for _, h := range res.Peptides {
		s.Evidences += len(h.Evidences)
		switch {
		case !h.Matched():
			s.Unmatched++
		case h.Unique():
			s.MatchedUnique++
		default:
			s.MatchedShared++
		}
		switch h.Class {
		case ClassTarget:
			s.Target++
		case ClassDecoy:
			s.Decoy++
		case ClassTargetDecoy:
			s.TargetDecoy++
		}
	}
	for _, n := range res.Refs {
		if n > 0 {
			s.Referenced++
		} else {
			s.Unreferenced++
		}
	}
	return s
}

// Policy decides which mapping outcomes fail the run.
type Policy struct {
	AllowUnmatched     bool
	MissingDecoyAction string // DecoyError, DecoyWarn or DecoySilent
}

// Check applies p to the summary. Conditions that p downgrades to warnings
// are returned as messages; conditions it treats as failures are returned
// as an error wrapping ErrUnmatchedPeptides or ErrNoDecoyHits.
func (r *Result) Check(p Policy) ([]string, error) {
	var warns []string
	s := r.Summary
	if s.Decoy+s.TargetDecoy == 0 && s.Evidences > 0 {
		switch p.MissingDecoyAction {
		case DecoyError:
			return warns, fmt.Errorf("%w (%d decoy proteins in database)", ErrNoDecoyHits, s.DecoyProteins)
		case DecoySilent:
		default:
			warns = append(warns, fmt.Sprintf("no peptide matched a decoy protein (%d decoy proteins in database)", s.DecoyProteins))
		}
	}
	if s.Unmatched > 0 {
		msg := fmt.Sprintf("%d of %d peptides matched no protein", s.Unmatched, s.Peptides)
		if !p.AllowUnmatched {
			return warns, fmt.Errorf("%w: %s", ErrUnmatchedPeptides, msg)
		}
		warns = append(warns, msg)
	}
	return warns, nil
}

// Unmatched returns the peptides without evidence.
func (r *Result) Unmatched() []PeptideHit {
	var out []PeptideHit
	for _, h := range r.Peptides {
		if !h.Matched() {
			out = append(out, h)
		}
	}
	return out
}

package actrie

import "pepidx/core/aa"

// MatchConfig is the immutable budget set used for one scan.
type MatchConfig struct {
	MaxAAA    int // ambiguous residues resolved per hit
	MaxMM     int // mismatches per hit
	MaxSpawns int // live partial matches per scan, 0 = unlimited
}

// Tolerant reports whether any budget allows a non-exact residue.
func (c MatchConfig) Tolerant() bool { return c.MaxAAA > 0 || c.MaxMM > 0 }

// Cost is what a partial match has spent so far.
type Cost struct {
	AAA int
	MM  int
}

// Within reports whether c fits the budgets of cfg.
func (c Cost) Within(cfg MatchConfig) bool {
	return c.AAA >= 0 && c.MM >= 0 && c.AAA <= cfg.MaxAAA && c.MM <= cfg.MaxMM
}

// Add returns c charged with outcome o.
func (c Cost) Add(o Outcome) Cost {
	switch o {
	case AmbiguousResolved:
		c.AAA++
	case Mismatch:
		c.MM++
	}
	return c
}

// Outcome is how one haystack residue is paired with one needle residue.
type Outcome uint8

const (
	Exact Outcome = iota
	AmbiguousResolved
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Exact:
		return "exact"
	case AmbiguousResolved:
		return "ambiguous"
	case Mismatch:
		return "mismatch"
	}
	return "unknown"
}

// Outcomes is a set of affordable outcomes.
type Outcomes uint8

func (s Outcomes) Has(o Outcome) bool { return s&(1<<o) != 0 }
func (s Outcomes) Empty() bool        { return s == 0 }

// Resolve lists the ways haystack residue h can stand in for needle residue
// n given what a partial match has already spent.
//
// Identical codes are Exact and nothing else, including an ambiguous code
// meeting itself. Otherwise an ambiguous h that resolves to n may be charged
// to the ambiguity budget, and any pairing may be charged as a mismatch;
// both are returned when both are affordable.
func Resolve(h, n aa.AA, spent Cost, cfg MatchConfig) Outcomes {
	if h == n {
		return 1 << Exact
	}
	var s Outcomes
	if h.Resolves(n) && spent.AAA < cfg.MaxAAA {
		s |= 1 << AmbiguousResolved
	}
	if spent.MM < cfg.MaxMM {
		s |= 1 << Mismatch
	}
	return s
}

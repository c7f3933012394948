// Package prefilter rejects proteins that contain none of the peptides
// verbatim, so that exact-only scans can skip the trie walk.
package prefilter

import (
	"errors"
	"fmt"

	"github.com/coregx/ahocorasick"

	"pepidx/core/actrie"
)

// ErrNoPatterns is returned by New for an empty pattern list.
var ErrNoPatterns = errors.New("prefilter: no patterns")

// Filter is a literal multi-pattern matcher. It is safe for concurrent use.
type Filter struct {
	ac       *ahocorasick.Automaton
	patterns int
}

// New compiles patterns into one automaton.
func New(patterns []string) (*Filter, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	b := ahocorasick.NewBuilder()
	for _, p := range patterns {
		b.AddPattern([]byte(p))
	}
	ac, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: build automaton: %w", err)
	}
	return &Filter{ac: ac, patterns: len(patterns)}, nil
}

// Patterns returns the number of compiled patterns.
func (f *Filter) Patterns() int { return f.patterns }

// MayMatch reports whether seq contains at least one pattern.
func (f *Filter) MayMatch(seq []byte) bool { return f.ac.IsMatch(seq) }

// Applicable reports whether a literal search gives the same answer as a
// trie scan of seq under cfg: no tolerance and nothing but A..Z in seq.
// Anything else (skipped characters, lowercase input) can join residues
// the literal matcher would keep apart.
func Applicable(cfg actrie.MatchConfig, seq string) bool {
	if cfg.Tolerant() {
		return false
	}
	for i := 0; i < len(seq); i++ {
		if c := seq[i]; c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

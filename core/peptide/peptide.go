// Package peptide loads peptide lists and normalises peptide sequences to
// the residue strings the index is built from.
package peptide

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pepidx/core/aa"
	"pepidx/core/fasta"
)

var (
	// ErrNoPeptides is returned when a list holds no peptide at all.
	ErrNoPeptides = errors.New("peptide: no peptides in input")
	// ErrInvalidSequence wraps sequences with characters outside A..Z.
	ErrInvalidSequence = errors.New("peptide: invalid sequence")
)

// Peptide is one input line after normalisation.
type Peptide struct {
	ID   string // optional, from "id<TAB>sequence" lines
	Raw  string // sequence as written
	Seq  string // normalised residues
	Line int
}

// Normalize strips modifications written in () or [], the X.PEPTIDE.Y flank
// notation and stop codons, and uppercases the rest. With il set, L and J
// become I so that isobaric residues compare equal.
func Normalize(raw string, il bool) (string, error) {
	s := stripMods(strings.TrimSpace(raw))
	s = stripFlanks(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '*' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if !aa.FromByte(c).IsValid() {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidSequence, raw, c)
		}
		if il && (c == 'L' || c == 'J') {
			c = 'I'
		}
		b.WriteByte(c)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: %q is empty after normalisation", ErrInvalidSequence, raw)
	}
	return b.String(), nil
}

func stripMods(s string) string {
	if !strings.ContainsAny(s, "([") {
		return s
	}
	var b strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

// stripFlanks removes "K.PEPTIDE.R" style neighbours; "-" marks a terminus.
func stripFlanks(s string) string {
	if len(s) >= 5 && s[1] == '.' && s[len(s)-2] == '.' {
		return s[2 : len(s)-2]
	}
	return s
}

// Read parses a peptide list: one "sequence" or "id<TAB>sequence" per line,
// '#' starts a comment line and blank lines are ignored.
func Read(ctx context.Context, r io.Reader, il bool) ([]Peptide, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var out []Peptide
	line := 0
	for sc.Scan() {
		line++
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		var id string
		if k := strings.IndexByte(text, '\t'); k >= 0 {
			id, text = strings.TrimSpace(text[:k]), strings.TrimSpace(text[k+1:])
		}
		seq, err := Normalize(text, il)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, Peptide{ID: id, Raw: text, Seq: seq, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("peptide scan: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrNoPeptides
	}
	return out, nil
}

// Load reads a peptide list from path; "-" is stdin and gzip is accepted.
func Load(ctx context.Context, path string, il bool) ([]Peptide, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	peps, err := Read(ctx, rc, il)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return peps, nil
}

// Unique returns the distinct normalised sequences in first-seen order.
func Unique(peps []Peptide) []string {
	seen := make(map[string]struct{}, len(peps))
	out := make([]string, 0, len(peps))
	for _, p := range peps {
		if _, ok := seen[p.Seq]; ok {
			continue
		}
		seen[p.Seq] = struct{}{}
		out = append(out, p.Seq)
	}
	return out
}

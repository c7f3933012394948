// Package actrie is an Aho-Corasick automaton over amino-acid needles that
// tolerates ambiguous residues and mismatches in the scanned sequence.
//
// Build a Trie with AddNeedle(s), Compress it, then scan any number of
// haystacks, each with its own State:
//
//	t := actrie.New(maxAAA, maxMM)
//	_ = t.AddNeedlesAndCompress(peptides)
//	st := actrie.NewState()
//	st.SetQuery(protein)
//	for h := range t.All(st) { ... }
//
// A compressed Trie is read-only during scans and may be shared by
// concurrent States. Adding needles while a scan is running is unsupported.
package actrie

import (
	"errors"
	"fmt"

	"pepidx/core/aa"
)

// ErrInvalidValue is returned when a needle contains a character outside
// the residue alphabet.
var ErrInvalidValue = errors.New("actrie: invalid value")

// DefaultMaxSpawns bounds the live partial matches of one scan.
const DefaultMaxSpawns = 1 << 16

/*
Nodes live in one slice and refer to each other by index; node 0 is the root
and never a child. After Compress, next[c] is the full goto/failure transition.
A transition is a real trie edge iff the target is exactly one level deeper,
which is how AddNeedle tells edges from failure shortcuts after a Compress.
*/
type node struct {
	next    [aa.Alphabet]int32
	fail    int32
	out     int32 // nearest proper suffix node with needles, -1 if none
	depth   int32
	edges   []aa.AA // labels of real children
	needles []int   // needles ending exactly here
}

// Trie owns the needle set and the matching budgets.
type Trie struct {
	nodes   []node
	needles [][]aa.AA
	texts   []string
	maxLen  int

	maxAAA    int
	maxMM     int
	maxSpawns int

	dirty bool
}

// New returns an empty trie. maxAAA bounds ambiguous-residue resolutions and
// maxMM bounds mismatches per reported hit; 0,0 means exact matching.
func New(maxAAA, maxMM int) *Trie {
	t := &Trie{maxSpawns: DefaultMaxSpawns}
	t.nodes = append(t.nodes, node{out: -1})
	t.SetMaxAAACount(maxAAA)
	t.SetMaxMMCount(maxMM)
	return t
}

// AddNeedle inserts s and assigns it the next needle index. Ambiguous codes
// are accepted literally. The trie must be compressed again before scanning.
func (t *Trie) AddNeedle(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty needle", ErrInvalidValue)
	}
	codes, bad := aa.Parse(s)
	if bad >= 0 {
		return fmt.Errorf("%w: needle %q has character %q at offset %d", ErrInvalidValue, s, s[bad], bad)
	}

	cur := int32(0)
	for _, c := range codes {
		nx := t.nodes[cur].next[c]
		if nx == 0 || t.nodes[nx].depth != t.nodes[cur].depth+1 {
			nx = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{depth: t.nodes[cur].depth + 1, out: -1})
			t.nodes[cur].next[c] = nx
			t.nodes[cur].edges = append(t.nodes[cur].edges, c)
		}
		cur = nx
	}
	t.nodes[cur].needles = append(t.nodes[cur].needles, len(t.needles))
	t.needles = append(t.needles, codes)
	t.texts = append(t.texts, s)
	if len(codes) > t.maxLen {
		t.maxLen = len(codes)
	}
	t.dirty = true
	return nil
}

// AddNeedles adds each needle in order. It stops at the first invalid one;
// needles added before it stay in the trie.
func (t *Trie) AddNeedles(list []string) error {
	for _, s := range list {
		if err := t.AddNeedle(s); err != nil {
			return err
		}
	}
	return nil
}

// AddNeedlesAndCompress is AddNeedles followed by Compress. The trie is
// compressed even when a needle fails, so the committed ones are scannable.
func (t *Trie) AddNeedlesAndCompress(list []string) error {
	err := t.AddNeedles(list)
	t.Compress()
	return err
}

// Compress computes failure links, output links and the full transition
// table breadth-first. It may be called again after adding needles.
func (t *Trie) Compress() {
	queue := make([]int32, 0, len(t.nodes))

	root := &t.nodes[0]
	root.fail, root.out = 0, -1
	for c := 0; c < aa.Alphabet; c++ {
		s := root.next[c]
		if s != 0 && t.nodes[s].depth == 1 {
			t.nodes[s].fail = 0
			queue = append(queue, s)
		} else {
			root.next[c] = 0
		}
	}

	for qh := 0; qh < len(queue); qh++ {
		r := queue[qh]
		rn := &t.nodes[r]
		f := rn.fail
		if len(t.nodes[f].needles) > 0 {
			rn.out = f
		} else {
			rn.out = t.nodes[f].out
		}
		for c := 0; c < aa.Alphabet; c++ {
			s := rn.next[c]
			if s != 0 && t.nodes[s].depth == rn.depth+1 {
				t.nodes[s].fail = t.nodes[f].next[c]
				queue = append(queue, s)
			} else {
				rn.next[c] = t.nodes[f].next[c]
			}
		}
	}
	t.dirty = false
}

// SetMaxAAACount sets the ambiguous-residue budget for scans started later.
func (t *Trie) SetMaxAAACount(n int) {
	if n < 0 {
		n = 0
	}
	t.maxAAA = n
}

// SetMaxMMCount sets the mismatch budget for scans started later.
func (t *Trie) SetMaxMMCount(n int) {
	if n < 0 {
		n = 0
	}
	t.maxMM = n
}

// SetMaxSpawns caps the live partial matches of one scan (0 = unlimited).
// A scan that hits the cap drops hypotheses and reports State.Truncated.
func (t *Trie) SetMaxSpawns(n int) {
	if n < 0 {
		n = 0
	}
	t.maxSpawns = n
}

func (t *Trie) MaxAAACount() int { return t.maxAAA }
func (t *Trie) MaxMMCount() int  { return t.maxMM }
func (t *Trie) MaxSpawns() int   { return t.maxSpawns }

// Config returns the budgets a scan started now would use.
func (t *Trie) Config() MatchConfig {
	return MatchConfig{MaxAAA: t.maxAAA, MaxMM: t.maxMM, MaxSpawns: t.maxSpawns}
}

// NeedleCount returns the number of needles added so far.
func (t *Trie) NeedleCount() int { return len(t.needles) }

// Needle returns needle i as it was added.
func (t *Trie) Needle(i int) string { return t.texts[i] }

// NeedleLen returns the residue count of needle i.
func (t *Trie) NeedleLen(i int) int { return len(t.needles[i]) }

// MaxNeedleLen returns the length of the longest needle.
func (t *Trie) MaxNeedleLen() int { return t.maxLen }

// NodeCount returns the number of trie nodes including the root.
func (t *Trie) NodeCount() int { return len(t.nodes) }

// Compressed reports whether every added needle is reachable by scans.
func (t *Trie) Compressed() bool { return !t.dirty }

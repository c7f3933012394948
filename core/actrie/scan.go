package actrie

import (
	"iter"
	"slices"

	"pepidx/core/aa"
)

// NextHits consumes one more valid residue of the state's query and updates
// every partial match. It returns false once the query is exhausted. After a
// true return, s.Hits holds each (needle, start) whose match ends at the
// residue just consumed.
//
// It panics if needles were added since the last Compress.
func (t *Trie) NextHits(s *State) bool {
	if t.dirty {
		panic("actrie: scan on a trie with uncompressed needles; call Compress first")
	}
	if !s.ready {
		s.begin(t)
	} else if s.trie != t {
		panic("actrie: state belongs to another trie; call SetQuery first")
	}
	s.hits = s.hits[:0]
	s.read = 0

	c := s.NextValidAA()
	if !c.IsValid() {
		return false
	}
	s.ring[s.n%len(s.ring)] = s.pos - 1
	s.n++

	tolerant := s.cfg.Tolerant()
	if tolerant {
		t.advanceSpawns(s, c)
		t.createSpawns(s, c)
	}

	s.cur = t.nodes[s.cur].next[c]
	t.emitExact(s)

	if tolerant {
		t.settleSpawns(s)
	}
	return true
}

// GetAllHits runs the scan to the end and returns every hit in the order
// the residues ending them were consumed.
func (t *Trie) GetAllHits(s *State) []Hit {
	var out []Hit
	for t.NextHits(s) {
		out = append(out, s.hits...)
	}
	return out
}

// All yields the remaining hits of s lazily. The sequence is forward-only:
// ranging over it again continues where the last loop stopped, starting
// with any hits of the current step that were not yet yielded.
func (t *Trie) All(s *State) iter.Seq[Hit] {
	return func(yield func(Hit) bool) {
		for {
			for s.read < len(s.hits) {
				h := s.hits[s.read]
				s.read++
				if !yield(h) {
					return
				}
			}
			if !t.NextHits(s) {
				return
			}
		}
	}
}

// FindAll scans haystack with a fresh State.
func (t *Trie) FindAll(haystack string) []Hit {
	s := NewState()
	s.SetQuery(haystack)
	return t.GetAllHits(s)
}

func (t *Trie) emitExact(s *State) {
	for v := s.cur; v > 0; v = t.nodes[v].out {
		for _, id := range t.nodes[v].needles {
			s.hits = append(s.hits, Hit{Needle: id, Pos: s.startOf(len(t.needles[id]) - 1)})
		}
	}
}

// push stores a spawn unless it is over budget or the cap is reached.
func (s *State) push(next []spawn, sp spawn) []spawn {
	if !sp.cost.Within(s.cfg) {
		return next
	}
	if s.cfg.MaxSpawns > 0 && len(next) >= s.cfg.MaxSpawns {
		s.truncated = true
		return next
	}
	return append(next, sp)
}

// advanceSpawns moves every live spawn across each edge of its node that c
// can pay for. Spawns with nothing affordable are dropped.
func (t *Trie) advanceSpawns(s *State, c aa.AA) {
	next := s.spare[:0]
	for _, sp := range s.spawns {
		nd := &t.nodes[sp.node]
		for _, e := range nd.edges {
			outs := Resolve(c, e, sp.cost, s.cfg)
			for o := Exact; o <= Mismatch; o++ {
				if outs.Has(o) {
					next = s.push(next, spawn{node: nd.next[e], start: sp.start, cost: sp.cost.Add(o)})
				}
			}
		}
	}
	s.spare = s.spawns
	s.spawns = next
}

// createSpawns opens a costed hypothesis for every exact prefix currently
// matching (the main cursor and its failure chain, down to the root) whose
// next residue differs from c. Exact continuations stay with the main cursor.
func (t *Trie) createSpawns(s *State, c aa.AA) {
	for v := s.cur; ; v = t.nodes[v].fail {
		nd := &t.nodes[v]
		if len(nd.edges) > 0 {
			start := s.startOf(int(nd.depth))
			for _, e := range nd.edges {
				if e == c {
					continue
				}
				outs := Resolve(c, e, Cost{}, s.cfg)
				for o := AmbiguousResolved; o <= Mismatch; o++ {
					if outs.Has(o) {
						s.spawns = s.push(s.spawns, spawn{node: nd.next[e], start: start, cost: Cost{}.Add(o)})
					}
				}
			}
		}
		if v == 0 {
			break
		}
	}
}

// settleSpawns keeps only Pareto-minimal costs per (node, start), reports
// needles ending at a spawn node once per start, and drops spawns that
// reached a leaf.
func (t *Trie) settleSpawns(s *State) {
	if len(s.spawns) == 0 {
		return
	}
	slices.SortFunc(s.spawns, func(a, b spawn) int {
		switch {
		case a.start != b.start:
			return a.start - b.start
		case a.node != b.node:
			return int(a.node - b.node)
		case a.cost.AAA != b.cost.AAA:
			return a.cost.AAA - b.cost.AAA
		}
		return a.cost.MM - b.cost.MM
	})

	kept := s.spawns[:0]
	groupFrom := 0
	prev := spawn{node: -1}
	for _, sp := range s.spawns {
		if sp.node != prev.node || sp.start != prev.start {
			prev = sp
			groupFrom = len(kept)
			for _, id := range t.nodes[sp.node].needles {
				s.hits = append(s.hits, Hit{Needle: id, Pos: sp.start})
			}
		} else if dominated(kept[groupFrom:], sp.cost) {
			continue
		}
		if len(t.nodes[sp.node].edges) > 0 {
			kept = append(kept, sp)
		}
	}
	s.spawns = kept
}

// dominated reports whether some cost in group is no worse than c on both
// budgets. group is sorted by ascending AAA.
func dominated(group []spawn, c Cost) bool {
	for _, g := range group {
		if g.cost.MM <= c.MM {
			return true
		}
	}
	return false
}

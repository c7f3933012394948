package actrie

import "pepidx/core/aa"

// Hit is one needle occurrence. Pos is the offset of the first matched
// residue in the raw haystack, skipped characters included.
type Hit struct {
	Needle int
	Pos    int
}

type spawn struct {
	node  int32
	start int
	cost  Cost
}

// State is the cursor of one scan. It is not safe for concurrent use; give
// each goroutine its own State.
type State struct {
	query string
	pos   int // raw offset just past the last consumed character
	n     int // valid residues consumed

	trie  *Trie
	cfg   MatchConfig
	ready bool

	cur    int32
	ring   []int // raw offsets of the last residues, indexed by n % len
	spawns []spawn
	spare  []spawn
	hits   []Hit
	read   int // hits already yielded by All

	truncated bool
}

// NewState returns a State with an empty query.
func NewState() *State { return &State{} }

// SetQuery starts a new scan over haystack. Budgets are taken from the trie
// on the first step, so setter calls made later do not affect this scan.
func (s *State) SetQuery(haystack string) {
	s.query = haystack
	s.pos, s.n = 0, 0
	s.cur = 0
	s.ready = false
	s.trie = nil
	s.spawns = s.spawns[:0]
	s.hits = s.hits[:0]
	s.read = 0
	s.truncated = false
}

// Query returns the haystack passed to SetQuery.
func (s *State) Query() string { return s.query }

// NextValidAA consumes raw characters up to and including the next valid
// residue and returns it. Invalid characters are skipped but still advance
// TextPos. At the end of the query it returns aa.Invalid.
func (s *State) NextValidAA() aa.AA {
	for s.pos < len(s.query) {
		c := aa.FromByte(s.query[s.pos])
		s.pos++
		if c.IsValid() {
			return c
		}
	}
	return aa.Invalid
}

// TextPos is the raw offset just past the character last consumed.
func (s *State) TextPos() int { return s.pos }

// Hits returns the hits ending at the residue consumed by the last
// NextHits call. The slice is reused by the next call.
func (s *State) Hits() []Hit { return s.hits }

// Config returns the budgets this scan runs with. It is the zero config
// before the first step.
func (s *State) Config() MatchConfig { return s.cfg }

// Truncated reports whether the spawn cap discarded partial matches, in
// which case tolerant hits may be missing from this scan.
func (s *State) Truncated() bool { return s.truncated }

// Spawns returns the number of live partial matches.
func (s *State) Spawns() int { return len(s.spawns) }

func (s *State) begin(t *Trie) {
	s.trie = t
	s.cfg = t.Config()
	size := t.maxLen
	if size < 1 {
		size = 1
	}
	if cap(s.ring) < size {
		s.ring = make([]int, size)
	}
	s.ring = s.ring[:size]
	s.ready = true
}

// startOf returns the raw offset of the residue back residues before the
// one consumed last.
func (s *State) startOf(back int) int {
	return s.ring[(s.n-1-back)%len(s.ring)]
}

// Package protein holds the prepared protein database the peptides are
// mapped against.
package protein

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"pepidx/core/aa"
	"pepidx/core/fasta"
	"pepidx/internal/logging"
)

var (
	// ErrEmptyDatabase is returned when no protein was read.
	ErrEmptyDatabase = errors.New("protein: database is empty")
	// ErrConflictingDuplicate is returned when one accession names two
	// different sequences.
	ErrConflictingDuplicate = errors.New("protein: duplicate accession with different sequence")
)

// Protein is one database entry after preparation.
type Protein struct {
	Index       int
	Accession   string
	Description string
	Seq         string
	Decoy       bool
}

// Decoy position values.
const (
	Prefix = "prefix"
	Suffix = "suffix"
)

// DecoyRule classifies accessions carrying a marker string as decoys.
type DecoyRule struct {
	String   string
	Position string // Prefix or Suffix
}

// IsDecoy reports whether acc carries the decoy marker at the configured end.
// The comparison ignores case.
func (r DecoyRule) IsDecoy(acc string) bool {
	if r.String == "" || len(acc) < len(r.String) {
		return false
	}
	if r.Position == Suffix {
		return strings.EqualFold(acc[len(acc)-len(r.String):], r.String)
	}
	return strings.EqualFold(acc[:len(r.String)], r.String)
}

// Options controls how records are prepared.
type Options struct {
	IL     bool // map L and J to I
	Decoy  DecoyRule
	Logger *log.Logger
}

// DB is an in-memory, append-only protein database.
type DB struct {
	Proteins   []Protein
	Duplicates int // identical re-declarations that were dropped

	opt   Options
	log   *log.Logger
	byAcc map[string]int
}

// NewDB returns an empty database using opt for every Add.
func NewDB(opt Options) *DB {
	return &DB{opt: opt, log: logging.OrDiscard(opt.Logger), byAcc: make(map[string]int)}
}

// Prepare uppercases seq and drops every byte that is not a residue letter
// (stop codons, gaps, digits, spaces). With il set, L and J become I.
// Match coordinates and window sizes all count prepared residues.
func Prepare(seq []byte, il bool) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, c := range seq {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if !aa.FromByte(c).IsValid() {
			continue
		}
		if il && (c == 'L' || c == 'J') {
			c = 'I'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Add prepares rec and appends it. A repeated accession with the same
// prepared sequence is dropped with a warning; with a different sequence
// Add fails with ErrConflictingDuplicate.
func (db *DB) Add(rec fasta.Record) error {
	seq := Prepare(rec.Seq, db.opt.IL)
	if i, ok := db.byAcc[rec.ID]; ok {
		if db.Proteins[i].Seq != seq {
			return fmt.Errorf("%w: %s", ErrConflictingDuplicate, rec.ID)
		}
		db.Duplicates++
		db.log.Warn("duplicate protein accession dropped", "accession", rec.ID)
		return nil
	}
	idx := len(db.Proteins)
	db.byAcc[rec.ID] = idx
	db.Proteins = append(db.Proteins, Protein{
		Index:       idx,
		Accession:   rec.ID,
		Description: rec.Description,
		Seq:         seq,
		Decoy:       db.opt.Decoy.IsDecoy(rec.ID),
	})
	return nil
}

// Lookup finds a protein by accession.
func (db *DB) Lookup(acc string) (*Protein, bool) {
	i, ok := db.byAcc[acc]
	if !ok {
		return nil, false
	}
	return &db.Proteins[i], true
}

// Len returns the number of proteins.
func (db *DB) Len() int { return len(db.Proteins) }

// Decoys returns the number of decoy proteins.
func (db *DB) Decoys() int {
	n := 0
	for i := range db.Proteins {
		if db.Proteins[i].Decoy {
			n++
		}
	}
	return n
}

// Load reads every FASTA file in paths into a new database.
func Load(ctx context.Context, paths []string, opt Options) (*DB, error) {
	db := NewDB(opt)
	for _, p := range paths {
		err := fasta.ScanPath(ctx, p, 0, 0, db.Add)
		if err != nil {
			return nil, err
		}
	}
	if db.Len() == 0 {
		return nil, ErrEmptyDatabase
	}
	db.log.Debug("protein database loaded", "proteins", db.Len(), "decoys", db.Decoys(), "duplicates", db.Duplicates)
	return db, nil
}

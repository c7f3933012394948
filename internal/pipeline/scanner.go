package pipeline

import (
	"pepidx/core/actrie"
	"pepidx/internal/indexer"
	"pepidx/internal/protein"
)

// Scanner is the minimal contract the pipeline needs from an index.
type Scanner interface {
	NewState() *actrie.State
	ScanWindow(st *actrie.State, p *protein.Protein, off, end int) indexer.Result
}

var _ Scanner = (*indexer.Indexer)(nil)

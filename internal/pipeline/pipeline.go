package pipeline

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pepidx/core/fasta"
	"pepidx/internal/indexer"
	"pepidx/internal/metrics"
	"pepidx/internal/protein"
	"pepidx/internal/runutil"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads   int // number of worker goroutines (>=1)
	ChunkSize int // protein window size; 0 scans whole proteins
	Overlap   int // overlap between windows (>= longest peptide - 1)
	DedupeCap int // bound on remembered cross-window matches; 0 = default
	Metrics   *metrics.Metrics
}

// Key identifies a match in protein coordinates.
type Key struct {
	Protein, Start, Peptide int
}

// Stats summarises one pipeline run.
type Stats struct {
	Windows     int
	Prefiltered int
	Matches     int
	Duplicates  int
	// Truncated lists the proteins (by index) with at least one window that
	// hit the partial-match cap.
	Truncated []int
}

type job struct {
	p        *protein.Protein
	off, end int
	chunked  bool
}

type result struct {
	job
	res indexer.Result
}

// ForEachMatch scans every protein with sc and calls visit once per
// distinct match. Matches arrive in no particular order. It returns the
// first error encountered (including context cancellation).
func ForEachMatch(
	ctx context.Context,
	cfg Config,
	proteins []protein.Protein,
	sc Scanner,
	visit func(indexer.Match) error,
) (Stats, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)
	g, gctx := errgroup.WithContext(ctx)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		for i := range proteins {
			p := &proteins[i]
			spans := fasta.Spans(len(p.Seq), cfg.ChunkSize, cfg.Overlap)
			for _, sp := range spans {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case jobs <- job{p: p, off: sp[0], end: sp[1], chunked: len(spans) > 1}:
				}
			}
		}
		return nil
	})

	// Workers, one scan state each
	var workers sync.WaitGroup
	workers.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		g.Go(func() error {
			defer workers.Done()
			st := sc.NewState()
			for j := range jobs {
				t0 := time.Now()
				res := sc.ScanWindow(st, j.p, j.off, j.end)
				cfg.Metrics.ObserveWindow(time.Since(t0), res.Prefiltered, res.Truncated)
				select {
				case results <- result{job: j, res: res}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	// Collector + deduper
	var (
		stats     Stats
		cerr      error
		seen      = runutil.NewLRUSet[Key](cfg.DedupeCap)
		truncated = make(map[int]struct{})
	)
	for r := range results {
		if cerr != nil {
			continue
		}
		stats.Windows++
		if r.res.Prefiltered {
			stats.Prefiltered++
		}
		if r.res.Truncated {
			if _, ok := truncated[r.p.Index]; !ok {
				truncated[r.p.Index] = struct{}{}
				stats.Truncated = append(stats.Truncated, r.p.Index)
			}
		}
		for _, m := range r.res.Matches {
			if r.chunked && seen.Add(Key{Protein: m.Protein, Start: m.Start, Peptide: m.Peptide}) {
				stats.Duplicates++
				cfg.Metrics.AddMatch(true)
				continue
			}
			stats.Matches++
			cfg.Metrics.AddMatch(false)
			if err := visit(m); err != nil {
				cerr = err
				cancel()
				break
			}
		}
	}

	err := g.Wait()
	if cerr != nil {
		return stats, cerr
	}
	return stats, err
}

// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"pepidx/core/peptide"
	"pepidx/internal/config"
	"pepidx/internal/indexer"
	"pepidx/internal/logging"
	"pepidx/internal/mapping"
	"pepidx/internal/metrics"
	"pepidx/internal/output"
	"pepidx/internal/pipeline"
	"pepidx/internal/protein"
	"pepidx/internal/runutil"
	"pepidx/internal/version"
	"pepidx/internal/writers"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitUnexpected = 1 // unmatched peptides, missing decoys, conflicting duplicates
	ExitUsage      = 2
	ExitIO         = 3
	ExitEmptyDB    = 4
	ExitNoPeptides = 5
	ExitCanceled   = 130
)

// Options are the resolved inputs of one run.
type Options struct {
	PeptideFile string
	Databases   []string
	Params      config.Params
}

// maxTruncatedLogged bounds the accession list in the truncation warning.
const maxTruncatedLogged = 5

// Run loads peptides and proteins, scans, maps, writes the result to
// stdout through wf, and returns the process exit code.
func Run(parent context.Context, stdout io.Writer, logger *log.Logger, o Options, wf WriterFactory) int {
	logger = logging.OrDiscard(logger)
	p := o.Params
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	peps, err := peptide.Load(ctx, o.PeptideFile, p.ILEquivalent)
	if err != nil {
		return fail(logger, "read peptides", err, ExitIO)
	}
	db, err := protein.Load(ctx, o.Databases, protein.Options{
		IL:     p.ILEquivalent,
		Decoy:  protein.DecoyRule{String: p.DecoyString, Position: p.DecoyStringPosition},
		Logger: logger,
	})
	if err != nil {
		return fail(logger, "read proteins", err, ExitIO)
	}

	seqs := peptide.Unique(peps)
	idx, err := indexer.New(seqs, indexer.Options{
		MaxAAA:    p.AAAMax,
		MaxMM:     p.MMMax,
		MaxSpawns: p.MaxSpawns,
		Prefilter: p.Prefilter,
	})
	if err != nil {
		return fail(logger, "build index", err, ExitUnexpected)
	}
	logger.Info("index ready",
		"peptides", len(peps), "sequences", len(seqs), "nodes", idx.Nodes(),
		"proteins", db.Len(), "decoys", db.Decoys(), "aaa_max", p.AAAMax, "mm_max", p.MMMax)

	chunkSize, overlap, warns := runutil.ValidateChunking(p.ChunkSize, idx.MaxLen())
	for _, w := range warns {
		logger.Warn(w)
	}

	var m *metrics.Metrics
	if p.MetricsFile != "" {
		m = metrics.New()
	}

	col := mapping.NewCollector(len(seqs))
	stats, err := pipeline.ForEachMatch(ctx, pipeline.Config{
		Threads:   runutil.EffectiveThreads(p.Threads),
		ChunkSize: chunkSize,
		Overlap:   overlap,
		DedupeCap: p.DedupeCap,
		Metrics:   m,
	}, db.Proteins, idx, col.Add)
	if err != nil {
		return fail(logger, "scan", err, ExitUnexpected)
	}
	logger.Debug("scan done", "windows", stats.Windows, "prefiltered", stats.Prefiltered,
		"matches", stats.Matches, "duplicates", stats.Duplicates)

	res := col.Build(peps, seqs, db)
	res.Summary.TruncatedProteins = len(stats.Truncated)
	if n := len(stats.Truncated); n > 0 {
		accs := make([]string, 0, maxTruncatedLogged)
		for _, i := range stats.Truncated[:min(n, maxTruncatedLogged)] {
			accs = append(accs, db.Proteins[i].Accession)
		}
		logger.Warn("partial-match cap reached; tolerant hits may be missing",
			"proteins", n, "first", strings.Join(accs, ","), "max_spawns", p.MaxSpawns)
	}
	m.SetPeptides(res.Summary.MatchedUnique, res.Summary.MatchedShared, res.Summary.Unmatched)
	m.SetProteins(db.Len()-db.Decoys(), db.Decoys())

	if code := writePeptides(ctx, stdout, logger, res, p, wf); code != ExitOK {
		return code
	}
	if code := writeSideFiles(logger, res, db, m, p); code != ExitOK {
		return code
	}

	s := res.Summary
	logger.Info("mapping done",
		"unique", s.MatchedUnique, "shared", s.MatchedShared, "unmatched", s.Unmatched,
		"target", s.Target, "decoy", s.Decoy, "target_decoy", s.TargetDecoy,
		"unreferenced_proteins", s.Unreferenced, "run_id", s.RunID)

	warns, err = res.Check(mapping.Policy{
		AllowUnmatched:     p.AllowUnmatched,
		MissingDecoyAction: p.MissingDecoyAction,
	})
	for _, w := range warns {
		logger.Warn(w)
	}
	if err != nil {
		un := res.Unmatched()
		for _, h := range un[:min(len(un), maxTruncatedLogged)] {
			logger.Debug("unmatched peptide", "line", h.Line, "peptide", h.Raw)
		}
		logger.Error(err)
		return ExitUnexpected
	}
	return ExitOK
}

func writePeptides(ctx context.Context, stdout io.Writer, logger *log.Logger, res *mapping.Result, p config.Params, wf WriterFactory) int {
	outw := bufio.NewWriter(stdout)
	in, writeErr := wf.Start(outw, 256)
	var serr error
send:
	for _, h := range res.Peptides {
		select {
		case in <- output.ToAPIPeptide(h, p.WriteProteinDescription):
		case <-ctx.Done():
			serr = ctx.Err()
			break send
		}
	}
	close(in)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		logger.Error("write output", "err", werr)
		return ExitIO
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		logger.Error("write output", "err", e)
		return ExitIO
	}
	if serr != nil {
		return ExitCanceled
	}
	return ExitOK
}

func writeSideFiles(logger *log.Logger, res *mapping.Result, db *protein.DB, m *metrics.Metrics, p config.Params) int {
	if p.SummaryFile != "" {
		sum := output.ToAPISummary(res.Summary, version.Version, p.AAAMax, p.MMMax)
		if err := output.WriteSummaryFile(p.SummaryFile, sum); err != nil {
			logger.Error("write summary", "err", err)
			return ExitIO
		}
	}
	if p.ProteinsFile != "" {
		list := output.ToAPIProteins(db, res.Refs, p.KeepUnreferencedProteins)
		if err := output.WriteProteinsFile(p.ProteinsFile, list, p.Header); err != nil {
			logger.Error("write proteins", "err", err)
			return ExitIO
		}
	}
	if p.MetricsFile != "" {
		if err := m.WriteFile(p.MetricsFile); err != nil {
			logger.Error("write metrics", "err", err)
			return ExitIO
		}
	}
	return ExitOK
}

// fail logs err under stage and maps it to an exit code; def is used for
// errors without a dedicated code.
func fail(logger *log.Logger, stage string, err error, def int) int {
	code := def
	switch {
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, peptide.ErrNoPeptides):
		code = ExitNoPeptides
	case errors.Is(err, protein.ErrEmptyDatabase):
		code = ExitEmptyDB
	case errors.Is(err, protein.ErrConflictingDuplicate):
		code = ExitUnexpected
	}
	logger.Error(stage, "err", err)
	return code
}

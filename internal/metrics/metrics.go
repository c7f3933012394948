// Package metrics counts what a run scanned and matched, in the Prometheus
// text format.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pepidx"

// Metrics owns a private registry so that runs and tests never share state.
type Metrics struct {
	Registry *prometheus.Registry

	Windows     prometheus.Counter
	Prefiltered prometheus.Counter
	Truncated   prometheus.Counter
	Matches     prometheus.Counter
	Duplicates  prometheus.Counter
	Peptides    *prometheus.GaugeVec // by outcome: unique, shared, unmatched
	Proteins    *prometheus.GaugeVec // by kind: target, decoy
	ScanSeconds prometheus.Histogram
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Windows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "windows_scanned_total",
			Help: "Protein windows handed to the scanner.",
		}),
		Prefiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "windows_prefiltered_total",
			Help: "Windows rejected by the literal prefilter.",
		}),
		Truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "windows_truncated_total",
			Help: "Windows whose scan hit the partial-match cap.",
		}),
		Matches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "matches_total",
			Help: "Peptide occurrences after window dedupe.",
		}),
		Duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "matches_duplicate_total",
			Help: "Occurrences seen twice in overlapping windows.",
		}),
		Peptides: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "peptides",
			Help: "Peptides by mapping outcome.",
		}, []string{"outcome"}),
		Proteins: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "proteins",
			Help: "Database proteins by kind.",
		}, []string{"kind"}),
		ScanSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "window_scan_seconds",
			Help:    "Time to scan one window.",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
	m.Registry.MustRegister(m.Windows, m.Prefiltered, m.Truncated, m.Matches,
		m.Duplicates, m.Peptides, m.Proteins, m.ScanSeconds)
	return m
}

// ObserveWindow records one scanned window.
func (m *Metrics) ObserveWindow(d time.Duration, prefiltered, truncated bool) {
	if m == nil {
		return
	}
	m.Windows.Inc()
	m.ScanSeconds.Observe(d.Seconds())
	if prefiltered {
		m.Prefiltered.Inc()
	}
	if truncated {
		m.Truncated.Inc()
	}
}

// AddMatch records one emitted match, or one dropped as a duplicate.
func (m *Metrics) AddMatch(duplicate bool) {
	if m == nil {
		return
	}
	if duplicate {
		m.Duplicates.Inc()
		return
	}
	m.Matches.Inc()
}

// SetPeptides records the mapping outcome counts.
func (m *Metrics) SetPeptides(unique, shared, unmatched int) {
	if m == nil {
		return
	}
	m.Peptides.WithLabelValues("unique").Set(float64(unique))
	m.Peptides.WithLabelValues("shared").Set(float64(shared))
	m.Peptides.WithLabelValues("unmatched").Set(float64(unmatched))
}

// SetProteins records database composition.
func (m *Metrics) SetProteins(targets, decoys int) {
	if m == nil {
		return
	}
	m.Proteins.WithLabelValues("target").Set(float64(targets))
	m.Proteins.WithLabelValues("decoy").Set(float64(decoys))
}

// WriteFile writes the registry in the Prometheus text format to path.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records per-run counters on a private Prometheus registry
// and writes them in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/place-scout/pkg/types"
)

const namespace = "place_scout"

// Recorder holds the counters of one run. Every series carries the run_id
// label.
type Recorder struct {
	reg *prometheus.Registry

	Queries         prometheus.Counter
	QueryErrors     prometheus.Counter
	Pages           prometheus.Counter
	Candidates      prometheus.Gauge
	Duplicates      prometheus.Counter
	DetailsFetched  prometheus.Counter
	DetailsDegraded prometheus.Counter
	Accepted        prometheus.Counter
	Rejected        *prometheus.CounterVec
	Duration        prometheus.Gauge
	LastRun         prometheus.Gauge
}

// New returns a Recorder whose series are labeled with runID.
func New(runID string) *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, reg))

	return &Recorder{
		reg: reg,
		Queries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Search queries executed.",
		}),
		QueryErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_errors_total",
			Help:      "Search queries abandoned after a page failure.",
		}),
		Pages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_total",
			Help:      "Search result pages fetched.",
		}),
		Candidates: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates",
			Help:      "Unique candidates after de-duplication.",
		}),
		Duplicates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_removed_total",
			Help:      "Search results dropped as duplicates.",
		}),
		DetailsFetched: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "details_fetched_total",
			Help:      "Detail lookups that succeeded.",
		}),
		DetailsDegraded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "details_degraded_total",
			Help:      "Detail lookups replaced by a placeholder.",
		}),
		Accepted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accepted_total",
			Help:      "Candidates accepted by the inclusion policy.",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_total",
			Help:      "Candidates rejected by the inclusion policy, by reason.",
		}, []string{"reason"}),
		Duration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run.",
		}),
		LastRun: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished.",
		}),
	}
}

// ObserveDecisions counts accepted candidates and rejections by reason.
func (r *Recorder) ObserveDecisions(accepted, rejected []types.ScoredCandidate) {
	r.Accepted.Add(float64(len(accepted)))
	for _, sc := range rejected {
		r.Rejected.WithLabelValues(string(sc.Decision.Reason)).Inc()
	}
}

// Finish records the run duration and completion time.
func (r *Recorder) Finish(started, finished time.Time) {
	r.Duration.Set(finished.Sub(started).Seconds())
	r.LastRun.Set(float64(finished.Unix()))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteTextfile writes every series to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

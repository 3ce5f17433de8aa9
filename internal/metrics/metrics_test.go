// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/place-scout/pkg/types"
)

func TestObserveDecisions(t *testing.T) {
	r := New("run-1")
	accepted := []types.ScoredCandidate{{}, {}}
	rejected := []types.ScoredCandidate{
		{Decision: types.Decision{Reason: types.ReasonNoWebsite}},
		{Decision: types.Decision{Reason: types.ReasonNoWebsite}},
		{Decision: types.Decision{Reason: types.ReasonBelowFinalGate}},
	}

	r.ObserveDecisions(accepted, rejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Accepted))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.Rejected.WithLabelValues("no_website")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Rejected.WithLabelValues("below_final_gate")))
}

func TestFinish(t *testing.T) {
	r := New("run-1")
	start := time.Unix(1_700_000_000, 0)
	r.Finish(start, start.Add(90*time.Second))

	assert.Equal(t, 90.0, testutil.ToFloat64(r.Duration))
	assert.Equal(t, float64(start.Unix()+90), testutil.ToFloat64(r.LastRun))
}

func TestRecordersAreIsolated(t *testing.T) {
	a := New("a")
	b := New("b")
	a.Queries.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.Queries))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Queries))
}

func TestWriteTextfile(t *testing.T) {
	r := New("run-42")
	r.Queries.Add(4)
	r.Pages.Add(7)
	r.Candidates.Set(12)

	path := filepath.Join(t.TempDir(), "textfile", "place_scout.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `place_scout_queries_total{run_id="run-42"} 4`)
	assert.Contains(t, text, `place_scout_pages_total{run_id="run-42"} 7`)
	assert.Contains(t, text, `place_scout_candidates{run_id="run-42"} 12`)
}

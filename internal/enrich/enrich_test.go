// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/place-scout/pkg/types"
)

type mockFetcher struct {
	records map[string]types.Candidate
	errs    map[string]error
	calls   []string
}

func (m *mockFetcher) Details(_ context.Context, placeID string) (types.Candidate, error) {
	m.calls = append(m.calls, placeID)
	if err, ok := m.errs[placeID]; ok {
		return types.Candidate{}, err
	}
	return m.records[placeID], nil
}

func TestEnrich_IsolatesFailures(t *testing.T) {
	raws := []types.Candidate{
		{PlaceID: "a", Name: "Alpha Vet", Address: "1 Main St", Types: []string{"veterinary_care"}, Website: "https://raw.example"},
		{PlaceID: "b", Name: "Beta Pets"},
		{PlaceID: "c", Name: "Gamma Clinic"},
	}
	f := &mockFetcher{
		records: map[string]types.Candidate{
			"b": {PlaceID: "b", Name: "Beta Pets", Website: "https://beta.example"},
			"c": {PlaceID: "c", Name: "Gamma Clinic"},
		},
		errs: map[string]error{"a": errors.New("HTTP 500")},
	}

	res := Enrich(context.Background(), f, raws, zaptest.NewLogger(t))

	assert.Equal(t, []string{"a", "b", "c"}, f.calls)
	require.Len(t, res.Candidates, 3)
	assert.Equal(t, 2, res.Fetched)
	assert.Equal(t, 1, res.Degraded)

	ph := res.Candidates[0]
	assert.True(t, ph.IsPlaceholder())
	assert.Equal(t, "a", ph.PlaceID)
	assert.Equal(t, "Alpha Vet", ph.Name)
	assert.Equal(t, "1 Main St", ph.Address)
	assert.False(t, ph.HasWebsite(), "placeholder drops website")
	assert.Empty(t, ph.Types, "placeholder drops category tags")
	assert.Contains(t, ph.Error, "HTTP 500")

	assert.Equal(t, "https://beta.example", res.Candidates[1].Website)
}

func TestEnrich_Empty(t *testing.T) {
	res := Enrich(context.Background(), &mockFetcher{}, nil, zaptest.NewLogger(t))
	assert.Empty(t, res.Candidates)
	assert.Zero(t, res.Fetched)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fetches the detailed record for each aggregated candidate.
// A failed lookup never aborts the batch: the candidate is replaced by a
// degraded placeholder that the scoring stage later excludes.
package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/pkg/types"
)

// DetailsFetcher returns the enriched record for one place identifier.
type DetailsFetcher interface {
	Details(ctx context.Context, placeID string) (types.Candidate, error)
}

// Result holds the enriched candidates and counts.
type Result struct {
	// Candidates has one entry per input, in input order.
	Candidates []types.Candidate
	Fetched    int
	Degraded   int
}

// Enrich looks up details for each raw candidate in order.
func Enrich(ctx context.Context, f DetailsFetcher, raws []types.Candidate, log *zap.Logger) Result {
	res := Result{Candidates: make([]types.Candidate, 0, len(raws))}
	for i, raw := range raws {
		log.Debug("fetching details",
			zap.Int("index", i+1),
			zap.Int("total", len(raws)),
			zap.String("place_id", raw.PlaceID),
			zap.String("name", raw.Name))

		details, err := f.Details(ctx, raw.PlaceID)
		if err != nil {
			log.Warn("details failed, using placeholder",
				zap.String("place_id", raw.PlaceID),
				zap.String("name", raw.Name),
				zap.Error(err))
			res.Candidates = append(res.Candidates, types.Placeholder(raw, err))
			res.Degraded++
			continue
		}
		res.Candidates = append(res.Candidates, details)
		res.Fetched++
	}
	log.Info("details complete", zap.Int("fetched", res.Fetched), zap.Int("degraded", res.Degraded))
	return res
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate runs the planned queries against the search capability
// and merges every page into one candidate set keyed by place identifier.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/pkg/types"
)

// MaxPages is the upstream's hard limit on pages per query.
const MaxPages = 3

// DefaultPageDelay is how long to wait before a continuation request.
const DefaultPageDelay = 2 * time.Second

// Searcher returns one page of raw search results.
type Searcher interface {
	SearchPage(ctx context.Context, req types.PageRequest) (types.Page, error)
}

// QueryError records a query that ended early because a page failed.
type QueryError struct {
	Query types.Query
	Page  int
	Err   error
}

func (e QueryError) Error() string {
	return fmt.Sprintf("query %s page %d: %v", e.Query, e.Page, e.Err)
}

func (e QueryError) Unwrap() error { return e.Err }

// Output holds the deduplicated candidates and run statistics.
type Output struct {
	// Candidates are unique by PlaceID, in first-seen order.
	Candidates []types.Candidate

	// Queries is the number of queries attempted.
	Queries int

	// Pages is the number of pages fetched successfully.
	Pages int

	// DupsRemoved counts records dropped because their PlaceID was already seen.
	DupsRemoved int

	// QueryErrors lists queries that failed; their earlier pages are kept.
	QueryErrors []QueryError
}

// AllFailed reports whether every attempted query failed.
func (o Output) AllFailed() bool {
	return o.Queries > 0 && len(o.QueryErrors) == o.Queries
}

// Aggregate executes each query in order, following continuation tokens up
// to cfg.MaxPages (capped at MaxPages) and sleeping cfg.PageDelay before
// each continuation request. Results merge first-seen-wins: a later record
// with a known PlaceID is discarded whole, with no field merging. A failed
// page ends its query only; the remaining queries still run.
func Aggregate(ctx context.Context, s Searcher, center types.LatLng, queries []types.Query, cfg types.SearchConfig, log *zap.Logger) Output {
	maxPages := cfg.MaxPages
	if maxPages <= 0 || maxPages > MaxPages {
		maxPages = MaxPages
	}

	var out Output
	m := newMerger()

	for _, q := range queries {
		if q.IsEmpty() {
			continue
		}
		out.Queries++
		qlog := log.With(zap.Stringer("query", q))

		req := types.PageRequest{Center: center, Radius: cfg.Radius, Query: q}
		for page := 1; page <= maxPages; page++ {
			if page > 1 && cfg.PageDelay > 0 {
				time.Sleep(cfg.PageDelay)
			}

			p, err := s.SearchPage(ctx, req)
			if err != nil {
				qlog.Warn("query failed", zap.Int("page", page), zap.Error(err))
				out.QueryErrors = append(out.QueryErrors, QueryError{Query: q, Page: page, Err: err})
				break
			}
			out.Pages++

			added := m.add(p.Results)
			qlog.Debug("page merged",
				zap.Int("page", page),
				zap.Int("results", len(p.Results)),
				zap.Int("new", added))

			if p.NextPageToken == "" {
				break
			}
			req.PageToken = p.NextPageToken
		}
	}

	out.Candidates = m.ordered
	out.DupsRemoved = m.dups
	log.Info("aggregation complete",
		zap.Int("queries", out.Queries),
		zap.Int("pages", out.Pages),
		zap.Int("candidates", len(out.Candidates)),
		zap.Int("duplicates_removed", out.DupsRemoved),
		zap.Int("failed_queries", len(out.QueryErrors)))
	return out
}

// merger is the identifier-keyed candidate set owned by one Aggregate call.
type merger struct {
	seen    map[string]bool
	ordered []types.Candidate
	dups    int
}

func newMerger() *merger {
	return &merger{seen: make(map[string]bool)}
}

// add merges results and returns how many were new. Records without an
// identifier cannot be deduplicated or looked up later, so they are dropped.
func (m *merger) add(results []types.Candidate) int {
	added := 0
	for _, r := range results {
		if r.PlaceID == "" {
			continue
		}
		if m.seen[r.PlaceID] {
			m.dups++
			continue
		}
		m.seen[r.PlaceID] = true
		m.ordered = append(m.ordered, r)
		added++
	}
	return added
}

// Deduplicate applies the first-seen-wins merge to an already collected
// slice. It returns the unique candidates and the number removed.
func Deduplicate(results []types.Candidate) ([]types.Candidate, int) {
	m := newMerger()
	m.add(results)
	return m.ordered, m.dups
}

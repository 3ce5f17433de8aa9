// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one discovery batch end to end: resolve the search
// center, plan queries, aggregate search pages, fetch details, score, and
// export. Stages run sequentially on the calling goroutine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/internal/aggregate"
	"github.com/pdiddy/place-scout/internal/enrich"
	"github.com/pdiddy/place-scout/internal/export"
	"github.com/pdiddy/place-scout/internal/geoip"
	"github.com/pdiddy/place-scout/internal/metrics"
	"github.com/pdiddy/place-scout/internal/places"
	"github.com/pdiddy/place-scout/internal/plan"
	"github.com/pdiddy/place-scout/internal/score"
	"github.com/pdiddy/place-scout/pkg/types"
)

// Fatal outcomes. The CLI maps each to its own exit code.
var (
	ErrNoLocation       = errors.New("no search location: pass --lat and --lng or allow IP geolocation")
	ErrAllQueriesFailed = errors.New("every search query failed")
	ErrPrimaryOutput    = errors.New("writing primary output")
)

// Defaults applied to zero-valued RunConfig fields.
const (
	DefaultRadius     = 10000
	DefaultTimeout    = 10 * time.Second
	DefaultGeoTimeout = 5 * time.Second
	DefaultOutputDir  = "outputs"
	DefaultBaseName   = "places"
)

// Locator resolves the machine's approximate location.
type Locator func(ctx context.Context) (types.LatLng, bool)

// Deps are the collaborators of a run. Tests substitute fakes.
type Deps struct {
	Searcher aggregate.Searcher
	Details  enrich.DetailsFetcher
	Locate   Locator
	Log      *zap.Logger
	RunID    string
	Now      func() time.Time
}

// DefaultDeps wires the Places client and IP geolocation from cfg.
func DefaultDeps(cfg types.RunConfig, runID string, log *zap.Logger) Deps {
	cfg = withDefaults(cfg)
	client := places.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg.APIKey, cfg.UserAgent)
	geoClient := &http.Client{Timeout: cfg.GeoTimeout}
	return Deps{
		Searcher: client,
		Details:  client,
		Locate: func(ctx context.Context) (types.LatLng, bool) {
			return geoip.Locate(ctx, geoClient, cfg.UserAgent, log)
		},
		Log:   log,
		RunID: runID,
		Now:   time.Now,
	}
}

// Summary reports what a run did.
type Summary struct {
	RunID      string
	Center     types.LatLng
	Queries    int
	Pages      int
	Candidates int
	Duplicates int
	Degraded   int
	Accepted   int
	Rejected   int
	Paths      export.Paths
	// Warnings lists recovered failures of secondary outputs.
	Warnings []string
}

// Run executes one batch. A failed query, detail lookup, or secondary
// output is logged and skipped; only the sentinel errors above and
// configuration errors end the run.
func Run(ctx context.Context, cfg types.RunConfig, deps Deps) (*Summary, error) {
	cfg = withDefaults(cfg)
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	started := now()
	log = log.With(zap.String("run_id", deps.RunID))
	rec := metrics.New(deps.RunID)
	sum := &Summary{RunID: deps.RunID}

	defer func() {
		if cfg.Output.MetricsFile == "" {
			return
		}
		rec.Finish(started, now())
		if err := rec.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			log.Warn("metrics textfile not written", zap.Error(err))
		}
	}()

	center, err := resolveCenter(ctx, cfg, deps.Locate, log)
	if err != nil {
		return sum, err
	}
	sum.Center = center

	tax := plan.DefaultTaxonomy()
	if cfg.TaxonomyFile != "" {
		tax, err = plan.LoadTaxonomy(cfg.TaxonomyFile)
		if err != nil {
			return sum, err
		}
	}
	queries := plan.Plan(tax)
	log.Info("query plan", zap.Int("queries", len(queries)))

	agg := aggregate.Aggregate(ctx, deps.Searcher, center, queries, cfg.Search, log)
	sum.Queries, sum.Pages = agg.Queries, agg.Pages
	sum.Candidates, sum.Duplicates = len(agg.Candidates), agg.DupsRemoved
	rec.Queries.Add(float64(agg.Queries))
	rec.QueryErrors.Add(float64(len(agg.QueryErrors)))
	rec.Pages.Add(float64(agg.Pages))
	rec.Candidates.Set(float64(len(agg.Candidates)))
	rec.Duplicates.Add(float64(agg.DupsRemoved))
	if agg.AllFailed() {
		errs := make([]error, 0, len(agg.QueryErrors))
		for _, qe := range agg.QueryErrors {
			errs = append(errs, qe)
		}
		return sum, fmt.Errorf("%w: %w", ErrAllQueriesFailed, errors.Join(errs...))
	}

	enriched := enrich.Enrich(ctx, deps.Details, agg.Candidates, log)
	sum.Degraded = enriched.Degraded
	rec.DetailsFetched.Add(float64(enriched.Fetched))
	rec.DetailsDegraded.Add(float64(enriched.Degraded))

	accepted, rejected := score.NewEngine(tax).Rank(enriched.Candidates)
	sum.Accepted, sum.Rejected = len(accepted), len(rejected)
	rec.ObserveDecisions(accepted, rejected)
	for _, sc := range rejected {
		log.Debug("candidate rejected",
			zap.String("place_id", sc.Candidate.PlaceID),
			zap.String("name", sc.Candidate.Name),
			zap.String("reason", string(sc.Decision.Reason)))
	}
	log.Info("scoring complete", zap.Int("accepted", len(accepted)), zap.Int("rejected", len(rejected)))

	sum.Paths, sum.Warnings, err = writeOutputs(ctx, cfg, deps.RunID, center, accepted, started, log)
	return sum, err
}

func resolveCenter(ctx context.Context, cfg types.RunConfig, locate Locator, log *zap.Logger) (types.LatLng, error) {
	if cfg.Center != nil {
		log.Info("using explicit location", zap.Float64("lat", cfg.Center.Lat), zap.Float64("lng", cfg.Center.Lng))
		return *cfg.Center, nil
	}
	if locate == nil {
		return types.LatLng{}, ErrNoLocation
	}
	center, ok := locate(ctx)
	if !ok {
		return types.LatLng{}, ErrNoLocation
	}
	return center, nil
}

// writeOutputs archives earlier outputs, then writes JSON, CSV, and the
// optional SQLite file. Only a JSON failure is returned as an error.
func writeOutputs(ctx context.Context, cfg types.RunConfig, runID string, center types.LatLng, accepted []types.ScoredCandidate, now time.Time, log *zap.Logger) (export.Paths, []string, error) {
	var warnings []string
	warn := func(msg string, err error) {
		log.Warn(msg, zap.Error(err))
		warnings = append(warnings, fmt.Sprintf("%s: %v", msg, err))
	}

	dir, base := cfg.Output.Dir, cfg.Output.BaseName
	paths := export.OutputPaths(dir, base, now)

	exts := []string{export.ExtJSON, export.ExtCSV}
	if cfg.Output.SQLite {
		exts = append(exts, export.ExtSQLite)
	}
	if moved, err := export.Archive(dir, base, exts, now); err != nil {
		warn("archiving previous outputs", err)
	} else if len(moved) > 0 {
		log.Info("archived previous outputs", zap.Int("files", len(moved)))
	}

	records := export.FlattenAll(accepted)
	if err := export.WriteJSON(paths.JSON, center, records); err != nil {
		return paths, warnings, fmt.Errorf("%w %s: %w", ErrPrimaryOutput, paths.JSON, err)
	}
	log.Info("wrote JSON", zap.String("path", paths.JSON), zap.Int("places", len(records)))

	if err := export.WriteCSV(paths.CSV, records); err != nil {
		warn("CSV not written", err)
		paths.CSV = ""
	} else {
		log.Info("wrote CSV", zap.String("path", paths.CSV))
	}

	if !cfg.Output.SQLite {
		paths.SQLite = ""
		return paths, warnings, nil
	}
	if err := export.WriteSQLite(ctx, paths.SQLite, runID, center, accepted); err != nil {
		warn("SQLite not written", err)
		paths.SQLite = ""
	} else {
		log.Info("wrote SQLite", zap.String("path", paths.SQLite))
	}
	return paths, warnings, nil
}

func withDefaults(cfg types.RunConfig) types.RunConfig {
	if cfg.Search.Radius <= 0 {
		cfg.Search.Radius = DefaultRadius
	}
	if cfg.Search.MaxPages <= 0 {
		cfg.Search.MaxPages = aggregate.MaxPages
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.GeoTimeout <= 0 {
		cfg.GeoTimeout = DefaultGeoTimeout
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = DefaultOutputDir
	}
	if cfg.Output.BaseName == "" {
		cfg.Output.BaseName = DefaultBaseName
	}
	return cfg
}

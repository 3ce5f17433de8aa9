// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/internal/aggregate"
	"github.com/pdiddy/place-scout/internal/export"
	"github.com/pdiddy/place-scout/internal/pipeline"
	"github.com/pdiddy/place-scout/internal/secrets"
	"github.com/pdiddy/place-scout/pkg/types"
)

// legacyAPIKeyEnv is the environment variable older setups use for the key.
const legacyAPIKeyEnv = "GCP_PLACES_API_KEY"

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Search, score, and export places around a location",
	Long: `Discover runs one batch. The search center comes from --lat and --lng,
or from IP geolocation when either is missing. Every planned query is
searched (up to three pages each), results are merged by place
identifier, details are fetched for each place, and the candidates that
pass the inclusion policy are written to <output-dir>/<base>_<timestamp>.json
and .csv. Earlier outputs are moved under <output-dir>/archive/ first.

Exit codes: 0 success, 2 no location, 3 every search failed,
4 JSON output failed, 1 any other error.`,
	RunE: runDiscover,
}

func init() {
	f := discoverCmd.Flags()
	f.Float64("lat", 0, "latitude of the search center (skips IP lookup when --lng is also set)")
	f.Float64("lng", 0, "longitude of the search center")
	f.Int("radius", pipeline.DefaultRadius, "search radius in meters")
	f.Int("max-pages", aggregate.MaxPages, "pages requested per query (at most 3)")
	f.Duration("page-delay", aggregate.DefaultPageDelay, "wait before each continuation page")
	f.Duration("timeout", pipeline.DefaultTimeout, "HTTP timeout for search and details requests")
	f.Duration("geo-timeout", pipeline.DefaultGeoTimeout, "HTTP timeout for IP geolocation requests")
	f.String("api-key", "", "Places API key (default: $PLACE_SCOUT_API_KEY, $GCP_PLACES_API_KEY, or .secrets/places-api-key)")
	f.String("out", "places_full.json", "output name; only its base name is used")
	f.String("output-dir", pipeline.DefaultOutputDir, "directory for output files")
	f.String("taxonomy", "", "YAML taxonomy file overriding the built-in one")
	f.Bool("sqlite", false, "also write a SQLite database of accepted places")
	f.String("metrics-file", "", "write run metrics to this Prometheus textfile")

	for _, name := range []string{
		"lat", "lng", "radius", "max-pages", "page-delay", "timeout", "geo-timeout",
		"api-key", "out", "output-dir", "taxonomy", "sqlite", "metrics-file",
	} {
		viper.BindPFlag(viperKey(name), f.Lookup(name))
	}

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg := buildRunConfig(viper.GetViper(), loadedSecrets, logger)

	runID := uuid.New().String()
	log := logger.With(zap.String("run_id", runID))
	log.Info("starting discovery",
		zap.Int("radius", cfg.Search.Radius),
		zap.String("output_dir", cfg.Output.Dir))

	sum, err := pipeline.Run(context.Background(), cfg, pipeline.DefaultDeps(cfg, runID, log))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "center: %.6f,%.6f\n", sum.Center.Lat, sum.Center.Lng)
	fmt.Fprintf(os.Stdout, "queries: %d, pages: %d, candidates: %d (duplicates removed: %d)\n",
		sum.Queries, sum.Pages, sum.Candidates, sum.Duplicates)
	fmt.Fprintf(os.Stdout, "accepted: %d, rejected: %d, degraded details: %d\n",
		sum.Accepted, sum.Rejected, sum.Degraded)
	for _, p := range []string{sum.Paths.JSON, sum.Paths.CSV, sum.Paths.SQLite} {
		if p != "" {
			fmt.Fprintf(os.Stdout, "wrote %s\n", p)
		}
	}
	for _, w := range sum.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return nil
}

// buildRunConfig resolves flags, environment, config file, and secrets
// into one RunConfig.
func buildRunConfig(v *viper.Viper, stored map[string]string, log *zap.Logger) types.RunConfig {
	apiKey, found := secrets.APIKey(stored, v.GetString("api_key"), os.Getenv(legacyAPIKeyEnv))
	if !found {
		log.Warn("no API key configured; using placeholder. Set PLACE_SCOUT_API_KEY or .secrets/places-api-key")
	}

	cfg := types.RunConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    v.GetDuration("timeout"),
			GeoTimeout: v.GetDuration("geo_timeout"),
			UserAgent:  defaultUserAgent,
		},
		APIKey:       apiKey,
		TaxonomyFile: v.GetString("taxonomy"),
		Search: types.SearchConfig{
			Radius:    v.GetInt("radius"),
			MaxPages:  v.GetInt("max_pages"),
			PageDelay: v.GetDuration("page_delay"),
		},
		Output: types.OutputConfig{
			Dir:         v.GetString("output_dir"),
			BaseName:    export.BaseName(v.GetString("out")),
			SQLite:      v.GetBool("sqlite"),
			MetricsFile: v.GetString("metrics_file"),
		},
	}
	if v.IsSet("lat") && v.IsSet("lng") {
		cfg.Center = &types.LatLng{Lat: v.GetFloat64("lat"), Lng: v.GetFloat64("lng")}
	}
	return cfg
}

// viperKey maps a flag name to its config key ("output-dir" to "output_dir").
func viperKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/place-scout/internal/pipeline"
	"github.com/pdiddy/place-scout/internal/plan"
	"github.com/pdiddy/place-scout/internal/secrets"
	"github.com/pdiddy/place-scout/pkg/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"no location", pipeline.ErrNoLocation, 2},
		{"all queries failed", fmt.Errorf("%w: HTTP 403", pipeline.ErrAllQueriesFailed), 3},
		{"primary output", fmt.Errorf("%w out.json: disk full", pipeline.ErrPrimaryOutput), 4},
		{"other", errors.New("bad taxonomy"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestBuildRunConfig(t *testing.T) {
	t.Setenv(legacyAPIKeyEnv, "")
	v := viper.New()
	v.Set("lat", 40.0)
	v.Set("lng", -74.0)
	v.Set("radius", 5000)
	v.Set("max_pages", 2)
	v.Set("page_delay", "1s")
	v.Set("timeout", "7s")
	v.Set("api_key", "flag-key")
	v.Set("out", "results/vets.json")
	v.Set("output_dir", "out")
	v.Set("sqlite", true)

	cfg := buildRunConfig(v, map[string]string{secrets.PlacesAPIKey: "file-key"}, zap.NewNop())

	require.NotNil(t, cfg.Center)
	assert.Equal(t, types.LatLng{Lat: 40, Lng: -74}, *cfg.Center)
	assert.Equal(t, "flag-key", cfg.APIKey)
	assert.Equal(t, 5000, cfg.Search.Radius)
	assert.Equal(t, 2, cfg.Search.MaxPages)
	assert.Equal(t, time.Second, cfg.Search.PageDelay)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "vets", cfg.Output.BaseName)
	assert.True(t, cfg.Output.SQLite)
	assert.Equal(t, defaultUserAgent, cfg.UserAgent)
}

func TestBuildRunConfigNeedsBothCoordinates(t *testing.T) {
	v := viper.New()
	v.Set("lat", 40.0)

	cfg := buildRunConfig(v, nil, zap.NewNop())
	assert.Nil(t, cfg.Center)
}

func TestBuildRunConfigAPIKeyFallbacks(t *testing.T) {
	t.Run("legacy env", func(t *testing.T) {
		t.Setenv(legacyAPIKeyEnv, "legacy-key")
		cfg := buildRunConfig(viper.New(), map[string]string{secrets.PlacesAPIKey: "file-key"}, zap.NewNop())
		assert.Equal(t, "legacy-key", cfg.APIKey)
	})
	t.Run("secret file", func(t *testing.T) {
		t.Setenv(legacyAPIKeyEnv, "")
		cfg := buildRunConfig(viper.New(), map[string]string{secrets.PlacesAPIKey: "file-key"}, zap.NewNop())
		assert.Equal(t, "file-key", cfg.APIKey)
	})
	t.Run("placeholder", func(t *testing.T) {
		t.Setenv(legacyAPIKeyEnv, "")
		cfg := buildRunConfig(viper.New(), nil, zap.NewNop())
		assert.Equal(t, secrets.PlaceholderAPIKey, cfg.APIKey)
	})
}

func TestPrintPlan(t *testing.T) {
	var buf bytes.Buffer
	tax := plan.Taxonomy{Tier1: []string{"veterinary_care"}, FallbackKeywords: []string{"emergency vet"}}

	require.NoError(t, printPlan(&buf, tax))
	assert.Equal(t, " 1  type=veterinary_care\n 2  keyword=emergency vet\n\n2 queries\n", buf.String())
}

func TestViperKey(t *testing.T) {
	assert.Equal(t, "output_dir", viperKey("output-dir"))
	assert.Equal(t, "lat", viperKey("lat"))
}

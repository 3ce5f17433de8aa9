package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout for search and details calls (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// GeoTimeout is the per-request timeout for IP geolocation (default 5s).
	GeoTimeout time.Duration `json:"geo_timeout" yaml:"geo_timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "place-scout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the aggregation stage.
type SearchConfig struct {
	// Radius is the search radius in meters (default 10000).
	Radius int `json:"radius" yaml:"radius"`

	// MaxPages caps pages requested per query. The upstream limit is 3.
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// PageDelay is the wait before each continuation request (default 2s).
	// The continuation token is not valid upstream until shortly after it is issued.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// OutputConfig holds settings for the export stage.
type OutputConfig struct {
	// Dir is the output directory (default "outputs").
	Dir string `json:"dir" yaml:"dir"`

	// BaseName is the file name stem; a timestamp and extension are appended.
	BaseName string `json:"base_name" yaml:"base_name"`

	// SQLite enables the optional SQLite output file.
	SQLite bool `json:"sqlite" yaml:"sqlite"`

	// MetricsFile is an optional Prometheus textfile path.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}

// RunConfig is everything one pipeline run needs. It is resolved once by the
// CLI and passed explicitly; nothing in the pipeline reads process globals.
type RunConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates search and details calls.
	APIKey string `json:"-" yaml:"-"`

	// Center is the explicit search center. When nil the pipeline asks the
	// geolocation lookup.
	Center *LatLng `json:"center,omitempty" yaml:"center,omitempty"`

	// TaxonomyFile optionally overrides the built-in taxonomy.
	TaxonomyFile string `json:"taxonomy_file,omitempty" yaml:"taxonomy_file,omitempty"`

	Search SearchConfig `json:"search" yaml:"search"`
	Output OutputConfig `json:"output" yaml:"output"`
}

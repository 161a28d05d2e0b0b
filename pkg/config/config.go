// Package config provides configuration management for geodesk.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// Precedence (highest to lowest): CLI flags > env vars > geodesk.yaml >
// defaults.
//
// Design principles:
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions - the only way to modify Config
//   - Invalid options are rejected with gn.Warn() - config remains valid
//
// Environment variables use the GEODESK_ prefix with underscores for
// nesting:
//
//	GEODESK_GEOCODER_API_KEY=...
//	GEODESK_GEOCODER_BATCH_SIZE=200
//	GEODESK_OVERTURE_RELEASE=2026-02-18.0
//	GEODESK_LOG_LEVEL=debug
package config

import (
	"runtime"
	"time"
)

// Config represents the complete geodesk configuration.
type Config struct {
	// Geocoder contains settings for the address-resolution pipeline.
	Geocoder GeocoderConfig `mapstructure:"geocoder" yaml:"geocoder"`

	// Overture contains settings for the external dataset extraction.
	Overture OvertureConfig `mapstructure:"overture" yaml:"overture"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (currently the external geocoding sub-batches).
	// Defaults to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and log directories reside.
	// Set by the CLI during init; runtime-only, never persisted.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// GeocoderConfig configures the resolution pipeline's provider stages.
type GeocoderConfig struct {
	// APIKey authenticates against the external batch geocoding API.
	// An empty key disables the external stage without failing calls.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL is the external batch API host. Overridable for tests.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// BatchSize is the number of addresses sent per external API request.
	// Bounded to [1, 10000].
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// TimeoutSec bounds every provider HTTP request. On timeout the
	// affected addresses fall through as unresolved.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// SidecarURL points at a local subordinate geocoder service.
	// Empty disables the sidecar stage.
	SidecarURL string `mapstructure:"sidecar_url" yaml:"sidecar_url"`

	// ShowProgress renders a progress bar over external sub-batches.
	// Runtime-only; set by the CLI.
	ShowProgress bool `mapstructure:"-" yaml:"-"`
}

// OvertureConfig pins the external dataset snapshot so repeated
// extractions are reproducible.
type OvertureConfig struct {
	// Release is the dataset snapshot identifier, e.g. "2026-02-18.0".
	Release string `mapstructure:"release" yaml:"release"`

	// BaseURI is the dataset root; theme/type partitions are appended.
	BaseURI string `mapstructure:"base_uri" yaml:"base_uri"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level" yaml:"level"`
	// Destination can be a log file (at the default place), STDERR or
	// STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// Timeout returns the provider request timeout as a duration.
func (g GeocoderConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSec) * time.Second
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Geocoder: GeocoderConfig{
			BaseURL:    "https://api.geocodio.com",
			BatchSize:  100,
			TimeoutSec: 30,
		},
		Overture: OvertureConfig{
			Release: "2026-02-18.0",
			BaseURI: "s3://overturemaps-us-west-2/release",
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

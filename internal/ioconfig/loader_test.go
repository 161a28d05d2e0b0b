package ioconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodesk.yaml")
	content := `geocoder:
  api_key: secret
  batch_size: 250
  sidecar_url: http://localhost:8088/
overture:
  release: 2026-03-01.0
log:
  level: debug
jobs_number: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Geocoder.APIKey)
	assert.Equal(t, 250, cfg.Geocoder.BatchSize)
	// options normalize trailing slashes away
	assert.Equal(t, "http://localhost:8088", cfg.Geocoder.SidecarURL)
	assert.Equal(t, "2026-03-01.0", cfg.Overture.Release)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 4, cfg.JobsNumber)

	// untouched fields keep their defaults
	assert.Equal(t, "https://api.geocodio.com", cfg.Geocoder.BaseURL)
	assert.Equal(t, 30, cfg.Geocoder.TimeoutSec)
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodesk.yaml")
	content := `geocoder:
  batch_size: -5
log:
  level: verbose
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Geocoder.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geodesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("geocoder: ["), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GEODESK_GEOCODER_BATCH_SIZE", "42")
	t.Setenv("GEODESK_LOG_FORMAT", "json")

	path := filepath.Join(t.TempDir(), "geodesk.yaml")
	require.NoError(t, os.WriteFile(path,
		[]byte("geocoder:\n  batch_size: 250\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// environment wins over the file
	assert.Equal(t, 42, cfg.Geocoder.BatchSize)
	assert.Equal(t, "json", cfg.Log.Format)
}

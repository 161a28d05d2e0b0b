package ioconfig

import (
	"os"
	"strings"
	"testing"

	"github.com/geodesk/geodesk/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfig(t *testing.T) {
	home := t.TempDir()

	exists, err := ConfigFileExists(home)
	require.NoError(t, err)
	assert.False(t, exists)

	path, err := GenerateDefaultConfig(home)
	require.NoError(t, err)
	assert.Equal(t, config.ConfigFilePath(home), path)

	exists, err = ConfigFileExists(home)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, ValidateGeneratedConfig(path))

	// generated file round-trips through the loader with defaults intact
	cfg, err := Load(path)
	require.NoError(t, err)
	defaults := config.New()
	assert.Equal(t, defaults.Geocoder.BaseURL, cfg.Geocoder.BaseURL)
	assert.Equal(t, defaults.Overture.Release, cfg.Overture.Release)
	assert.Equal(t, defaults.Log.Level, cfg.Log.Level)
}

func TestGenerateDefaultConfig_NoOverwrite(t *testing.T) {
	home := t.TempDir()

	path, err := GenerateDefaultConfig(home)
	require.NoError(t, err)

	custom := "geocoder:\n  api_key: keepme\n"
	require.NoError(t, os.WriteFile(path, []byte(custom), 0644))

	_, err = GenerateDefaultConfig(home)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "keepme"))
}

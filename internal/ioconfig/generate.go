package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/geodesk/geodesk/pkg/config"
	"gopkg.in/yaml.v3"
)

// GenerateDefaultConfig writes a documented default config file at the
// user's config location. Existing files are never overwritten. Returns
// the path of the written file.
func GenerateDefaultConfig(homeDir string) (string, error) {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", CreateDirError(configDir, err)
	}

	defaults := config.New()
	yamlContent := `# Geodesk configuration file.
# This file was auto-generated. Edit as needed.
#
# Precedence (highest to lowest):
#   1. CLI flags
#   2. Environment variables (GEODESK_*)
#   3. This config file
#   4. Built-in defaults

geocoder:
  # API key for the external batch geocoding provider. Empty disables
  # the external stage; cached and sidecar addresses still resolve.
  api_key: ""
  base_url: ` + defaults.Geocoder.BaseURL + `
  batch_size: ` + fmt.Sprintf("%d", defaults.Geocoder.BatchSize) + `
  timeout_sec: ` + fmt.Sprintf("%d", defaults.Geocoder.TimeoutSec) + `
  # URL of a local subordinate geocoder, e.g. http://localhost:8088.
  # Empty disables the sidecar stage.
  sidecar_url: ""

overture:
  # Pinned dataset snapshot; extractions are reproducible per release.
  release: ` + defaults.Overture.Release + `
  base_uri: ` + defaults.Overture.BaseURI + `

log:
  level: ` + defaults.Log.Level + `
  format: ` + defaults.Log.Format + `
  destination: ` + defaults.Log.Destination + `

jobs_number: ` + fmt.Sprintf("%d", defaults.JobsNumber) + `
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		return "", WriteConfigError(configPath, err)
	}
	return configPath, nil
}

// ValidateGeneratedConfig reads a generated config file back and makes
// sure it is well-formed YAML that maps onto the Config shape.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return ReadConfigError(configPath, err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ReadConfigError(configPath, err)
	}
	return nil
}

// ConfigFileExists checks for a config file at the user's config location.
func ConfigFileExists(homeDir string) (bool, error) {
	_, err := os.Stat(config.ConfigFilePath(homeDir))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Package ioconfig loads geodesk configuration from the file system and
// the environment. It is the impure counterpart of pkg/config: values read
// here are applied through Option functions, so a malformed file degrades
// to warnings instead of an invalid configuration.
package ioconfig

import (
	"os"
	"strings"

	"github.com/geodesk/geodesk/pkg/config"
	"github.com/spf13/viper"
)

// Load reads configuration from a YAML file and the GEODESK_* environment
// variables. If configPath is empty, default locations are searched:
//   - ./geodesk.yaml
//   - ~/.config/geodesk/geodesk.yaml
//
// A missing file is not an error; defaults plus environment overrides are
// returned. Invalid values are rejected with a warning and the default for
// that field stays in effect.
func Load(configPath string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(config.AppName)
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(config.ConfigDir(homeDir))
		}
	}

	initEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, ReadConfigError(configPath, err)
		}
		// no file found: defaults plus env overrides
		return fromViper(v)
	}
	return fromViper(v)
}

// fromViper funnels whatever viper collected through the Option layer so
// field-level validation applies uniformly to file and env values.
func fromViper(v *viper.Viper) (*config.Config, error) {
	var raw config.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, ReadConfigError(v.ConfigFileUsed(), err)
	}

	cfg := config.New()
	cfg.Update(raw.ToOptions())
	return cfg, nil
}

// initEnvVars binds the allowed environment variables explicitly, so the
// supported surface is visible in one place.
func initEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("GEODESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Geocoder configuration
	v.BindEnv("geocoder.api_key", "GEODESK_GEOCODER_API_KEY")
	v.BindEnv("geocoder.base_url", "GEODESK_GEOCODER_BASE_URL")
	v.BindEnv("geocoder.batch_size", "GEODESK_GEOCODER_BATCH_SIZE")
	v.BindEnv("geocoder.timeout_sec", "GEODESK_GEOCODER_TIMEOUT_SEC")
	v.BindEnv("geocoder.sidecar_url", "GEODESK_GEOCODER_SIDECAR_URL")

	// Overture configuration
	v.BindEnv("overture.release", "GEODESK_OVERTURE_RELEASE")
	v.BindEnv("overture.base_uri", "GEODESK_OVERTURE_BASE_URI")

	// Log configuration
	v.BindEnv("log.level", "GEODESK_LOG_LEVEL")
	v.BindEnv("log.format", "GEODESK_LOG_FORMAT")
	v.BindEnv("log.destination", "GEODESK_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "GEODESK_JOBS_NUMBER")

	v.AutomaticEnv()
}

package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGeocoderAPIKey sets the external batch API key. An empty key is
// allowed: it disables the external stage.
func OptGeocoderAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Geocoder.APIKey = s
	}
}

// OptGeocoderBaseURL sets the external batch API host.
func OptGeocoderBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocoder BaseURL", s) {
			c.Geocoder.BaseURL = strings.TrimRight(s, "/")
		}
	}
}

// OptGeocoderBatchSize sets the number of addresses per external API
// request, bounded to [1, 10000].
func OptGeocoderBatchSize(i int) Option {
	return func(c *Config) {
		if isValidRange("Geocoder BatchSize", i, 1, 10_000) {
			c.Geocoder.BatchSize = i
		}
	}
}

// OptGeocoderTimeoutSec sets the provider request timeout in seconds.
func OptGeocoderTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Geocoder Timeout", i) {
			c.Geocoder.TimeoutSec = i
		}
	}
}

// OptGeocoderSidecarURL sets the local subordinate geocoder address.
// An empty value is allowed: it disables the sidecar stage.
func OptGeocoderSidecarURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Geocoder.SidecarURL = strings.TrimRight(s, "/")
	}
}

// OptGeocoderShowProgress toggles the progress bar over external
// geocoding sub-batches.
func OptGeocoderShowProgress(b bool) Option {
	return func(c *Config) {
		c.Geocoder.ShowProgress = b
	}
}

// OptOvertureRelease pins the external dataset snapshot identifier.
func OptOvertureRelease(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Overture Release", s) {
			c.Overture.Release = s
		}
	}
}

// OptOvertureBaseURI sets the external dataset root URI.
func OptOvertureBaseURI(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Overture BaseURI", s) {
			c.Overture.BaseURI = strings.TrimRight(s, "/")
		}
	}
}

// OptLogFormat sets the log output format ('json' or 'text').
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written: 'file', 'stdout' or
// 'stderr'.
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the user home directory used to derive config and log
// paths. Runtime-only; never read from the config file.
func OptHomeDir(s string) Option {
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

package ioresolve

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// CacheReadError creates an error for geocode cache read failures.
func CacheReadError(err error) error {
	return &gn.Error{
		Code: errcode.CacheReadError,
		Msg:  "Cannot read the geocode cache",
		Err:  fmt.Errorf("geocode cache read failed: %w", err),
	}
}

// CacheWriteError creates an error for geocode cache write failures.
func CacheWriteError(err error) error {
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  "Cannot write the geocode cache",
		Err:  fmt.Errorf("geocode cache write failed: %w", err),
	}
}

// ProviderUnavailableError creates an error for geocoding providers
// that could not be reached at all.
func ProviderUnavailableError(provider string, err error) error {
	msg := `Geocoding provider <em>%s</em> is unavailable

<em>Possible causes:</em>
  - No network access
  - The provider endpoint is down or misconfigured

<em>How to fix:</em>
  1. Check network connectivity
  2. Check the provider URL and credentials in the config file`

	return &gn.Error{
		Code: errcode.ProviderUnavailableError,
		Msg:  msg,
		Vars: []any{provider},
		Err:  fmt.Errorf("provider %s unavailable: %w", provider, err),
	}
}

// ProviderResponseError creates an error for malformed provider
// payloads.
func ProviderResponseError(provider string, err error) error {
	return &gn.Error{
		Code: errcode.ProviderResponseError,
		Msg:  "Cannot decode the response of geocoding provider %s",
		Vars: []any{provider},
		Err:  fmt.Errorf("bad response from provider %s: %w", provider, err),
	}
}

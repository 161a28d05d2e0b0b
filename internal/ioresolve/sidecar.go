package ioresolve

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/gnames/gnfmt"
)

// sidecarRequest is the wire shape of the local geocoder request.
type sidecarRequest struct {
	Addresses []string `json:"addresses"`
}

// sidecarResult is one entry of the local geocoder response. Lat and Lon
// are null for addresses the sidecar could not resolve.
type sidecarResult struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// sidecarResolve sends the whole remainder to the local subordinate
// geocoder in one request. An unconfigured sidecar resolves nothing
// silently; an unreachable one degrades the stage with an error the
// pipeline absorbs.
func (p *pipeline) sidecarResolve(
	ctx context.Context,
	addresses []string,
) ([]geodesk.GeocodeResult, error) {
	url := p.cfg.Geocoder.SidecarURL
	if url == "" {
		slog.Debug("Sidecar geocoder not configured, skipping stage")
		return nil, nil
	}

	enc := gnfmt.GNjson{}
	body, err := enc.Encode(sidecarRequest{Addresses: addresses})
	if err != nil {
		return nil, ProviderResponseError("sidecar", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		url+"/geocode", bytes.NewReader(body))
	if err != nil {
		return nil, ProviderUnavailableError("sidecar", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, ProviderUnavailableError("sidecar", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ProviderUnavailableError("sidecar",
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ProviderResponseError("sidecar", err)
	}

	var results []sidecarResult
	if err = enc.Decode(raw, &results); err != nil {
		return nil, ProviderResponseError("sidecar", err)
	}

	// re-associate by address value; the sidecar may reorder or drop
	wanted := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		wanted[a] = struct{}{}
	}

	var resolved []geodesk.GeocodeResult
	for _, r := range results {
		if _, ok := wanted[r.Address]; !ok {
			continue
		}
		if r.Lat == nil || r.Lon == nil {
			continue
		}
		resolved = append(resolved, geodesk.GeocodeResult{
			Address: r.Address,
			Lat:     r.Lat,
			Lon:     r.Lon,
			Source:  geodesk.SourceSidecar,
		})
	}
	return resolved, nil
}

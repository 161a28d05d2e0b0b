package ioresolve

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// geocodioResponse mirrors the relevant part of the Geocodio batch
// geocoding payload. Query carries the input address back, which is how
// results are re-associated with the batch.
type geocodioResponse struct {
	Results []struct {
		Query    string `json:"query"`
		Response struct {
			Results []struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"results"`
		} `json:"response"`
	} `json:"results"`
}

// geocodioResolve resolves the remainder through the Geocodio batch
// API, chunked by the configured batch size with a bounded number of
// concurrent requests. Failed chunks are logged and skipped; the stage
// errors out only when every chunk failed.
func (p *pipeline) geocodioResolve(
	ctx context.Context,
	addresses []string,
) ([]geodesk.GeocodeResult, error) {
	if p.cfg.Geocoder.APIKey == "" {
		slog.Debug("Geocodio API key not configured, skipping stage")
		return nil, nil
	}

	chunks := chunkAddresses(addresses, p.cfg.Geocoder.BatchSize)

	var bar *pb.ProgressBar
	if p.cfg.Geocoder.ShowProgress {
		bar = pb.Full.Start(len(addresses))
		bar.SetWriter(os.Stderr)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	var (
		mu       sync.Mutex
		resolved []geodesk.GeocodeResult
		failed   int
		lastErr  error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.JobsNumber)

	for _, chunk := range chunks {
		g.Go(func() error {
			res, err := p.geocodioBatch(ctx, chunk)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("Geocodio batch failed",
					"size", len(chunk), "error", err)
				failed++
				lastErr = err
			} else {
				resolved = append(resolved, res...)
			}
			if bar != nil {
				bar.Add(len(chunk))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if failed == len(chunks) && len(chunks) > 0 {
		return nil, ProviderUnavailableError("geocodio", lastErr)
	}
	return resolved, nil
}

// geocodioBatch sends one chunk to the batch endpoint and collects the
// first candidate of each resolved address.
func (p *pipeline) geocodioBatch(
	ctx context.Context,
	addresses []string,
) ([]geodesk.GeocodeResult, error) {
	enc := gnfmt.GNjson{}
	body, err := enc.Encode(addresses)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1.7/geocode?api_key=%s",
		p.cfg.Geocoder.BaseURL, url.QueryEscape(p.cfg.Geocoder.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload geocodioResponse
	if err = enc.Decode(raw, &payload); err != nil {
		return nil, err
	}

	var res []geodesk.GeocodeResult
	for _, r := range payload.Results {
		if len(r.Response.Results) == 0 {
			continue
		}
		loc := r.Response.Results[0].Location
		lat, lon := loc.Lat, loc.Lng
		res = append(res, geodesk.GeocodeResult{
			Address: r.Query,
			Lat:     &lat,
			Lon:     &lon,
			Source:  geodesk.SourceGeocodio,
		})
	}
	return res, nil
}

func chunkAddresses(addresses []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var chunks [][]string
	for start := 0; start < len(addresses); start += size {
		end := min(start+size, len(addresses))
		chunks = append(chunks, addresses[start:end])
	}
	return chunks
}

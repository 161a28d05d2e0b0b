package ioresolve

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/geodesk/geodesk/pkg/config"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
)

// stage is one tier of the resolution chain. Fatal stages abort the
// whole batch on error; the rest degrade to resolving nothing.
type stage struct {
	name    string
	fatal   bool
	resolve func(ctx context.Context, addresses []string) ([]geodesk.GeocodeResult, error)
}

type pipeline struct {
	cfg    *config.Config
	op     db.Operator
	client *http.Client
	stages []stage
}

// New assembles the address resolution chain: persistent cache first,
// then the local sidecar geocoder, then the Geocodio batch API.
func New(cfg *config.Config, op db.Operator) geodesk.Resolver {
	p := &pipeline{
		cfg:    cfg,
		op:     op,
		client: &http.Client{Timeout: cfg.Geocoder.Timeout()},
	}
	p.stages = []stage{
		{name: "cache", fatal: true, resolve: p.cacheResolve},
		{name: "sidecar", resolve: p.sidecarResolve},
		{name: "geocodio", resolve: p.geocodioResolve},
	}
	return p
}

func (p *pipeline) cacheResolve(
	ctx context.Context,
	addresses []string,
) ([]geodesk.GeocodeResult, error) {
	return cacheLookup(ctx, p.op, addresses)
}

// Resolve runs the batch through the chain. Every input address gets
// exactly one result, in input order; addresses no tier could resolve
// come back with null coordinates and an unresolved status. Newly
// resolved addresses are written back to the cache before returning.
func (p *pipeline) Resolve(
	ctx context.Context,
	addresses []string,
) ([]geodesk.GeocodeResult, error) {
	remainder := uniqueAddresses(addresses)
	found := make(map[string]geodesk.GeocodeResult, len(remainder))
	var fresh []geodesk.GeocodeResult

	for _, st := range p.stages {
		if len(remainder) == 0 {
			break
		}
		results, err := st.resolve(ctx, remainder)
		if err != nil {
			if st.fatal {
				return nil, err
			}
			slog.Warn("Resolution stage degraded",
				"stage", st.name, "error", err)
			continue
		}
		for _, r := range results {
			if _, ok := found[r.Address]; ok {
				continue
			}
			found[r.Address] = r
			if st.name != "cache" {
				fresh = append(fresh, r)
			}
		}
		remainder = unresolvedRemainder(remainder, found)
		slog.Debug("Resolution stage finished",
			"stage", st.name,
			"resolved", humanize.Comma(int64(len(results))),
			"remaining", humanize.Comma(int64(len(remainder))),
		)
	}

	if len(fresh) > 0 {
		if err := cacheStore(ctx, p.op, fresh); err != nil {
			return nil, err
		}
	}

	out := make([]geodesk.GeocodeResult, len(addresses))
	for i, a := range addresses {
		if r, ok := found[a]; ok {
			out[i] = r
		} else {
			out[i] = geodesk.GeocodeResult{
				Address: a,
				Status:  geodesk.StatusUnresolved,
			}
		}
	}
	return out, nil
}

// uniqueAddresses dedupes the batch while preserving first-seen order.
func uniqueAddresses(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	var res []string
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		res = append(res, a)
	}
	return res
}

func unresolvedRemainder(
	addresses []string,
	found map[string]geodesk.GeocodeResult,
) []string {
	var res []string
	for _, a := range addresses {
		if _, ok := found[a]; !ok {
			res = append(res, a)
		}
	}
	return res
}

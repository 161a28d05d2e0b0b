package ioresolve

import (
	"context"
	"strings"

	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
)

// CacheTable is the fixed name of the persistent geocode cache.
const CacheTable = "geocode_cache"

// ensureCacheTable creates the cache table if it does not already exist.
// The schema is fixed; the call is an idempotent no-op on later runs.
func ensureCacheTable(ctx context.Context, op db.Operator) error {
	stmt := `CREATE TABLE IF NOT EXISTS geocode_cache (
		address   TEXT PRIMARY KEY,
		lat       REAL NOT NULL,
		lon       REAL NOT NULL,
		source    TEXT NOT NULL,
		cached_at TIMESTAMP DEFAULT current_timestamp
	)`
	if _, err := op.DB().ExecContext(ctx, stmt); err != nil {
		return CacheWriteError(err)
	}
	return nil
}

// cacheLookup fetches cached results for the whole batch in one query.
// Hits keep the source tag they were stored with; the tag is never
// rewritten to "cache".
func cacheLookup(
	ctx context.Context,
	op db.Operator,
	addresses []string,
) ([]geodesk.GeocodeResult, error) {
	if len(addresses) == 0 {
		return nil, nil
	}
	if err := ensureCacheTable(ctx, op); err != nil {
		return nil, err
	}

	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(addresses)), ", ")
	query := "SELECT address, lat, lon, source FROM geocode_cache " +
		"WHERE address IN (" + placeholders + ")"

	args := make([]any, len(addresses))
	for i, a := range addresses {
		args[i] = a
	}

	rows, err := op.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, CacheReadError(err)
	}
	defer rows.Close()

	var hits []geodesk.GeocodeResult
	for rows.Next() {
		var (
			address, source string
			lat, lon        float64
		)
		if err = rows.Scan(&address, &lat, &lon, &source); err != nil {
			return nil, CacheReadError(err)
		}
		hits = append(hits, geodesk.GeocodeResult{
			Address: address,
			Lat:     &lat,
			Lon:     &lon,
			Source:  source,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, CacheReadError(err)
	}
	return hits, nil
}

// cacheStore upserts resolved results with their resolving source tags.
// The primary-key upsert keeps concurrent resolution calls from producing
// duplicate rows for the same address.
func cacheStore(
	ctx context.Context,
	op db.Operator,
	results []geodesk.GeocodeResult,
) error {
	if len(results) == 0 {
		return nil
	}
	if err := ensureCacheTable(ctx, op); err != nil {
		return err
	}

	stmt, err := op.DB().PrepareContext(ctx,
		"INSERT OR REPLACE INTO geocode_cache "+
			"(address, lat, lon, source, cached_at) "+
			"VALUES (?, ?, ?, ?, current_timestamp)")
	if err != nil {
		return CacheWriteError(err)
	}
	defer stmt.Close()

	for _, r := range results {
		if !r.Resolved() {
			continue
		}
		if _, err = stmt.ExecContext(ctx,
			r.Address, *r.Lat, *r.Lon, r.Source); err != nil {
			return CacheWriteError(err)
		}
	}
	return nil
}

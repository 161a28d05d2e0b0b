package ioextract

import (
	"context"
	"fmt"
	"strings"

	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/geodesk/geodesk/pkg/ident"
)

// MaxLimit caps the number of rows returned by search operations.
const MaxLimit = 1000

// rankExpr orders search hits: exact normalized match first, then prefix,
// then word-start, then any substring; ties break on label length, then
// label. The four patterns and the limit are bound parameters.
const rankExpr = `CASE
		WHEN label_norm = ? THEN 0
		WHEN label_norm LIKE ? THEN 1
		WHEN label_norm LIKE ? THEN 2
		ELSE 3
	END, length(label_norm), label`

// Search queries an extracted table's lookup by free text and returns
// ranked hits.
func Search(
	ctx context.Context,
	op db.Operator,
	table, query string,
	limit int,
) ([]geodesk.SearchHit, error) {
	lookup, norm, err := searchArgs(table, query)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit)

	stmt := fmt.Sprintf(
		"SELECT source_id, label FROM %s WHERE label_norm LIKE ? ORDER BY %s LIMIT ?",
		lookup, rankExpr,
	)
	rows, err := op.DB().QueryContext(ctx, stmt,
		contains(norm), norm, prefix(norm), wordStart(norm), limit)
	if err != nil {
		return nil, SearchOpError(table, err)
	}
	defer rows.Close()

	var hits []geodesk.SearchHit
	for rows.Next() {
		var id, label *string
		if err = rows.Scan(&id, &label); err != nil {
			return nil, SearchOpError(table, err)
		}
		hit := geodesk.SearchHit{}
		if id != nil {
			hit.ID = *id
		}
		if label != nil {
			hit.Label = *label
		}
		hits = append(hits, hit)
	}
	if err = rows.Err(); err != nil {
		return nil, SearchOpError(table, err)
	}
	return hits, nil
}

// GeocodeByName resolves a free-text place name against an extracted
// table's lookup, joining back to the source table for coordinates taken
// from its geometry.
func GeocodeByName(
	ctx context.Context,
	op db.Operator,
	table, query string,
	limit int,
) ([]geodesk.PlaceHit, error) {
	lookup, norm, err := searchArgs(table, query)
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit)

	// ST_X/ST_Y need the spatial extension on this handle
	if err = op.EnsureExtensions(ctx); err != nil {
		return nil, err
	}

	stmt := fmt.Sprintf(
		"SELECT l.source_id, l.label, "+
			"CAST(ST_Y(t.geometry) AS DOUBLE) AS lat, "+
			"CAST(ST_X(t.geometry) AS DOUBLE) AS lon "+
			"FROM %s l JOIN %s t ON CAST(t.id AS VARCHAR) = l.source_id "+
			"WHERE l.label_norm LIKE ? ORDER BY %s LIMIT ?",
		lookup, table, strings.ReplaceAll(rankExpr, "label", "l.label"),
	)
	rows, err := op.DB().QueryContext(ctx, stmt,
		contains(norm), norm, prefix(norm), wordStart(norm), limit)
	if err != nil {
		return nil, SearchOpError(table, err)
	}
	defer rows.Close()

	var hits []geodesk.PlaceHit
	for rows.Next() {
		var (
			id, label *string
			lat, lon  *float64
		)
		if err = rows.Scan(&id, &label, &lat, &lon); err != nil {
			return nil, SearchOpError(table, err)
		}
		hit := geodesk.PlaceHit{
			Lat:    lat,
			Lon:    lon,
			Source: geodesk.SourceLookup,
		}
		if id != nil {
			hit.ID = *id
		}
		if label != nil {
			hit.Label = *label
		}
		hits = append(hits, hit)
	}
	if err = rows.Err(); err != nil {
		return nil, SearchOpError(table, err)
	}
	return hits, nil
}

func searchArgs(table, query string) (lookup, norm string, err error) {
	if err = ident.Validate(table); err != nil {
		return "", "", err
	}
	lookup = LookupTableName(table)
	if err = ident.Validate(lookup); err != nil {
		return "", "", err
	}
	norm = strings.ToLower(strings.TrimSpace(query))
	if norm == "" {
		return "", "", EmptyQueryError()
	}
	return lookup, norm, nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func contains(q string) string  { return "%" + q + "%" }
func prefix(q string) string    { return q + "%" }
func wordStart(q string) string { return "% " + q + "%" }

// Package ioextract imports bounding-box-scoped slices of the Overture
// dataset into local tables, and serves free-text search over the derived
// lookup tables. This is an impure I/O package; all heavy lifting happens
// inside the analytical engine.
package ioextract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/geodesk/geodesk/pkg/config"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/geodesk/geodesk/pkg/ident"
)

// Run extracts the theme/type partition of the pinned dataset release,
// filtered to rows intersecting the bounding box, into a local table with
// full replace semantics. The derived lookup table is rebuilt in the same
// transaction, so a prior table is only replaced once the new content is
// fully materialized.
func Run(
	ctx context.Context,
	op db.Operator,
	cfg *config.Config,
	theme, itemType string,
	box geodesk.BBox,
	table string,
) (geodesk.ExtractSummary, error) {
	var res geodesk.ExtractSummary

	if table == "" {
		table = DefaultTableName(theme, itemType)
	}
	if err := ident.Validate(table); err != nil {
		return res, err
	}
	lookup := LookupTableName(table)
	if err := ident.Validate(lookup); err != nil {
		return res, err
	}

	if err := op.EnsureExtensions(ctx); err != nil {
		return res, err
	}

	release := cfg.Overture.Release
	source := SourcePath(cfg.Overture.BaseURI, release, theme, itemType)

	tx, err := op.DB().BeginTx(ctx, nil)
	if err != nil {
		return res, ExtractError(table, err)
	}
	defer func() { _ = tx.Rollback() }()

	// coordinates are parsed float64 values, never raw user text; the
	// engine rejects bound parameters inside CREATE TABLE AS
	stmt := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS "+
			"SELECT * FROM read_parquet('%s') "+
			"WHERE bbox.xmin <= %s AND bbox.xmax >= %s "+
			"AND bbox.ymin <= %s AND bbox.ymax >= %s",
		table, ident.EscapeLiteral(source),
		coord(box.MaxLon), coord(box.MinLon),
		coord(box.MaxLat), coord(box.MinLat),
	)
	if _, err = tx.ExecContext(ctx, stmt); err != nil {
		return res, ExtractError(table, err)
	}

	if err = buildLookup(ctx, tx, theme, table); err != nil {
		return res, err
	}

	var count int64
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&count)
	if err != nil {
		return res, ExtractError(table, err)
	}

	if err = tx.Commit(); err != nil {
		return res, ExtractError(table, err)
	}

	slog.Info("Extracted dataset slice",
		"table", table,
		"release", release,
		"theme", theme,
		"type", itemType,
		"rows", humanize.Comma(count),
	)
	return geodesk.ExtractSummary{
		Table:    table,
		Release:  release,
		RowCount: count,
	}, nil
}

// DefaultTableName derives a destination table name from the dataset
// partition, normalizing dashes to underscores.
func DefaultTableName(theme, itemType string) string {
	t := strings.ReplaceAll(theme, "-", "_")
	ty := strings.ReplaceAll(itemType, "-", "_")
	return fmt.Sprintf("overture_%s_%s", t, ty)
}

// LookupTableName returns the name of the derived search table.
func LookupTableName(table string) string {
	return table + "_lookup"
}

// SourcePath builds the partition path of the pinned release. The places
// theme publishes without a type partition; an empty or wildcard type
// selects the whole theme.
func SourcePath(baseURI, release, theme, itemType string) string {
	base := fmt.Sprintf("%s/%s", baseURI, release)
	if theme == "places" {
		return fmt.Sprintf("%s/theme=places/*/*", base)
	}
	itemType = strings.TrimSpace(itemType)
	if itemType == "" || itemType == "*" {
		return fmt.Sprintf("%s/theme=%s/*", base, theme)
	}
	return fmt.Sprintf("%s/theme=%s/type=%s/*", base, theme, itemType)
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

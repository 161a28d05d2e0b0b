package ioextract

import (
	"context"
	"database/sql"
	"fmt"
)

// addressLabel concatenates the address components of the Overture
// addresses theme into one whitespace-normalized label expression.
const addressLabel = `trim(regexp_replace(
	concat_ws(' ',
		coalesce(number, ''),
		coalesce(street, ''),
		coalesce(postal_city, ''),
		coalesce(postcode, ''),
		coalesce(country, '')
	), '\s+', ' ', 'g'))`

// buildLookup (re)creates the derived lookup table for a freshly extracted
// table inside the same transaction. The lookup holds a display label and a
// lowercased label_norm per source row; its shape depends on the theme:
// addresses concatenate their components, themes with a names column use
// it, and anything else falls back to the row id.
func buildLookup(
	ctx context.Context,
	tx *sql.Tx,
	theme, table string,
) error {
	lookup := LookupTableName(table)

	var stmt string
	switch {
	case theme == "addresses":
		stmt = fmt.Sprintf(
			"CREATE OR REPLACE TABLE %s AS "+
				"SELECT CAST(id AS VARCHAR) AS source_id, "+
				"%s AS label, lower(%s) AS label_norm "+
				"FROM %s WHERE %s != ''",
			lookup, addressLabel, addressLabel, table, addressLabel,
		)
	case hasColumn(ctx, tx, table, "names"):
		stmt = fmt.Sprintf(
			"CREATE OR REPLACE TABLE %s AS "+
				"SELECT CAST(id AS VARCHAR) AS source_id, "+
				"trim(CAST(names AS VARCHAR)) AS label, "+
				"lower(trim(CAST(names AS VARCHAR))) AS label_norm "+
				"FROM %s WHERE names IS NOT NULL "+
				"AND trim(CAST(names AS VARCHAR)) != ''",
			lookup, table,
		)
	default:
		stmt = fmt.Sprintf(
			"CREATE OR REPLACE TABLE %s AS "+
				"SELECT CAST(id AS VARCHAR) AS source_id, "+
				"CAST(id AS VARCHAR) AS label, "+
				"lower(CAST(id AS VARCHAR)) AS label_norm "+
				"FROM %s",
			lookup, table,
		)
	}

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return LookupBuildError(lookup, err)
	}
	return nil
}

// hasColumn checks column presence on the transaction's session, so it sees
// tables created earlier in the same transaction. The table name has passed
// identifier validation before this point.
func hasColumn(ctx context.Context, tx *sql.Tx, table, column string) bool {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = ? AND lower(column_name) = lower(?)
		)
	`
	var exists bool
	if err := tx.QueryRowContext(ctx, query, table, column).Scan(&exists); err != nil {
		return false
	}
	return exists
}

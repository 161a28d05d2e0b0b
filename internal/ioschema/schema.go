// Package ioschema reads table structure from the datastore.
package ioschema

import (
	"context"
	"fmt"

	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/geodesk/geodesk/pkg/ident"
)

// Table returns the columns of a datastore table in definition order.
func Table(
	ctx context.Context,
	op db.Operator,
	table string,
) ([]geodesk.TableColumn, error) {
	if err := ident.Validate(table); err != nil {
		return nil, err
	}

	// PRAGMA does not accept bound parameters; the name is validated
	// above and escaped for the literal form.
	query := fmt.Sprintf(
		"PRAGMA table_info('%s')", ident.EscapeLiteral(table))
	rows, err := op.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, LookupError(table, err)
	}
	defer rows.Close()

	var cols []geodesk.TableColumn
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull bool
			dflt    *string
			pk      bool
		)
		if err = rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, LookupError(table, err)
		}
		cols = append(cols, geodesk.TableColumn{
			Name:     name,
			Type:     colType,
			Nullable: !notNull,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, LookupError(table, err)
	}
	if len(cols) == 0 {
		return nil, NotFoundError(table)
	}
	return cols, nil
}

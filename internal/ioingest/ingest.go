// Package ioingest loads tabular CSV data into datastore tables. This is an
// impure I/O package; the CSV parsing itself is delegated to the analytical
// engine's read_csv_auto.
package ioingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/geodesk/geodesk/pkg/ident"
)

// StagingTable receives ingested data when no table name is given.
const StagingTable = "raw_staging"

// CSV loads csvPath into a datastore table. An empty table name targets
// StagingTable with replace semantics; a named table is created fresh and
// the call fails if it already exists. The file path cannot be bound as a
// parameter inside read_csv_auto, so it is embedded as an escaped literal;
// the table name passes identifier validation before it reaches SQL text.
func CSV(
	ctx context.Context,
	op db.Operator,
	csvPath, table string,
) (geodesk.IngestSummary, error) {
	var res geodesk.IngestSummary

	replace := table == ""
	if replace {
		table = StagingTable
	}
	if err := ident.Validate(table); err != nil {
		return res, err
	}

	verb := "CREATE TABLE"
	if replace {
		verb = "CREATE OR REPLACE TABLE"
	}
	stmt := fmt.Sprintf(
		"%s %s AS SELECT * FROM read_csv_auto('%s')",
		verb, table, ident.EscapeLiteral(csvPath),
	)
	if _, err := op.DB().ExecContext(ctx, stmt); err != nil {
		return res, IngestError(csvPath, table, err)
	}

	slog.Info("Ingested CSV", "csv", csvPath, "table", table)
	return geodesk.IngestSummary{Status: "ok", Table: table}, nil
}

// Package iostore implements the datastore contract on DuckDB through
// database/sql. This is an impure I/O package that implements contracts
// defined in pkg/.
package iostore

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/ident"
	_ "github.com/marcboeker/go-duckdb/v2" // DuckDB driver
)

// duckOperator implements db.Operator on one DuckDB file.
type duckOperator struct {
	path string
	db   *sql.DB

	mu        sync.Mutex
	extLoaded bool
}

// New creates a new datastore operator (without connecting).
func New() db.Operator {
	return &duckOperator{}
}

// Connect opens the DuckDB file at path, creating it when absent.
// The handle keeps a single session: extensions loaded on it stay loaded,
// and write-bearing statements are serialized through it.
func (d *duckOperator) Connect(ctx context.Context, path string) error {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return OpenError(path, err)
	}

	// one session per handle; LOAD is connection-scoped and writes need
	// serialization
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return OpenError(path, err)
	}

	d.path = path
	d.db = conn
	return nil
}

// Close releases the underlying session.
func (d *duckOperator) Close() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// DB returns the underlying sql.DB, nil before Connect.
func (d *duckOperator) DB() *sql.DB {
	return d.db
}

// Path returns the datastore file path this handle is bound to.
func (d *duckOperator) Path() string {
	return d.path
}

// EnsureExtensions installs and loads spatial and httpfs on this handle.
// Safe to call repeatedly; the statements run once per handle.
func (d *duckOperator) EnsureExtensions(ctx context.Context) error {
	if d.db == nil {
		return NotConnectedError()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.extLoaded {
		return nil
	}

	stmts := []string{
		"INSTALL spatial",
		"LOAD spatial",
		"INSTALL httpfs",
		"LOAD httpfs",
	}
	for _, stmt := range stmts {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return ExtensionError(stmt, err)
		}
	}

	d.extLoaded = true
	slog.Debug("Datastore extensions loaded", "path", d.path)
	return nil
}

// TableExists checks if a table exists in the datastore.
func (d *duckOperator) TableExists(
	ctx context.Context,
	table string,
) (bool, error) {
	if d.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = ?
		)
	`

	var exists bool
	err := d.db.QueryRowContext(ctx, query, table).Scan(&exists)
	if err != nil {
		return false, QueryError("table existence check", err)
	}
	return exists, nil
}

// HasColumn checks if a table has a column with the given name.
// The table name must already be validated by the caller.
func (d *duckOperator) HasColumn(
	ctx context.Context,
	table, column string,
) (bool, error) {
	if d.db == nil {
		return false, NotConnectedError()
	}
	if err := ident.Validate(table); err != nil {
		return false, err
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = ? AND lower(column_name) = lower(?)
		)
	`

	var exists bool
	err := d.db.QueryRowContext(ctx, query, table, column).Scan(&exists)
	if err != nil {
		return false, QueryError("column existence check", err)
	}
	return exists, nil
}

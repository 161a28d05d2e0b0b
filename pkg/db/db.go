// Package db defines the contract for the embedded analytical datastore.
// The engine never implements SQL itself; it issues statements through this
// interface and reads result sets back.
package db

import (
	"context"
	"database/sql"
)

// Operator is a reusable handle to one datastore file. Extension state is
// connection-scoped, so EnsureExtensions must be re-established per handle,
// never assumed global.
//
// Write-bearing operations are serialized through the handle's single
// session; readers may share it because database/sql serializes access to
// that session for us.
type Operator interface {
	// Connect opens (or creates) the datastore at the given path.
	// The path ":memory:" opens an ephemeral in-memory datastore.
	Connect(ctx context.Context, path string) error

	// Close releases the underlying session.
	Close() error

	// DB returns the underlying sql.DB for operations to execute their
	// specialized statements. Nil before Connect.
	DB() *sql.DB

	// Path returns the datastore file path this handle is bound to.
	Path() string

	// EnsureExtensions installs and loads the spatial and httpfs
	// extensions on this handle. Idempotent per handle.
	EnsureExtensions(ctx context.Context) error

	// TableExists checks if a table exists in the datastore.
	TableExists(ctx context.Context, table string) (bool, error)

	// HasColumn checks if a table has a column with the given name,
	// case-insensitively.
	HasColumn(ctx context.Context, table, column string) (bool, error)
}

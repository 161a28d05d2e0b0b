package iostore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/geodesk/geodesk/internal/iostore"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: these are integration tests against a real DuckDB session.
// Skip with: go test -short

func TestOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iostore.New()
}

func TestConnect_CreatesFile(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store_test.duckdb")

	op := iostore.New()
	err := op.Connect(ctx, path)
	require.NoError(t, err)
	defer op.Close()

	assert.Equal(t, path, op.Path())
	require.NotNil(t, op.DB())
	require.NoError(t, op.DB().PingContext(ctx))
}

func TestTableExists(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := iostore.New()
	require.NoError(t, op.Connect(ctx, ":memory:"))
	defer op.Close()

	exists, err := op.TableExists(ctx, "places")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = op.DB().ExecContext(ctx, "CREATE TABLE places (id INTEGER, name TEXT)")
	require.NoError(t, err)

	exists, err = op.TableExists(ctx, "places")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestHasColumn(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := iostore.New()
	require.NoError(t, op.Connect(ctx, ":memory:"))
	defer op.Close()

	_, err := op.DB().ExecContext(ctx,
		"CREATE TABLE places (id INTEGER, Names TEXT)")
	require.NoError(t, err)

	has, err := op.HasColumn(ctx, "places", "names")
	require.NoError(t, err)
	assert.True(t, has, "column match should be case-insensitive")

	has, err = op.HasColumn(ctx, "places", "street")
	require.NoError(t, err)
	assert.False(t, has)

	_, err = op.HasColumn(ctx, "places; DROP TABLE places", "names")
	require.Error(t, err, "unsafe table name should be rejected")
}

func TestNotConnected(t *testing.T) {
	ctx := context.Background()
	op := iostore.New()

	_, err := op.TableExists(ctx, "places")
	assert.Error(t, err)

	err = op.EnsureExtensions(ctx)
	assert.Error(t, err)

	assert.NoError(t, op.Close(), "closing an unconnected handle is a no-op")
}

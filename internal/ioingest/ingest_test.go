package ioingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/geodesk/geodesk/internal/ioingest"
	"github.com/geodesk/geodesk/internal/ioschema"
	"github.com/geodesk/geodesk/internal/iostore"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: these are integration tests against a real DuckDB session.
// Skip with: go test -short

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.csv")
	data := "id,name,lat,lon\n1,City Hall,37.7793,-122.4192\n2,Ferry Building,37.7955,-122.3937\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func memStore(t *testing.T) db.Operator {
	t.Helper()
	op := iostore.New()
	require.NoError(t, op.Connect(context.Background(), ":memory:"))
	t.Cleanup(func() { _ = op.Close() })
	return op
}

func TestCSV_DefaultStagingTable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := memStore(t)
	csvPath := writeCSV(t)

	res, err := ioingest.CSV(ctx, op, csvPath, "")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, ioingest.StagingTable, res.Table)

	cols, err := ioschema.Table(ctx, op, ioingest.StagingTable)
	require.NoError(t, err)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"id", "name", "lat", "lon"}, names)
}

func TestCSV_StagingReplacedOnReingest(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := memStore(t)
	csvPath := writeCSV(t)

	_, err := ioingest.CSV(ctx, op, csvPath, "")
	require.NoError(t, err)
	_, err = ioingest.CSV(ctx, op, csvPath, "")
	require.NoError(t, err, "re-ingest into staging must replace, not fail")

	var count int
	err = op.DB().QueryRowContext(ctx,
		"SELECT count(*) FROM raw_staging").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "replace semantics, not append")
}

func TestCSV_NamedTable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := memStore(t)
	csvPath := writeCSV(t)

	res, err := ioingest.CSV(ctx, op, csvPath, "places")
	require.NoError(t, err)
	assert.Equal(t, "places", res.Table)

	// named tables are created fresh; a second ingest fails
	_, err = ioingest.CSV(ctx, op, csvPath, "places")
	assert.Error(t, err)
}

func TestCSV_RejectsUnsafeTableName(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := memStore(t)
	csvPath := writeCSV(t)

	_, err := ioingest.CSV(ctx, op, csvPath, "places; DROP TABLE raw_staging")
	require.Error(t, err)
}

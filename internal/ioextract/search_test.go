package ioextract_test

import (
	"context"
	"testing"

	"github.com/geodesk/geodesk/internal/ioextract"
	"github.com/geodesk/geodesk/internal/iostore"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: search integration tests run against a real DuckDB session with a
// hand-built lookup table, so they need no network access.
// Skip with: go test -short

func lookupStore(t *testing.T) db.Operator {
	t.Helper()
	ctx := context.Background()
	op := iostore.New()
	require.NoError(t, op.Connect(ctx, ":memory:"))
	t.Cleanup(func() { _ = op.Close() })

	_, err := op.DB().ExecContext(ctx, `
		CREATE TABLE places_wa_lookup (
			source_id VARCHAR,
			label VARCHAR,
			label_norm VARCHAR
		)`)
	require.NoError(t, err)

	_, err = op.DB().ExecContext(ctx, `
		INSERT INTO places_wa_lookup VALUES
		('1', 'Lincoln Park', 'lincoln park'),
		('2', 'Lincoln', 'lincoln'),
		('3', 'Fort Lincoln Cemetery', 'fort lincoln cemetery'),
		('4', 'Lincolnshire Cafe', 'lincolnshire cafe'),
		('5', 'Pike Place Market', 'pike place market')`)
	require.NoError(t, err)
	return op
}

func TestSearch_Ranking(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := lookupStore(t)

	hits, err := ioextract.Search(ctx, op, "places_wa", "lincoln", 10)
	require.NoError(t, err)
	require.Len(t, hits, 4)

	// exact match first, then prefix matches by length, then word-start
	assert.Equal(t, "Lincoln", hits[0].Label)
	assert.Equal(t, "Lincoln Park", hits[1].Label)
	assert.Equal(t, "Lincolnshire Cafe", hits[2].Label)
	assert.Equal(t, "Fort Lincoln Cemetery", hits[3].Label)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := lookupStore(t)

	hits, err := ioextract.Search(ctx, op, "places_wa", "  LINCOLN  ", 10)
	require.NoError(t, err)
	assert.Len(t, hits, 4)
}

func TestSearch_LimitApplied(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := lookupStore(t)

	hits, err := ioextract.Search(ctx, op, "places_wa", "lincoln", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_QueryIsBoundNotInterpolated(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := lookupStore(t)

	// a hostile query string must be harmless data, not SQL
	hits, err := ioextract.Search(ctx, op, "places_wa",
		"x'; DROP TABLE places_wa_lookup;--", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	exists, err := op.TableExists(ctx, "places_wa_lookup")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSearch_Errors(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := lookupStore(t)

	// a blank query is an input-validation failure, not a storage one
	_, err := ioextract.Search(ctx, op, "places_wa", "   ", 10)
	require.Error(t, err, "blank query")
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.ParseError, gnErr.Code)

	_, err = ioextract.Search(ctx, op, "nope; DROP", "lincoln", 10)
	assert.Error(t, err, "unsafe table name")

	_, err = ioextract.Search(ctx, op, "never_extracted", "lincoln", 10)
	assert.Error(t, err, "missing lookup table")
}

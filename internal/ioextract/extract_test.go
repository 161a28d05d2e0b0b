package ioextract_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/geodesk/geodesk/internal/ioextract"
	"github.com/geodesk/geodesk/internal/iostore"
	"github.com/geodesk/geodesk/pkg/config"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableName(t *testing.T) {
	tests := []struct {
		msg, theme, itemType, out string
	}{
		{"plain", "places", "place", "overture_places_place"},
		{"dashes normalized", "base", "land-use", "overture_base_land_use"},
		{"theme dash", "land-cover", "land_cover", "overture_land_cover_land_cover"},
	}
	for _, v := range tests {
		assert.Equal(t, v.out,
			ioextract.DefaultTableName(v.theme, v.itemType), v.msg)
	}
}

func TestLookupTableName(t *testing.T) {
	assert.Equal(t, "places_wa_lookup", ioextract.LookupTableName("places_wa"))
}

func TestSourcePath(t *testing.T) {
	base := "s3://overturemaps-us-west-2/release"
	release := "2026-02-18.0"

	tests := []struct {
		msg, theme, itemType, want string
	}{
		{
			"places theme has no type partition",
			"places", "place",
			base + "/" + release + "/theme=places/*/*",
		},
		{
			"typed partition",
			"transportation", "segment",
			base + "/" + release + "/theme=transportation/type=segment/*",
		},
		{
			"addresses typed partition",
			"addresses", "address",
			base + "/" + release + "/theme=addresses/type=address/*",
		},
		{
			"wildcard type selects whole theme",
			"buildings", "*",
			base + "/" + release + "/theme=buildings/*",
		},
		{
			"empty type selects whole theme",
			"buildings", " ",
			base + "/" + release + "/theme=buildings/*",
		},
	}
	for _, v := range tests {
		got := ioextract.SourcePath(base, release, v.theme, v.itemType)
		assert.Equal(t, v.want, got, v.msg)
	}
}

func TestSourcePath_PinnedReleaseIsReproducible(t *testing.T) {
	base := "s3://overturemaps-us-west-2/release"
	a := ioextract.SourcePath(base, "2026-02-18.0", "places", "place")
	b := ioextract.SourcePath(base, "2026-02-18.0", "places", "place")
	assert.Equal(t, a, b)
	assert.Contains(t, a, "2026-02-18.0")
}

// Note: the extraction integration test runs against a real DuckDB session
// with a local parquet fixture laid out like a release partition, so it
// needs no object-storage access. Skip with: go test -short

// writeParquetFixture materializes a three-row dataset partition under a
// temp directory shaped like <base>/<release>/theme=buildings/type=building.
// Two rows sit inside the Seattle box, one far outside it.
func writeParquetFixture(t *testing.T, op db.Operator, release string) string {
	t.Helper()
	ctx := context.Background()

	base := t.TempDir()
	partDir := filepath.Join(base, release, "theme=buildings", "type=building")
	require.NoError(t, os.MkdirAll(partDir, 0755))

	_, err := op.DB().ExecContext(ctx, `
		CREATE TABLE fixture_src AS SELECT * FROM (VALUES
			('1', 'Pike Place Market',
				{'xmin': -122.35, 'xmax': -122.33, 'ymin': 47.60, 'ymax': 47.61}),
			('2', 'Fremont Troll',
				{'xmin': -122.35, 'xmax': -122.34, 'ymin': 47.65, 'ymax': 47.66}),
			('3', 'Mount Rainier',
				{'xmin': -121.80, 'xmax': -121.70, 'ymin': 46.80, 'ymax': 46.90})
		) AS t(id, names, bbox)`)
	require.NoError(t, err)

	_, err = op.DB().ExecContext(ctx, fmt.Sprintf(
		"COPY fixture_src TO '%s' (FORMAT PARQUET)",
		filepath.Join(partDir, "part-0.parquet")))
	require.NoError(t, err)
	return base
}

func TestRun_Idempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := iostore.New()
	require.NoError(t, op.Connect(ctx, ":memory:"))
	t.Cleanup(func() { _ = op.Close() })

	cfg := config.New()
	cfg.Overture.BaseURI = writeParquetFixture(t, op, cfg.Overture.Release)

	box := geodesk.BBox{
		MinLon: -122.46, MinLat: 47.48,
		MaxLon: -122.22, MaxLat: 47.73,
	}

	first, err := ioextract.Run(
		ctx, op, cfg, "buildings", "building", box, "poi_wa")
	require.NoError(t, err)
	assert.Equal(t, "poi_wa", first.Table)
	assert.Equal(t, cfg.Overture.Release, first.Release)
	// the bbox filter keeps the two Seattle rows and drops the mountain
	assert.Equal(t, int64(2), first.RowCount)

	second, err := ioextract.Run(
		ctx, op, cfg, "buildings", "building", box, "poi_wa")
	require.NoError(t, err)
	// full replace semantics: same inputs, same count, no accumulation
	assert.Equal(t, first.RowCount, second.RowCount)

	var rows int64
	err = op.DB().QueryRowContext(ctx,
		"SELECT count(*) FROM poi_wa").Scan(&rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	// the derived lookup is rebuilt alongside, from the names column
	hits, err := ioextract.Search(ctx, op, "poi_wa", "pike place", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Pike Place Market", hits[0].Label)

	err = op.DB().QueryRowContext(ctx,
		"SELECT count(*) FROM poi_wa_lookup").Scan(&rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
}

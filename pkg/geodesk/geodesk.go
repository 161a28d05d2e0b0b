// Package geodesk provides the core types and contracts of the geodesk
// engine. The package is pure; impure implementations live in internal/io*
// packages.
//
// The engine exposes one textual command surface. A command line is parsed
// into a typed invocation, dispatched to an operation, and the operation's
// result is returned as a single UTF-8 JSON string. The same surface is
// consumed by the CLI, the desktop-UI bridge and tool-calling servers.
package geodesk

import (
	"context"
)

// Executor runs one textual command and returns its JSON payload.
type Executor interface {
	// Execute parses and dispatches one command line. On success the
	// returned string is a complete JSON value; the error carries an
	// errcode for the dispatcher's wire-level error payload.
	Execute(ctx context.Context, line string) (string, error)

	// ExecuteJSON behaves like Execute but never returns an error:
	// failures are rendered as a JSON object with error_kind and message
	// fields, distinct from any success payload.
	ExecuteJSON(ctx context.Context, line string) string

	// Close releases every datastore handle the executor has opened.
	Close() error
}

// Resolver turns free-form addresses into coordinates using the cache-first
// multi-provider pipeline. The output preserves the input order and contains
// one entry per input address; entries the pipeline could not resolve are
// marked rather than dropped.
type Resolver interface {
	Resolve(ctx context.Context, addresses []string) ([]GeocodeResult, error)
}

// GeocodeResult is one resolved (or unresolved) address. Lat and Lon are nil
// when no provider could resolve the address, in which case Status is set to
// StatusUnresolved.
type GeocodeResult struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Source  string   `json:"source,omitempty"`
	Status  string   `json:"status,omitempty"`
}

// StatusUnresolved marks an address no pipeline stage could resolve.
const StatusUnresolved = "unresolved"

// Provider source tags stored in the geocode cache.
const (
	SourceCache    = "cache"
	SourceSidecar  = "sidecar"
	SourceGeocodio = "geocodio"
	SourceLookup   = "lookup"
)

// Resolved reports whether the result carries coordinates.
func (g GeocodeResult) Resolved() bool {
	return g.Lat != nil && g.Lon != nil
}

// TableColumn describes one column of a datastore table.
type TableColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// IngestSummary is the payload of a successful ingest command.
type IngestSummary struct {
	Status string `json:"status"`
	Table  string `json:"table"`
}

// ExtractSummary is the payload of a successful extract command. Release
// records the pinned dataset snapshot so the extraction is reproducible.
type ExtractSummary struct {
	Table    string `json:"table"`
	Release  string `json:"release"`
	RowCount int64  `json:"row_count"`
}

// SearchHit is one row of a lookup-table search.
type SearchHit struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label"`
}

// PlaceHit is one row of a geocode-by-name lookup: a labelled place with
// coordinates taken from the extracted table's geometry.
type PlaceHit struct {
	ID     string   `json:"id,omitempty"`
	Label  string   `json:"label"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Source string   `json:"source"`
}

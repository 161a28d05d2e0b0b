// Package command parses the geodesk textual command surface. One line of
// text becomes a typed invocation from a closed set of commands; the arity
// of every command is checked here, before any side effect can happen.
//
// The surface, shared verbatim by the CLI, the UI bridge and tool servers:
//
//	ingest   <db_path> <csv_path> [table_name]
//	schema   <db_path> <table_name>
//	extract  <db_path> <theme> <type> <min_lon,min_lat,max_lon,max_lat> [table_name]
//	search   <db_path> <table_name> <query> [limit]
//	geocode-by-name <db_path> <table_name> <query> [limit]
//	geocode  <db_path> <address_1> [address_2 ...]
package command

import (
	"fmt"
	"strconv"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/gnames/gn"
)

// DefaultLimit is used by search and geocode-by-name when no limit argument
// is given.
const DefaultLimit = 20

// Command is one parsed invocation. The set of implementations is closed;
// the dispatcher switches over it exhaustively.
type Command interface {
	// CmdName returns the command-surface name of the invocation.
	CmdName() string
	// DB returns the datastore path the invocation works against.
	DB() string
}

// Ingest loads a CSV file into a datastore table. An empty Table targets the
// raw_staging table with replace semantics.
type Ingest struct {
	DBPath  string
	CSVPath string
	Table   string
}

// Schema describes the columns of one table.
type Schema struct {
	DBPath string
	Table  string
}

// Extract imports a bounding-box-scoped slice of the external dataset.
// An empty Table derives the destination name from Theme and Type.
type Extract struct {
	DBPath string
	Theme  string
	Type   string
	Box    geodesk.BBox
	Table  string
}

// Search queries an extracted table's lookup by free text.
type Search struct {
	DBPath string
	Table  string
	Query  string
	Limit  int
}

// GeocodeByName resolves a free-text place name against an extracted
// table's lookup, returning coordinates from the table's geometry.
type GeocodeByName struct {
	DBPath string
	Table  string
	Query  string
	Limit  int
}

// Geocode resolves one or more addresses through the cache-first pipeline.
type Geocode struct {
	DBPath    string
	Addresses []string
}

func (c Ingest) CmdName() string        { return "ingest" }
func (c Schema) CmdName() string        { return "schema" }
func (c Extract) CmdName() string       { return "extract" }
func (c Search) CmdName() string        { return "search" }
func (c GeocodeByName) CmdName() string { return "geocode-by-name" }
func (c Geocode) CmdName() string       { return "geocode" }

func (c Ingest) DB() string        { return c.DBPath }
func (c Schema) DB() string        { return c.DBPath }
func (c Extract) DB() string       { return c.DBPath }
func (c Search) DB() string        { return c.DBPath }
func (c GeocodeByName) DB() string { return c.DBPath }
func (c Geocode) DB() string       { return c.DBPath }

// Parse tokenizes one command line and returns its typed invocation.
func Parse(line string) (Command, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &gn.Error{
			Code: errcode.ParseError,
			Msg:  "Command cannot be empty",
			Err:  fmt.Errorf("empty command"),
		}
	}

	name, args := tokens[0], tokens[1:]
	switch name {
	case "ingest":
		return parseIngest(args)
	case "schema":
		return parseSchema(args)
	case "extract":
		return parseExtract(args)
	case "search":
		return parseSearch(args)
	case "geocode-by-name":
		return parseGeocodeByName(args)
	case "geocode":
		return parseGeocode(args)
	}
	return nil, &gn.Error{
		Code: errcode.UnknownCommandError,
		Msg:  "Unknown command <em>%s</em>",
		Vars: []any{name},
		Err:  fmt.Errorf("unknown command: %s", name),
	}
}

func parseIngest(args []string) (Command, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, arityError("ingest <db_path> <csv_path> [table_name]")
	}
	cmd := Ingest{DBPath: args[0], CSVPath: args[1]}
	if len(args) == 3 {
		cmd.Table = args[2]
	}
	return cmd, nil
}

func parseSchema(args []string) (Command, error) {
	if len(args) != 2 {
		return nil, arityError("schema <db_path> <table_name>")
	}
	return Schema{DBPath: args[0], Table: args[1]}, nil
}

func parseExtract(args []string) (Command, error) {
	if len(args) < 4 || len(args) > 5 {
		return nil, arityError(
			"extract <db_path> <theme> <type> <min_lon,min_lat,max_lon,max_lat> [table_name]")
	}
	box, err := geodesk.ParseBBox(args[3])
	if err != nil {
		return nil, err
	}
	cmd := Extract{DBPath: args[0], Theme: args[1], Type: args[2], Box: box}
	if len(args) == 5 {
		cmd.Table = args[4]
	}
	return cmd, nil
}

func parseSearch(args []string) (Command, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, arityError("search <db_path> <table_name> <query> [limit]")
	}
	limit, err := parseLimit(args, 3)
	if err != nil {
		return nil, err
	}
	return Search{DBPath: args[0], Table: args[1], Query: args[2], Limit: limit}, nil
}

func parseGeocodeByName(args []string) (Command, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, arityError("geocode-by-name <db_path> <table_name> <query> [limit]")
	}
	limit, err := parseLimit(args, 3)
	if err != nil {
		return nil, err
	}
	return GeocodeByName{
		DBPath: args[0], Table: args[1], Query: args[2], Limit: limit,
	}, nil
}

func parseGeocode(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, arityError("geocode <db_path> <address_1> [address_2 ...]")
	}
	addresses := make([]string, len(args)-1)
	copy(addresses, args[1:])
	return Geocode{DBPath: args[0], Addresses: addresses}, nil
}

func parseLimit(args []string, idx int) (int, error) {
	if len(args) <= idx {
		return DefaultLimit, nil
	}
	limit, err := strconv.Atoi(args[idx])
	if err != nil || limit < 1 {
		return 0, &gn.Error{
			Code: errcode.ParseError,
			Msg:  "Limit must be a positive integer, got <em>%s</em>",
			Vars: []any{args[idx]},
			Err:  fmt.Errorf("invalid limit %q", args[idx]),
		}
	}
	return limit, nil
}

func arityError(usage string) error {
	return &gn.Error{
		Code: errcode.ArityError,
		Msg:  "Usage: %s",
		Vars: []any{usage},
		Err:  fmt.Errorf("usage: %s", usage),
	}
}

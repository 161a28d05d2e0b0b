package ioextract

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// ExtractError creates an error for dataset extraction failures.
func ExtractError(table string, err error) error {
	msg := `Cannot extract dataset slice into <em>%s</em>

<em>Possible causes:</em>
  - No network access to the dataset host
  - The theme/type partition does not exist in the pinned release
  - The datastore file is not writable

<em>How to fix:</em>
  1. Check network connectivity
  2. Check theme and type against the dataset release notes`

	return &gn.Error{
		Code: errcode.ExtractError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("extraction into %q failed: %w", table, err),
	}
}

// LookupBuildError creates an error for derived lookup table failures.
func LookupBuildError(lookup string, err error) error {
	return &gn.Error{
		Code: errcode.LookupBuildError,
		Msg:  "Cannot build lookup table <em>%s</em>",
		Vars: []any{lookup},
		Err:  fmt.Errorf("cannot build lookup table %q: %w", lookup, err),
	}
}

// SearchOpError creates an error for lookup search failures.
func SearchOpError(table string, err error) error {
	msg := `Search against <em>%s</em> failed

<em>Possible causes:</em>
  - The table was never extracted (no lookup exists)
  - The datastore file is damaged

<em>How to fix:</em>
  1. Run extract for this table first`

	return &gn.Error{
		Code: errcode.SearchError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("search against %q failed: %w", table, err),
	}
}

// EmptyQueryError creates an error for blank search queries. A blank
// query is an input-validation failure, not a storage one, so it carries
// a parse-class code.
func EmptyQueryError() error {
	return &gn.Error{
		Code: errcode.ParseError,
		Msg:  "Search query cannot be empty",
		Err:  fmt.Errorf("search query cannot be empty"),
	}
}

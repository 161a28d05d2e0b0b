package ioschema

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// LookupError creates an error for schema query failures.
func LookupError(table string, err error) error {
	return &gn.Error{
		Code: errcode.SchemaLookupError,
		Msg:  "Cannot read schema of table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("cannot read schema of %q: %w", table, err),
	}
}

// NotFoundError creates an error for tables that do not exist.
func NotFoundError(table string) error {
	return &gn.Error{
		Code: errcode.SchemaLookupError,
		Msg:  "Table <em>%s</em> does not exist",
		Vars: []any{table},
		Err:  fmt.Errorf("table %q does not exist", table),
	}
}

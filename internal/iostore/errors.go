package iostore

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// OpenError creates an error for datastore open failures.
func OpenError(path string, err error) error {
	msg := `Cannot open datastore <em>%s</em>

<em>Possible causes:</em>
  - The path is not writable
  - The file is not a DuckDB database
  - Another process holds an exclusive lock

<em>How to fix:</em>
  1. Check the path and its permissions
  2. Close other programs using the file`

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open datastore %q: %w", path, err),
	}
}

// NotConnectedError creates an error for operations attempted before
// Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.StoreNotConnectedError,
		Msg:  "Datastore operation attempted without connection",
		Err:  fmt.Errorf("not connected to datastore"),
	}
}

// ExtensionError creates an error for extension install/load failures.
func ExtensionError(stmt string, err error) error {
	msg := `Cannot load datastore extension (<em>%s</em>)

<em>Possible causes:</em>
  - No network access to the extension repository
  - The extension repository is unreachable

<em>How to fix:</em>
  1. Check network connectivity
  2. Retry; extensions are cached once installed`

	return &gn.Error{
		Code: errcode.StoreExtensionError,
		Msg:  msg,
		Vars: []any{stmt},
		Err:  fmt.Errorf("extension statement %q failed: %w", stmt, err),
	}
}

// QueryError creates an error for datastore query failures.
func QueryError(what string, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Datastore query failed: %s",
		Vars: []any{what},
		Err:  fmt.Errorf("%s failed: %w", what, err),
	}
}

// ExecError creates an error for datastore statement failures.
func ExecError(what string, err error) error {
	return &gn.Error{
		Code: errcode.StoreExecError,
		Msg:  "Datastore statement failed: %s",
		Vars: []any{what},
		Err:  fmt.Errorf("%s failed: %w", what, err),
	}
}

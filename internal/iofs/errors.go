package iofs

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError creates an error for directory creation failures.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>

<em>How to fix:</em>
  1. Check the parent directory is writable
  2. Check for a file with the same name`

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot create directory %q: %w", dir, err),
	}
}

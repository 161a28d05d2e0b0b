package iologger

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError creates an error for log file creation failures.
func CreateLogFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  "Cannot create log file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create log file %q: %w", path, err),
	}
}

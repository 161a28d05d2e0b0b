package ioconfig

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadConfigError creates an error for unreadable or malformed config
// files.
func ReadConfigError(path string, err error) error {
	msg := `Cannot read config file <em>%s</em>

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Check the file is valid YAML`

	return &gn.Error{
		Code: errcode.ConfigWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read config file %q: %w", path, err),
	}
}

// CreateDirError creates an error for config directory creation failures.
func CreateDirError(dir string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("cannot create directory %q: %w", dir, err),
	}
}

// WriteConfigError creates an error for config file write failures.
func WriteConfigError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ConfigWriteError,
		Msg:  "Cannot write config file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write config file %q: %w", path, err),
	}
}

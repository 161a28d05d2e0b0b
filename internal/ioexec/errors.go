package ioexec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// InternalError creates an error for dispatcher failures that do not map
// to any user-facing condition.
func InternalError(cmd string) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Internal error while running <em>%s</em>",
		Vars: []any{cmd},
		Err:  fmt.Errorf("internal error: %s", cmd),
	}
}

// errorKind maps an error code to the stable wire-level kind string.
// Unrecognized errors become internal_error rather than leaking internals.
func errorKind(err error) string {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return "internal_error"
	}

	switch gnErr.Code {
	case errcode.ParseError:
		return "parse_error"
	case errcode.ArityError:
		return "arity_error"
	case errcode.UnknownCommandError:
		return "unknown_command"
	case errcode.InvalidIdentifierError:
		return "invalid_identifier"
	case errcode.InvalidPathError:
		return "invalid_path"
	case errcode.InvalidBoundingBoxError:
		return "invalid_bounding_box"
	case errcode.StoreOpenError, errcode.StoreNotConnectedError,
		errcode.StoreExtensionError, errcode.StoreQueryError,
		errcode.StoreExecError, errcode.IngestError,
		errcode.SchemaLookupError, errcode.ExtractError,
		errcode.LookupBuildError, errcode.SearchError,
		errcode.CacheReadError, errcode.CacheWriteError:
		return "storage_error"
	case errcode.ProviderUnavailableError, errcode.ProviderResponseError:
		return "provider_unavailable"
	}
	return "internal_error"
}

// errorMessage renders a plain-text message for the wire, without the
// terminal markup of the CLI error output.
func errorMessage(err error) string {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return err.Error()
	}

	msg := gnErr.Msg
	if len(gnErr.Vars) > 0 {
		msg = fmt.Sprintf(msg, gnErr.Vars...)
	}
	msg = strings.NewReplacer("<em>", "", "</em>", "").Replace(msg)

	// keep the wire message to the headline of multi-line CLI help
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

// Package errcode defines error codes for all geodesk error conditions.
// Codes are attached to gn.Error values created in the packages where the
// errors originate, and the dispatcher maps them to wire-level error kinds.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Command surface errors
	ParseError
	ArityError
	UnknownCommandError

	// Validation errors
	InvalidIdentifierError
	InvalidPathError
	InvalidBoundingBoxError

	// File system errors
	CreateDirError
	CreateLogFileError
	ConfigWriteError

	// Datastore errors
	StoreOpenError
	StoreNotConnectedError
	StoreExtensionError
	StoreQueryError
	StoreExecError

	// Ingest and schema errors
	IngestError
	SchemaLookupError

	// Extraction errors
	ExtractError
	LookupBuildError
	SearchError

	// Resolution errors
	CacheReadError
	CacheWriteError
	ProviderUnavailableError
	ProviderResponseError
)

// Package ioexec implements the single command entry point. A line of
// text is parsed, dispatched to the matching datastore operation and the
// result is serialized to one JSON value. Datastore handles are pooled
// per path, so repeated commands against the same file reuse a session.
package ioexec

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/geodesk/geodesk/internal/ioextract"
	"github.com/geodesk/geodesk/internal/ioingest"
	"github.com/geodesk/geodesk/internal/ioresolve"
	"github.com/geodesk/geodesk/internal/ioschema"
	"github.com/geodesk/geodesk/internal/iostore"
	"github.com/geodesk/geodesk/pkg/command"
	"github.com/geodesk/geodesk/pkg/config"
	"github.com/geodesk/geodesk/pkg/db"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

type executor struct {
	cfg    *config.Config
	mu     sync.Mutex
	stores map[string]db.Operator
}

// New creates an Executor with an empty datastore pool.
func New(cfg *config.Config) geodesk.Executor {
	return &executor{
		cfg:    cfg,
		stores: make(map[string]db.Operator),
	}
}

// Execute parses one command line, dispatches it and returns the result
// as a JSON string. Parsing and validation fail before any datastore is
// touched.
func (e *executor) Execute(ctx context.Context, line string) (string, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		return "", err
	}

	traceID := uuid.NewString()
	slog.Info("Executing command",
		"command", cmd.CmdName(), "db", cmd.DB(), "traceID", traceID)

	op, err := e.store(ctx, cmd.DB())
	if err != nil {
		return "", err
	}

	var payload any
	switch c := cmd.(type) {
	case command.Ingest:
		payload, err = ioingest.CSV(ctx, op, c.CSVPath, c.Table)
	case command.Schema:
		payload, err = ioschema.Table(ctx, op, c.Table)
	case command.Extract:
		payload, err = ioextract.Run(
			ctx, op, e.cfg, c.Theme, c.Type, c.Box, c.Table)
	case command.Search:
		var hits []geodesk.SearchHit
		hits, err = ioextract.Search(ctx, op, c.Table, c.Query, c.Limit)
		if hits == nil {
			hits = []geodesk.SearchHit{}
		}
		payload = hits
	case command.GeocodeByName:
		var hits []geodesk.PlaceHit
		hits, err = ioextract.GeocodeByName(
			ctx, op, c.Table, c.Query, c.Limit)
		if hits == nil {
			hits = []geodesk.PlaceHit{}
		}
		payload = hits
	case command.Geocode:
		payload, err = ioresolve.New(e.cfg, op).Resolve(ctx, c.Addresses)
	default:
		err = InternalError(cmd.CmdName())
	}
	if err != nil {
		slog.Error("Command failed",
			"command", cmd.CmdName(), "traceID", traceID, "error", err)
		return "", err
	}

	out, err := gnfmt.GNjson{}.Encode(payload)
	if err != nil {
		return "", InternalError(cmd.CmdName())
	}
	return string(out), nil
}

// errorPayload is the wire shape of a failed command.
type errorPayload struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// ExecuteJSON renders failures as an error object instead of returning
// them, so callers that cannot handle Go errors (the UI bridge, tool
// servers) always get one JSON value back.
func (e *executor) ExecuteJSON(ctx context.Context, line string) string {
	res, err := e.Execute(ctx, line)
	if err == nil {
		return res
	}

	payload := errorPayload{
		ErrorKind: errorKind(err),
		Message:   errorMessage(err),
	}
	out, encErr := gnfmt.GNjson{}.Encode(payload)
	if encErr != nil {
		return `{"error_kind":"internal_error","message":"cannot encode error"}`
	}
	return string(out)
}

// Close releases every pooled datastore handle.
func (e *executor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for path, op := range e.stores {
		if err := op.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(e.stores, path)
	}
	return errors.Join(errs...)
}

// store returns the pooled handle for a datastore path, connecting on
// first use.
func (e *executor) store(ctx context.Context, path string) (db.Operator, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if op, ok := e.stores[path]; ok {
		return op, nil
	}
	op := iostore.New()
	if err := op.Connect(ctx, path); err != nil {
		return nil, err
	}
	e.stores[path] = op
	return op, nil
}

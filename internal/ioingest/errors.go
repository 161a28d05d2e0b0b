package ioingest

import (
	"fmt"

	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
)

// IngestError creates an error for CSV load failures.
func IngestError(csvPath, table string, err error) error {
	msg := `Cannot ingest <em>%s</em> into table <em>%s</em>

<em>Possible causes:</em>
  - The CSV file does not exist or is unreadable
  - The target table already exists
  - The CSV cannot be type-inferred

<em>How to fix:</em>
  1. Check the CSV path
  2. Pick a different table name, or omit it to replace raw_staging`

	return &gn.Error{
		Code: errcode.IngestError,
		Msg:  msg,
		Vars: []any{csvPath, table},
		Err:  fmt.Errorf("cannot ingest %q into %q: %w", csvPath, table, err),
	}
}

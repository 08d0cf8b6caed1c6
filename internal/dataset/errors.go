package dataset

import (
	"fmt"
	"strings"
)

// SchemaError reports every required column missing from the dataset,
// not just the first one found.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset missing required columns: %s", strings.Join(e.Missing, ", "))
}

// SourceUnavailableError reports a dataset file that is missing or unreadable
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("dataset unavailable at %s: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

package ingest

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required columns absent from a source file's
// header. It is fatal: the load aborts rather than letting a misnamed
// column silently produce an empty join downstream.
type MissingColumnsError struct {
	Source  string   // "match" or "weather"
	Missing []string // sorted lowercase column names
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s file is missing required columns: %s",
		e.Source, strings.Join(e.Missing, ", "))
}

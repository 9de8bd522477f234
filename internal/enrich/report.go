package enrich

import (
	"errors"
	"fmt"
	"time"
)

// ErrSameFile is returned when the output path would overwrite the input.
var ErrSameFile = errors.New("output path must differ from the input path")

// WriteError is returned when the enriched csv could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Failure is a voting event whose name could not be resolved.
type Failure struct {
	DokID string
	Err   error
}

// Report summarizes an enrichment run.
type Report struct {
	Input  string
	Output string
	// Rows is the amount of rows written.
	Rows int
	// Total is the amount of distinct voting events.
	Total int
	// Resolved counts names that were fetched during this run.
	Resolved int
	// Cached counts names that were taken from the name cache.
	Cached int
	Failed []Failure
	// Estimated is the expected duration of the fetch loop announced before it started.
	Estimated time.Duration
	Elapsed   time.Duration
}

// Unresolved returns the ids of the events left without a name.
func (r Report) Unresolved() []string {
	ids := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		ids[i] = f.DokID
	}
	return ids
}

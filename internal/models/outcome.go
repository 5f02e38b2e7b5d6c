package models

import (
	"fmt"
	"time"
)

// OutcomeStatus is the terminal state of one resource in a batch.
type OutcomeStatus string

// Outcome statuses.
const (
	StatusPersisted      OutcomeStatus = "persisted"
	StatusSkippedInvalid OutcomeStatus = "skipped-invalid"
	StatusSkippedError   OutcomeStatus = "skipped-error"
)

// Outcome records what happened to one resource.
type Outcome struct {
	Ref      ResourceRef
	Status   OutcomeStatus
	Name     string
	RawPath  string
	CSVPath  string
	Attempts    int
	FailedTries int
	// SupersededBy is the index of the resource that owns Name when another
	// resource of the batch derived the same name. Its outputs were kept.
	SupersededBy int
	// TableSkipped is set when the raw artifact was kept but no normalized table was written.
	TableSkipped bool
	Rows         int
	Cols         int
	Duration     time.Duration
	Err          error
}

// Skipped reports whether the resource produced no outputs.
func (o Outcome) Skipped() bool {
	return o.Status != StatusPersisted
}

// BatchSummary aggregates the outcomes of a batch.
type BatchSummary struct {
	BatchID        string
	Context        string
	Attempted      int
	Persisted      int
	Skipped        int
	SkippedInvalid int
	SkippedError   int
	TablesSkipped  int
	Superseded     int
	Tries          int
	FailedTries    int
	Duration       time.Duration
}

// Add folds one outcome into the summary.
func (s *BatchSummary) Add(o Outcome) {
	s.Attempted++
	s.Tries += o.Attempts
	s.FailedTries += o.FailedTries

	if o.SupersededBy != 0 {
		s.Superseded++
	}

	switch o.Status {
	case StatusPersisted:
		s.Persisted++

		if o.TableSkipped {
			s.TablesSkipped++
		}
	case StatusSkippedInvalid:
		s.Skipped++
		s.SkippedInvalid++
	default:
		s.Skipped++
		s.SkippedError++
	}
}

// String returns a one-line representation of the summary.
func (s BatchSummary) String() string {
	return fmt.Sprintf(
		"attempted: %d | persisted: %d (tables skipped: %d, superseded: %d) | skipped: %d (invalid: %d, error: %d) | tries: %d (failed: %d)",
		s.Attempted,
		s.Persisted,
		s.TablesSkipped,
		s.Superseded,
		s.Skipped,
		s.SkippedInvalid,
		s.SkippedError,
		s.Tries,
		s.FailedTries,
	)
}

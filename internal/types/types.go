// Package types defines the core records flowing through the effort
// report pipeline, plus the typed errors the pipeline can fail with.
package types

import (
	"fmt"
	"time"
)

// Task is one row of the task export. Immutable once ingested.
// Dates are calendar dates stored at midnight UTC.
type Task struct {
	TaskID      string
	UserStoryID *int // nil when the task has no user story link
	Assignee    string
	StartDate   time.Time
	EndDate     time.Time
	ActualTime  float64 // recorded effort in hours, never negative
}

// UserStory is one row of the user story export. The core consumes
// nothing from it beyond join correctness.
type UserStory struct {
	ID int
}

// Epic is one row of the epic export. RelatedStoriesRaw keeps the
// free-text cross-reference field ("#12, #45") exactly as exported;
// the merge layer extracts the story ids from it.
type Epic struct {
	ID                int
	Name              string
	RelatedStoriesRaw string
}

// MergedTask is a task with its epic resolved through the task's user
// story. EpicName is empty when no epic claims the story.
type MergedTask struct {
	Task
	EpicName string
}

// Allocation is one day's share of a task's recorded time. A task
// produces one allocation per working day of its normalized range.
type Allocation struct {
	Date     time.Time
	Assignee string
	EpicName string
	TaskID   string
	Hour     float64
}

// Sentinel group labels. Null assignee/epic references survive the
// left joins and aggregate under these instead of disappearing.
const (
	Unassigned = "(unassigned)"
	NoEpic     = "(no epic)"
)

// CardinalityError reports a duplicated key on the "one" side of a
// many-to-one join. It is fatal: downstream aggregation assumes
// exactly one output row per input task.
type CardinalityError struct {
	Table string // table whose key is duplicated
	Key   string
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("cardinality violation: key %s appears more than once in %s", e.Key, e.Table)
}

// InvalidRecordError reports a record that failed strict parsing.
// Malformed dates and non-numeric effort values fail fast here rather
// than being coerced.
type InvalidRecordError struct {
	Table string
	Ref   string // identifier of the offending record, empty for header problems
	Field string
	Value string
	Err   error
}

func (e *InvalidRecordError) Error() string {
	msg := fmt.Sprintf("invalid record in %s", e.Table)
	if e.Ref != "" {
		msg += fmt.Sprintf(" (ref %s)", e.Ref)
	}
	msg += fmt.Sprintf(": field %q", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }

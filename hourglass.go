// Package hourglass provides a minimal public API for embedding the
// effort report pipeline in other Go programs.
//
// The cmd/hourglass CLI is the primary consumer; this package exports
// only the types and the entry point needed to run the transform
// programmatically against already-loaded tables. CSV ingestion,
// spreadsheet export and chart rendering stay behind the CLI.
package hourglass

import (
	"time"

	"github.com/taigalab/hourglass/internal/aggregate"
	"github.com/taigalab/hourglass/internal/calendar"
	"github.com/taigalab/hourglass/internal/distribute"
	"github.com/taigalab/hourglass/internal/merge"
	"github.com/taigalab/hourglass/internal/types"
)

// Core record types.
type (
	Task       = types.Task
	UserStory  = types.UserStory
	Epic       = types.Epic
	MergedTask = types.MergedTask
	Allocation = types.Allocation
	Calendar   = calendar.Calendar
	Series     = aggregate.Series
	GroupKey   = aggregate.GroupKey
)

// Group keys for aggregation.
const (
	ByAssignee = aggregate.ByAssignee
	ByEpic     = aggregate.ByEpic
)

// Sentinel group labels used for unresolved references.
const (
	Unassigned = types.Unassigned
	NoEpic     = types.NoEpic
)

// NewCalendar builds a working-day calendar from an explicit holiday
// list. Weekends are always non-working.
func NewCalendar(holidays []time.Time) *Calendar {
	return calendar.New(holidays)
}

// Merge joins tasks to user stories and epics, one output row per
// task. It fails with a *types.CardinalityError when a join key that
// must be unique is duplicated.
func Merge(tasks []Task, stories []UserStory, epics []Epic) ([]MergedTask, error) {
	return merge.Merge(tasks, stories, epics)
}

// Run executes the core transform end to end: merge, per-task date
// normalization and daily expansion, then both aggregation passes.
// dropped lists the ids of tasks whose normalized range held no
// working day; their time is absent from the returned series.
func Run(cal *Calendar, tasks []Task, stories []UserStory, epics []Epic) (assignee, epic *Series, dropped []string, err error) {
	rows, err := merge.Merge(tasks, stories, epics)
	if err != nil {
		return nil, nil, nil, err
	}
	allocs, dropped := distribute.ExpandAll(cal, rows)
	assignee, epicSeries := aggregate.Both(allocs)
	return assignee, epicSeries, dropped, nil
}

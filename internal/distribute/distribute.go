// Package distribute spreads each task's recorded time evenly across
// the working days of its normalized date range.
package distribute

import (
	"iter"
	"time"

	"github.com/taigalab/hourglass/internal/calendar"
	"github.com/taigalab/hourglass/internal/debug"
	"github.com/taigalab/hourglass/internal/types"
)

// WorkingDays counts the dates in [start, end] inclusive that are
// neither weekend nor holiday. A range with no working days counts as
// 1 so the per-day division never divides by zero; Expand emits
// nothing for such a range either way.
func WorkingDays(cal *calendar.Calendar, start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if cal.IsWorkingDay(d) {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// Expand yields one allocation per working day of the task's
// normalized range, each carrying an even share of the task's actual
// time. The sequence is lazy and restartable; nothing is materialized
// up front.
//
// A range containing no working day yields an empty sequence: the
// task's time drops out of the daily series entirely. That is a known
// limitation of the even-spread model, surfaced by ExpandAll rather
// than papered over here.
func Expand(cal *calendar.Calendar, task types.MergedTask) iter.Seq[types.Allocation] {
	return func(yield func(types.Allocation) bool) {
		start, end := cal.NormalizeRange(task.StartDate, task.EndDate)
		hour := task.ActualTime / float64(WorkingDays(cal, start, end))

		assignee := task.Assignee
		if assignee == "" {
			assignee = types.Unassigned
		}
		epic := task.EpicName
		if epic == "" {
			epic = types.NoEpic
		}

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !cal.IsWorkingDay(d) {
				continue
			}
			a := types.Allocation{
				Date:     d,
				Assignee: assignee,
				EpicName: epic,
				TaskID:   task.TaskID,
				Hour:     hour,
			}
			if !yield(a) {
				return
			}
		}
	}
}

// ExpandAll flattens every task's daily allocations and reports the
// ids of tasks whose normalized range contained no working day at all.
func ExpandAll(cal *calendar.Calendar, tasks []types.MergedTask) (allocs []types.Allocation, dropped []string) {
	for _, t := range tasks {
		before := len(allocs)
		for a := range Expand(cal, t) {
			allocs = append(allocs, a)
		}
		if len(allocs) == before {
			dropped = append(dropped, t.TaskID)
			debug.Logf("distribute: task %s has no working days in %s..%s, %.1fh absent from daily series\n",
				t.TaskID, t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"), t.ActualTime)
		}
	}
	return allocs, dropped
}

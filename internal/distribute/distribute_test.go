package distribute

import (
	"math"
	"testing"
	"time"

	"github.com/taigalab/hourglass/internal/calendar"
	"github.com/taigalab/hourglass/internal/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func merged(id string, start, end time.Time, hours float64) types.MergedTask {
	return types.MergedTask{
		Task: types.Task{
			TaskID:     id,
			Assignee:   "alice",
			StartDate:  start,
			EndDate:    end,
			ActualTime: hours,
		},
		EpicName: "Billing",
	}
}

func collect(cal *calendar.Calendar, task types.MergedTask) []types.Allocation {
	var out []types.Allocation
	for a := range Expand(cal, task) {
		out = append(out, a)
	}
	return out
}

func TestExpandWeekendTaskCollapsesToMonday(t *testing.T) {
	// Saturday through the following Monday, no holidays: the range
	// normalizes to the single Monday carrying all 8 hours.
	cal := calendar.New(nil)
	task := merged("t1", date(2024, time.June, 8), date(2024, time.June, 10), 8)

	allocs := collect(cal, task)
	if len(allocs) != 1 {
		t.Fatalf("got %d allocations, want 1", len(allocs))
	}
	if !allocs[0].Date.Equal(date(2024, time.June, 10)) {
		t.Errorf("allocation date = %s, want 2024-06-10", allocs[0].Date.Format("2006-01-02"))
	}
	if allocs[0].Hour != 8.0 {
		t.Errorf("hour = %v, want 8.0", allocs[0].Hour)
	}
}

func TestExpandSkipsMidweekHoliday(t *testing.T) {
	// Mon-Fri with Wednesday a holiday: four working days, 2h each.
	cal := calendar.New([]time.Time{date(2024, time.June, 12)})
	task := merged("t1", date(2024, time.June, 10), date(2024, time.June, 14), 8)

	allocs := collect(cal, task)
	if len(allocs) != 4 {
		t.Fatalf("got %d allocations, want 4", len(allocs))
	}
	for _, a := range allocs {
		if a.Hour != 2.0 {
			t.Errorf("hour on %s = %v, want 2.0", a.Date.Format("2006-01-02"), a.Hour)
		}
		if a.Date.Equal(date(2024, time.June, 12)) {
			t.Error("allocation emitted on the holiday")
		}
	}
}

func TestExpandHourSumEqualsActualTime(t *testing.T) {
	cal := calendar.New([]time.Time{date(2024, time.June, 5)})

	tests := []struct {
		name string
		task types.MergedTask
	}{
		{"two week range", merged("t1", date(2024, time.June, 3), date(2024, time.June, 14), 37.5)},
		{"single day", merged("t2", date(2024, time.June, 4), date(2024, time.June, 4), 3)},
		{"range with weekend and holiday", merged("t3", date(2024, time.June, 3), date(2024, time.June, 10), 11)},
		{"zero hours", merged("t4", date(2024, time.June, 3), date(2024, time.June, 7), 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := 0.0
			for _, a := range collect(cal, tt.task) {
				sum += a.Hour
			}
			if math.Abs(sum-tt.task.ActualTime) > 1e-9 {
				t.Errorf("hour sum = %v, want %v", sum, tt.task.ActualTime)
			}
		})
	}
}

func TestExpandEmptyWorkingRangeEmitsNothing(t *testing.T) {
	// A holiday Friday normalizes both boundaries onto the Saturday
	// after it; the whole range sits on a weekend.
	cal := calendar.New([]time.Time{date(2024, time.June, 7)})
	task := merged("t1", date(2024, time.June, 7), date(2024, time.June, 7), 8)

	if allocs := collect(cal, task); len(allocs) != 0 {
		t.Fatalf("got %d allocations, want none", len(allocs))
	}

	_, dropped := ExpandAll(cal, []types.MergedTask{task})
	if len(dropped) != 1 || dropped[0] != "t1" {
		t.Errorf("dropped = %v, want [t1]", dropped)
	}
}

func TestExpandIsRestartable(t *testing.T) {
	cal := calendar.New(nil)
	task := merged("t1", date(2024, time.June, 10), date(2024, time.June, 14), 10)

	seq := Expand(cal, task)
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 5 || second != 5 {
		t.Errorf("iteration counts = %d, %d, want 5, 5", first, second)
	}
}

func TestExpandAppliesSentinelGroups(t *testing.T) {
	cal := calendar.New(nil)
	task := types.MergedTask{
		Task: types.Task{
			TaskID:     "t1",
			StartDate:  date(2024, time.June, 10),
			EndDate:    date(2024, time.June, 10),
			ActualTime: 4,
		},
	}

	allocs := collect(cal, task)
	if len(allocs) != 1 {
		t.Fatalf("got %d allocations, want 1", len(allocs))
	}
	if allocs[0].Assignee != types.Unassigned {
		t.Errorf("assignee = %q, want %q", allocs[0].Assignee, types.Unassigned)
	}
	if allocs[0].EpicName != types.NoEpic {
		t.Errorf("epic = %q, want %q", allocs[0].EpicName, types.NoEpic)
	}
}

func TestWorkingDays(t *testing.T) {
	cal := calendar.New([]time.Time{date(2024, time.June, 12)})

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"full week minus holiday", date(2024, time.June, 10), date(2024, time.June, 14), 4},
		{"weekend only substitutes one", date(2024, time.June, 8), date(2024, time.June, 9), 1},
		{"single working day", date(2024, time.June, 11), date(2024, time.June, 11), 1},
		{"two calendar weeks", date(2024, time.June, 3), date(2024, time.June, 16), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkingDays(cal, tt.start, tt.end); got != tt.want {
				t.Errorf("WorkingDays = %d, want %d", got, tt.want)
			}
		})
	}
}

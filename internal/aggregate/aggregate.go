// Package aggregate folds daily allocations into calendar-complete
// pivot tables: one row per date with no gaps, one column per group,
// zero wherever a (date, group) pair recorded no hours.
package aggregate

import (
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigalab/hourglass/internal/types"
)

// GroupKey selects the pivot dimension.
type GroupKey int

const (
	ByAssignee GroupKey = iota
	ByEpic
)

func (k GroupKey) String() string {
	if k == ByAssignee {
		return "assignee"
	}
	return "epic_name"
}

func (k GroupKey) of(a types.Allocation) string {
	if k == ByAssignee {
		return a.Assignee
	}
	return a.EpicName
}

// Series is a dense, calendar-complete pivot. Dates run contiguously
// from the global minimum to maximum observed allocation date,
// weekends and holidays included as all-zero rows so chart consumers
// can draw a continuous axis.
type Series struct {
	Key     GroupKey
	Dates   []time.Time
	Columns []string    // sorted group values
	Cells   [][]float64 // Cells[i][j] = hours on Dates[i] for Columns[j]
}

// Column returns the values of the named column, or nil when the
// column does not exist.
func (s *Series) Column(name string) []float64 {
	j := sort.SearchStrings(s.Columns, name)
	if j >= len(s.Columns) || s.Columns[j] != name {
		return nil
	}
	out := make([]float64, len(s.Dates))
	for i := range s.Dates {
		out[i] = s.Cells[i][j]
	}
	return out
}

// Tail returns the series restricted to its last n dates. The full
// series comes back when n meets or exceeds the row count; the result
// shares backing arrays with s.
func (s *Series) Tail(n int) *Series {
	if n >= len(s.Dates) {
		return s
	}
	if n <= 0 {
		return &Series{Key: s.Key, Columns: s.Columns}
	}
	start := len(s.Dates) - n
	return &Series{Key: s.Key, Dates: s.Dates[start:], Columns: s.Columns, Cells: s.Cells[start:]}
}

// Aggregate groups allocations by (date, group), sums hours, and
// reindexes the result onto the full date axis. The axis is generated
// explicitly and every cell written, so the zero-fill contract holds
// by construction rather than by implicit null handling. Empty input
// yields an empty series.
func Aggregate(allocs []types.Allocation, key GroupKey) *Series {
	s := &Series{Key: key}
	if len(allocs) == 0 {
		return s
	}

	sums := make(map[time.Time]map[string]float64)
	groups := make(map[string]bool)
	min, max := allocs[0].Date, allocs[0].Date
	for _, a := range allocs {
		if a.Date.Before(min) {
			min = a.Date
		}
		if a.Date.After(max) {
			max = a.Date
		}
		day := sums[a.Date]
		if day == nil {
			day = make(map[string]float64)
			sums[a.Date] = day
		}
		g := key.of(a)
		day[g] += a.Hour
		groups[g] = true
	}

	s.Columns = make([]string, 0, len(groups))
	for g := range groups {
		s.Columns = append(s.Columns, g)
	}
	sort.Strings(s.Columns)

	for d := min; !d.After(max); d = d.AddDate(0, 0, 1) {
		row := make([]float64, len(s.Columns))
		for j, g := range s.Columns {
			row[j] = sums[d][g]
		}
		s.Dates = append(s.Dates, d)
		s.Cells = append(s.Cells, row)
	}
	return s
}

// Both runs the assignee and epic passes concurrently. They read the
// same immutable allocation slice and write disjoint results.
func Both(allocs []types.Allocation) (assignee, epic *Series) {
	var g errgroup.Group
	g.Go(func() error {
		assignee = Aggregate(allocs, ByAssignee)
		return nil
	})
	g.Go(func() error {
		epic = Aggregate(allocs, ByEpic)
		return nil
	})
	_ = g.Wait()
	return assignee, epic
}

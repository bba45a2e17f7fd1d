// Package chart renders the calendar-complete series as HTML line
// charts: one chart per trailing report window, one line per group,
// optionally overlaid with the expected-work-hours reference line.
package chart

import (
	"fmt"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/taigalab/hourglass/internal/aggregate"
	"github.com/taigalab/hourglass/internal/calendar"
)

// Window is one trailing report window, e.g. {"Monthly", 30}. Windows
// are an ordered slice, not a map: chart order must be stable.
type Window struct {
	Label string `mapstructure:"label" yaml:"label"`
	Days  int    `mapstructure:"days" yaml:"days"`
}

// DefaultWindows returns the report's standard trailing windows.
func DefaultWindows() []Window {
	return []Window{
		{Label: "Bi-Weekly", Days: 14},
		{Label: "Monthly", Days: 30},
		{Label: "Quarterly", Days: 90},
	}
}

// ExpectedHours computes the reference line for a run of dates: 8 on
// working days, 0 on weekends and holidays. This lives in the chart
// layer on purpose; the aggregator knows nothing about expected hours.
func ExpectedHours(cal *calendar.Calendar, dates []time.Time) []float64 {
	out := make([]float64, len(dates))
	for i, d := range dates {
		if cal.IsWorkingDay(d) {
			out[i] = 8
		}
	}
	return out
}

// Render writes one self-contained HTML page with a line chart per
// window, each showing the trailing Days dates of the series. When
// showWorkHours is set, a dashed green reference line marks the
// expected hours per day.
func Render(path, title string, s *aggregate.Series, windows []Window, cal *calendar.Calendar, showWorkHours bool) error {
	page := components.NewPage()
	for _, w := range windows {
		page.AddCharts(windowChart(title, s, w, cal, showWorkHours))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

func windowChart(title string, s *aggregate.Series, w Window, cal *calendar.Calendar, showWorkHours bool) *charts.Line {
	tail := s.Tail(w.Days)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s — %s", title, w.Label)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Hour"}),
	)

	axis := make([]string, len(tail.Dates))
	for i, d := range tail.Dates {
		axis[i] = d.Format("02-Jan")
	}
	line.SetXAxis(axis)

	for j, col := range tail.Columns {
		data := make([]opts.LineData, len(tail.Dates))
		for i := range tail.Dates {
			data[i] = opts.LineData{Value: tail.Cells[i][j]}
		}
		line.AddSeries(col, data)
	}

	if showWorkHours {
		expected := ExpectedHours(cal, tail.Dates)
		data := make([]opts.LineData, len(expected))
		for i, v := range expected {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries("8 hour", data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: "green", Type: "dashed"}))
	}
	return line
}

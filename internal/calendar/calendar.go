// Package calendar supplies the working-day calendar: an immutable
// holiday set plus weekend rules, and the start/end date correction
// applied to every task before its time is spread across days.
package calendar

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Calendar is an immutable set of holiday dates. Weekends are
// non-working regardless of the holiday set.
type Calendar struct {
	holidays map[time.Time]struct{}
}

// Day truncates t to midnight UTC, the canonical representation for
// calendar dates throughout the pipeline.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// New builds a calendar from an explicit holiday list.
func New(dates []time.Time) *Calendar {
	c := &Calendar{holidays: make(map[time.Time]struct{}, len(dates))}
	for _, d := range dates {
		c.holidays[Day(d)] = struct{}{}
	}
	return c
}

// FromFile loads a year-keyed YAML holiday file:
//
//	2024:
//	  - 2024-01-01
//	  - 2024-02-12
//
// years selects which year blocks to load; empty loads all of them.
// Each date must actually fall in the year it is listed under.
func FromFile(path string, years ...int) (*Calendar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holiday file: %w", err)
	}
	var byYear map[int][]string
	if err := yaml.Unmarshal(raw, &byYear); err != nil {
		return nil, fmt.Errorf("parsing holiday file %s: %w", path, err)
	}

	want := make(map[int]bool, len(years))
	for _, y := range years {
		want[y] = true
	}
	var dates []time.Time
	for year, entries := range byYear {
		if len(years) > 0 && !want[year] {
			continue
		}
		for _, entry := range entries {
			d, err := time.ParseInLocation("2006-01-02", entry, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("holiday file %s: year %d: bad date %q: %w", path, year, entry, err)
			}
			if d.Year() != year {
				return nil, fmt.Errorf("holiday file %s: date %s listed under year %d", path, entry, year)
			}
			dates = append(dates, d)
		}
	}
	return New(dates), nil
}

// default2024 is the hand-maintained company holiday list for 2024.
var default2024 = []string{
	"2024-01-01",
	"2024-02-12",
	"2024-02-26",
	"2024-04-08",
	"2024-04-15",
	"2024-04-16",
	"2024-05-01",
	"2024-05-06",
	"2024-05-22",
	"2024-06-03",
	"2024-07-22",
	"2024-07-29",
	"2024-08-12",
	"2024-10-14",
	"2024-10-23",
	"2024-12-05",
	"2024-12-10",
	"2024-12-31",
}

// Default returns the built-in calendar, used when no holiday file is
// configured.
func Default() *Calendar {
	dates := make([]time.Time, 0, len(default2024))
	for _, s := range default2024 {
		d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			panic(fmt.Sprintf("built-in holiday list: bad date %q", s))
		}
		dates = append(dates, d)
	}
	return New(dates)
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether d is in the holiday set.
func (c *Calendar) IsHoliday(d time.Time) bool {
	_, ok := c.holidays[Day(d)]
	return ok
}

// IsWorkingDay reports whether d is neither weekend nor holiday.
func (c *Calendar) IsWorkingDay(d time.Time) bool {
	return !IsWeekend(d) && !c.IsHoliday(d)
}

// Holidays returns the holiday dates in ascending order.
func (c *Calendar) Holidays() []time.Time {
	out := make([]time.Time, 0, len(c.holidays))
	for d := range c.holidays {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Normalize corrects a raw task boundary date. A weekend date first
// advances to the following Monday; the result then advances one day
// at a time while it sits on a holiday.
//
// The weekend skip runs exactly once, before the holiday loop, and is
// never re-applied: a holiday whose next free day is a Saturday
// normalizes to that Saturday. Downstream working-day counting was
// derived against this exact order, so it must not be collapsed into a
// "skip to next working day" loop. Flagged for product-owner review.
func (c *Calendar) Normalize(d time.Time) time.Time {
	d = Day(d)
	switch d.Weekday() {
	case time.Saturday:
		d = d.AddDate(0, 0, 2)
	case time.Sunday:
		d = d.AddDate(0, 0, 1)
	}
	for c.IsHoliday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// NormalizeRange normalizes both boundaries independently and clamps
// end to start when normalization inverts the range: a task always
// spans at least one day.
func (c *Calendar) NormalizeRange(start, end time.Time) (time.Time, time.Time) {
	s := c.Normalize(start)
	e := c.Normalize(end)
	if e.Before(s) {
		e = s
	}
	return s, e
}

// Package ingest reads the three Taiga CSV exports into typed records.
//
// The exports carry Taiga's column names (ref, user_story,
// related_user_stories, "start date"); this package maps them onto the
// pipeline's field names and fails fast on anything it cannot parse,
// identifying the offending record. Nothing is coerced silently.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/taigalab/hourglass/internal/debug"
	"github.com/taigalab/hourglass/internal/types"
)

// Standard export file names inside the data directory.
const (
	TasksFile       = "tasks.csv"
	UserStoriesFile = "userstories.csv"
	EpicsFile       = "epics.csv"
)

// dateLayouts are tried in order when parsing task boundary dates.
// Taiga exports plain dates; some tools re-save them with a time part.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// table is a parsed CSV with header-indexed column access.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

func readTable(path, name string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s export: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, &types.InvalidRecordError{Table: name, Field: "header", Err: err}
	}
	t := &table{name: name, cols: make(map[string]int, len(header))}
	for i, col := range header {
		t.cols[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return nil, &types.InvalidRecordError{Table: name, Field: col, Err: fmt.Errorf("missing column")}
		}
	}
	if t.rows, err = r.ReadAll(); err != nil {
		return nil, fmt.Errorf("reading %s export: %w", name, err)
	}
	return t, nil
}

func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadTasks loads the task export. Every row must carry a parseable
// date range; actual time must be a non-negative number (empty = 0).
func ReadTasks(path string) ([]types.Task, error) {
	t, err := readTable(path, "tasks", "ref", "user_story", "assigned_to", "start date", "end date", "actual time")
	if err != nil {
		return nil, err
	}
	tasks := make([]types.Task, 0, len(t.rows))
	for _, row := range t.rows {
		ref := t.get(row, "ref")
		task := types.Task{
			TaskID:   ref,
			Assignee: t.get(row, "assigned_to"),
		}
		if us := t.get(row, "user_story"); us != "" {
			id, err := strconv.Atoi(us)
			if err != nil {
				return nil, &types.InvalidRecordError{Table: "tasks", Ref: ref, Field: "user_story", Value: us, Err: err}
			}
			task.UserStoryID = &id
		}
		if task.StartDate, err = parseDate(t.get(row, "start date")); err != nil {
			return nil, &types.InvalidRecordError{Table: "tasks", Ref: ref, Field: "start date", Value: t.get(row, "start date"), Err: err}
		}
		if task.EndDate, err = parseDate(t.get(row, "end date")); err != nil {
			return nil, &types.InvalidRecordError{Table: "tasks", Ref: ref, Field: "end date", Value: t.get(row, "end date"), Err: err}
		}
		if at := t.get(row, "actual time"); at != "" {
			v, err := strconv.ParseFloat(at, 64)
			if err != nil {
				return nil, &types.InvalidRecordError{Table: "tasks", Ref: ref, Field: "actual time", Value: at, Err: err}
			}
			if v < 0 {
				return nil, &types.InvalidRecordError{Table: "tasks", Ref: ref, Field: "actual time", Value: at, Err: fmt.Errorf("negative hours")}
			}
			task.ActualTime = v
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ReadUserStories loads the user story export. Only the ref column is
// consumed; the story table exists for join correctness.
func ReadUserStories(path string) ([]types.UserStory, error) {
	t, err := readTable(path, "userstories", "ref")
	if err != nil {
		return nil, err
	}
	stories := make([]types.UserStory, 0, len(t.rows))
	for _, row := range t.rows {
		ref := t.get(row, "ref")
		id, err := strconv.Atoi(ref)
		if err != nil {
			return nil, &types.InvalidRecordError{Table: "userstories", Ref: ref, Field: "ref", Value: ref, Err: err}
		}
		stories = append(stories, types.UserStory{ID: id})
	}
	return stories, nil
}

// ReadEpics loads the epic export. The related_user_stories field is
// kept raw; the merge layer extracts the story references from it.
func ReadEpics(path string) ([]types.Epic, error) {
	t, err := readTable(path, "epics", "ref", "subject", "related_user_stories")
	if err != nil {
		return nil, err
	}
	epics := make([]types.Epic, 0, len(t.rows))
	for _, row := range t.rows {
		ref := t.get(row, "ref")
		id, err := strconv.Atoi(ref)
		if err != nil {
			return nil, &types.InvalidRecordError{Table: "epics", Ref: ref, Field: "ref", Value: ref, Err: err}
		}
		epics = append(epics, types.Epic{
			ID:                id,
			Name:              t.get(row, "subject"),
			RelatedStoriesRaw: t.get(row, "related_user_stories"),
		})
	}
	return epics, nil
}

// Tables bundles the three parsed exports.
type Tables struct {
	Tasks   []types.Task
	Stories []types.UserStory
	Epics   []types.Epic
}

// ReadDir loads tasks.csv, userstories.csv and epics.csv from dir.
func ReadDir(dir string) (*Tables, error) {
	tasks, err := ReadTasks(filepath.Join(dir, TasksFile))
	if err != nil {
		return nil, err
	}
	stories, err := ReadUserStories(filepath.Join(dir, UserStoriesFile))
	if err != nil {
		return nil, err
	}
	epics, err := ReadEpics(filepath.Join(dir, EpicsFile))
	if err != nil {
		return nil, err
	}
	debug.Logf("ingest: %d tasks, %d user stories, %d epics from %s\n", len(tasks), len(stories), len(epics), dir)
	return &Tables{Tasks: tasks, Stories: stories, Epics: epics}, nil
}

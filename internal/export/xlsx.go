// Package export writes the pipeline's result tables as xlsx
// workbooks for spreadsheet consumers.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/taigalab/hourglass/internal/aggregate"
	"github.com/taigalab/hourglass/internal/types"
)

const dateFormat = "2006-01-02"

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, v)
}

func writeHeader(f *excelize.File, sheet string, cols []string) error {
	for j, c := range cols {
		if err := setCell(f, sheet, j+1, 1, c); err != nil {
			return err
		}
	}
	return nil
}

func writeMergedSheet(f *excelize.File, sheet string, merged []types.MergedTask) error {
	header := []string{"task_id", "userstory_id", "assignee", "start_date", "end_date", "actual_time", "epic_name"}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}
	for i, m := range merged {
		row := i + 2
		vals := []interface{}{
			m.TaskID,
			nil, // userstory_id, set below when present
			m.Assignee,
			m.StartDate.Format(dateFormat),
			m.EndDate.Format(dateFormat),
			m.ActualTime,
			m.EpicName,
		}
		if m.UserStoryID != nil {
			vals[1] = *m.UserStoryID
		}
		for j, v := range vals {
			if v == nil {
				continue
			}
			if err := setCell(f, sheet, j+1, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeAllocationsSheet(f *excelize.File, sheet string, allocs []types.Allocation) error {
	header := []string{"date", "assignee", "epic_name", "task_id", "hour"}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}
	for i, a := range allocs {
		row := i + 2
		vals := []interface{}{a.Date.Format(dateFormat), a.Assignee, a.EpicName, a.TaskID, a.Hour}
		for j, v := range vals {
			if err := setCell(f, sheet, j+1, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSeriesSheet(f *excelize.File, sheet string, s *aggregate.Series) error {
	if err := writeHeader(f, sheet, append([]string{"date"}, s.Columns...)); err != nil {
		return err
	}
	for i, d := range s.Dates {
		row := i + 2
		if err := setCell(f, sheet, 1, row, d.Format(dateFormat)); err != nil {
			return err
		}
		for j, v := range s.Cells[i] {
			if err := setCell(f, sheet, j+2, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteMergedTable writes the denormalized task table as a standalone
// workbook with a single merge_data sheet, matching the layout the
// original report artifacts use.
func WriteMergedTable(path string, merged []types.MergedTask) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "merge_data"); err != nil {
		return fmt.Errorf("merge_data sheet: %w", err)
	}
	if err := writeMergedSheet(f, "merge_data", merged); err != nil {
		return fmt.Errorf("merge_data sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteReport writes the full report workbook: the merged task table,
// the flat daily allocations, and both calendar-complete pivots.
func WriteReport(path string, merged []types.MergedTask, allocs []types.Allocation, assignee, epic *aggregate.Series) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "merge_data"); err != nil {
		return fmt.Errorf("merge_data sheet: %w", err)
	}
	if err := writeMergedSheet(f, "merge_data", merged); err != nil {
		return fmt.Errorf("merge_data sheet: %w", err)
	}

	sheets := []struct {
		name  string
		write func(string) error
	}{
		{"task_daily", func(n string) error { return writeAllocationsSheet(f, n, allocs) }},
		{"assignee_hour_per_day", func(n string) error { return writeSeriesSheet(f, n, assignee) }},
		{"project_hour_per_day", func(n string) error { return writeSeriesSheet(f, n, epic) }},
	}
	for _, sh := range sheets {
		if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("%s sheet: %w", sh.name, err)
		}
		if err := sh.write(sh.name); err != nil {
			return fmt.Errorf("%s sheet: %w", sh.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

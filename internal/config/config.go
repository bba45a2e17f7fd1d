// Package config loads run configuration: input and output locations,
// the holiday calendar source, and the report windows. Defaults match
// the standard layout (data/ in, result/ out); a hourglass.yaml in the
// working directory or an explicit --config file overrides them.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/taigalab/hourglass/internal/chart"
)

// Config is the resolved run configuration.
type Config struct {
	DataDir      string
	OutDir       string
	HolidaysFile string // empty = built-in calendar
	HolidayYears []int  // empty = all years in the file
	Windows      []chart.Window
	Charts       bool
}

// Load reads configuration. file names an explicit config file; when
// empty, ./hourglass.yaml is used if present and defaults otherwise.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", "data")
	v.SetDefault("out_dir", "result")
	v.SetDefault("charts", true)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName("hourglass")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := &Config{
		DataDir:      v.GetString("data_dir"),
		OutDir:       v.GetString("out_dir"),
		HolidaysFile: v.GetString("holidays_file"),
		HolidayYears: v.GetIntSlice("holiday_years"),
		Charts:       v.GetBool("charts"),
	}

	var windows []chart.Window
	if err := v.UnmarshalKey("windows", &windows); err != nil {
		return nil, fmt.Errorf("parsing windows: %w", err)
	}
	for _, w := range windows {
		if w.Label == "" || w.Days <= 0 {
			return nil, fmt.Errorf("window %+v: label and a positive day count are required", w)
		}
	}
	if len(windows) == 0 {
		windows = chart.DefaultWindows()
	}
	cfg.Windows = windows

	return cfg, nil
}

// Input paths.
func (c *Config) TasksPath() string       { return filepath.Join(c.DataDir, "tasks.csv") }
func (c *Config) UserStoriesPath() string { return filepath.Join(c.DataDir, "userstories.csv") }
func (c *Config) EpicsPath() string       { return filepath.Join(c.DataDir, "epics.csv") }

// Output paths. Names mirror the original report artifacts so
// downstream spreadsheet consumers keep working.
func (c *Config) MergedPath() string { return filepath.Join(c.OutDir, "merge_data.xlsx") }
func (c *Config) ReportPath() string { return filepath.Join(c.OutDir, "report.xlsx") }
func (c *Config) AssigneeChartPath() string {
	return filepath.Join(c.OutDir, "assignee_hour_per_day_report_graph.html")
}
func (c *Config) ProjectChartPath() string {
	return filepath.Join(c.OutDir, "project_hour_per_day_report_graph.html")
}

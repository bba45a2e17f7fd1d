package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigalab/hourglass/internal/aggregate"
	"github.com/taigalab/hourglass/internal/calendar"
	"github.com/taigalab/hourglass/internal/chart"
	"github.com/taigalab/hourglass/internal/config"
	"github.com/taigalab/hourglass/internal/debug"
	"github.com/taigalab/hourglass/internal/distribute"
	"github.com/taigalab/hourglass/internal/export"
	"github.com/taigalab/hourglass/internal/ingest"
	"github.com/taigalab/hourglass/internal/merge"
	"github.com/taigalab/hourglass/internal/ui"
)

type reportResult struct {
	Tasks        int      `json:"tasks"`
	Allocations  int      `json:"allocations"`
	DroppedTasks []string `json:"dropped_tasks,omitempty"`
	From         string   `json:"from,omitempty"`
	To           string   `json:"to,omitempty"`
	Outputs      []string `json:"outputs"`
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full effort report pipeline",
	Long: `Read the CSV exports, join tasks to user stories and epics, spread
each task's actual time across its working days, aggregate per
assignee and per project, and write the xlsx tables and HTML charts.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			FatalError("%v", err)
		}
		if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
			cfg.DataDir = v
		}
		if v, _ := cmd.Flags().GetString("out-dir"); v != "" {
			cfg.OutDir = v
		}
		if noCharts, _ := cmd.Flags().GetBool("no-charts"); noCharts {
			cfg.Charts = false
		}

		cal := calendar.Default()
		if cfg.HolidaysFile != "" {
			if cal, err = calendar.FromFile(cfg.HolidaysFile, cfg.HolidayYears...); err != nil {
				FatalError("%v", err)
			}
		}

		tables, err := ingest.ReadDir(cfg.DataDir)
		if err != nil {
			FatalError("%v", err)
		}
		merged, err := merge.Merge(tables.Tasks, tables.Stories, tables.Epics)
		if err != nil {
			FatalError("%v", err)
		}

		allocs, dropped := distribute.ExpandAll(cal, merged)
		for _, id := range dropped {
			fmt.Fprintf(os.Stderr, "%s task %s has no working days in its range; its time is absent from the daily series\n",
				ui.WarnStyle.Render(ui.IconWarn), id)
		}

		assignee, project := aggregate.Both(allocs)

		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			FatalError("creating output directory: %v", err)
		}
		if err := export.WriteMergedTable(cfg.MergedPath(), merged); err != nil {
			FatalError("%v", err)
		}
		if err := export.WriteReport(cfg.ReportPath(), merged, allocs, assignee, project); err != nil {
			FatalError("%v", err)
		}
		outputs := []string{cfg.MergedPath(), cfg.ReportPath()}

		if cfg.Charts {
			if err := chart.Render(cfg.AssigneeChartPath(), "Assignee Hour Per Day Report", assignee, cfg.Windows, cal, true); err != nil {
				FatalError("%v", err)
			}
			if err := chart.Render(cfg.ProjectChartPath(), "Project Hour Per Day Report", project, cfg.Windows, cal, false); err != nil {
				FatalError("%v", err)
			}
			outputs = append(outputs, cfg.AssigneeChartPath(), cfg.ProjectChartPath())
		}

		res := reportResult{
			Tasks:        len(merged),
			Allocations:  len(allocs),
			DroppedTasks: dropped,
			Outputs:      outputs,
		}
		if len(assignee.Dates) > 0 {
			res.From = assignee.Dates[0].Format("2006-01-02")
			res.To = assignee.Dates[len(assignee.Dates)-1].Format("2006-01-02")
		}

		if jsonOutput {
			printJSON(res)
			return
		}
		debug.PrintlnNormal(ui.HeaderStyle.Render("Effort report complete"))
		debug.PrintNormal("  Tasks:       %d\n", res.Tasks)
		debug.PrintNormal("  Allocations: %d\n", res.Allocations)
		if res.From != "" {
			debug.PrintNormal("  Date span:   %s .. %s\n", res.From, res.To)
		}
		if len(dropped) > 0 {
			debug.PrintNormal("  Dropped:     %d task(s) with no working days\n", len(dropped))
		}
		for _, out := range outputs {
			debug.PrintNormal("  %s %s\n", ui.PassStyle.Render(ui.IconPass), out)
		}
	},
}

func init() {
	reportCmd.Flags().String("data-dir", "", "Directory containing tasks.csv, userstories.csv, epics.csv")
	reportCmd.Flags().String("out-dir", "", "Directory for xlsx and chart outputs")
	reportCmd.Flags().Bool("no-charts", false, "Skip HTML chart rendering")
	rootCmd.AddCommand(reportCmd)
}

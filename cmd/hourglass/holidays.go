package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taigalab/hourglass/internal/calendar"
	"github.com/taigalab/hourglass/internal/config"
	"github.com/taigalab/hourglass/internal/ui"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Show the active holiday calendar",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			FatalError("%v", err)
		}
		cal := calendar.Default()
		source := "built-in"
		if cfg.HolidaysFile != "" {
			if cal, err = calendar.FromFile(cfg.HolidaysFile, cfg.HolidayYears...); err != nil {
				FatalError("%v", err)
			}
			source = cfg.HolidaysFile
		}

		dates := cal.Holidays()
		if jsonOutput {
			out := make([]string, len(dates))
			for i, d := range dates {
				out[i] = d.Format("2006-01-02")
			}
			printJSON(map[string]interface{}{"source": source, "holidays": out})
			return
		}

		fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Holidays (%s)", source)))
		for _, d := range dates {
			fmt.Printf("  %s  %s\n", d.Format("2006-01-02"), ui.MutedStyle.Render(d.Weekday().String()))
		}
	},
}

func init() {
	rootCmd.AddCommand(holidaysCmd)
}

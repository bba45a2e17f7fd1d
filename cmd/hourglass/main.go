package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigalab/hourglass/internal/debug"
)

var (
	configFile  string
	verboseFlag bool
	quietFlag   bool
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "hourglass",
	Short: "Daily effort reports from project-management exports",
	Long: `hourglass turns Taiga CSV exports (tasks, user stories, epics) into
daily effort time series per assignee and per project: each task's
recorded time is spread evenly across the working days of its date
range, aggregated onto a gap-free calendar, then written out as
spreadsheet tables and HTML charts.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./hourglass.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "JSON output where supported")
}

// FatalError prints an error to stderr and exits non-zero.
func FatalError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		FatalError("encoding JSON: %v", err)
	}
	fmt.Println(string(data))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

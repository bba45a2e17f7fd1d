package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hourglass version",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			printJSON(map[string]string{"version": Version})
			return
		}
		fmt.Printf("hourglass %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

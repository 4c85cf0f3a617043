package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tdom %s (commit %s, built %s, %s)\n",
			version, commit, date, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

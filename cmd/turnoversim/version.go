package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overwritten with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of turnoversim.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "turnoversim %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

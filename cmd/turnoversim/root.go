package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turnoversim",
	Short: "turnoversim runs receptor turnover scenarios.",
	Long: `turnoversim runs receptor turnover scenarios on a population of ` +
		`cells in a ligand field. It can record expression trajectories, ` +
		`serve a live monitor and print the model parameter schema.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

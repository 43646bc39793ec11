package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chemosim/turnover/turnover"
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Print the parameter schema of the turnover model.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		if asJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")

			return encoder.Encode(turnover.ParamSchema())
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tMIN\tMAX\tDEFAULT\tDESCRIPTION")

		for _, p := range turnover.ParamSchema() {
			if p.Kind == turnover.KindInstance {
				fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t%s\n", p.Name, p.Kind, p.Desc)
				continue
			}

			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%s\n",
				p.Name, p.Kind, p.Min, p.Max, p.Default, p.Desc)
		}

		return w.Flush()
	},
}

func init() {
	paramsCmd.Flags().Bool("json", false, "print the schema as JSON")
	rootCmd.AddCommand(paramsCmd)
}

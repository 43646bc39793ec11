package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/chemosim/turnover/datarecording"
	"github.com/chemosim/turnover/tracing"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a recorded run.",
	Long: "`report --db trace` prints the run information stored in " +
		"trace.sqlite3. With --cell it also prints the trajectory of a cell.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true

		f := cmd.Flags()
		path, _ := f.GetString("db")
		limit, _ := f.GetInt("limit")

		reader, err := datarecording.NewReader(path)
		if err != nil {
			return err
		}
		defer reader.Close()

		reader.MapTable(datarecording.RunInfoTable,
			datarecording.RunInfoEntry{})
		tracing.MapTables(reader)

		out := cmd.OutOrStdout()
		if err := printRunInfo(cmd.Context(), out, reader); err != nil {
			return err
		}

		if !f.Changed("cell") {
			return nil
		}

		id, _ := f.GetUint64("cell")

		return printTrajectory(cmd.Context(), out, reader, id, limit)
	},
}

func init() {
	reportCmd.Flags().String("db", "", "recording file without the .sqlite3 extension")
	reportCmd.Flags().Uint64("cell", 0, "cell whose trajectory is printed")
	reportCmd.Flags().Int("limit", 0, "maximum number of trajectory rows, 0 for all")
	_ = reportCmd.MarkFlagRequired("db")

	rootCmd.AddCommand(reportCmd)
}

func printRunInfo(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
) error {
	rows, _, err := reader.Query(ctx, datarecording.RunInfoTable,
		datarecording.QueryParams{})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		entry := r.(*datarecording.RunInfoEntry)
		fmt.Fprintf(tw, "%s\t%s\n", entry.Property, entry.Value)
	}

	return tw.Flush()
}

func printTrajectory(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
	id uint64,
	limit int,
) error {
	rows, total, err := reader.Query(ctx, tracing.ExpressionTable,
		datarecording.QueryParams{
			Where:   "Cell = ?",
			Args:    []any{id},
			OrderBy: "Time",
			Limit:   limit,
		})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\ncell %d: %d of %d updates\n", id, len(rows), total)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "TIME\tBOUND\tBEFORE\tAFTER\t")

	for _, r := range rows {
		e := r.(*tracing.ExpressionEntry)
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.4f\t%.4f\t\n",
			e.Time, e.Bound, e.Before, e.After)
	}

	return tw.Flush()
}

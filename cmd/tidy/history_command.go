package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"tidy/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				runs, err := store.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						run.Mode,
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						strconv.Itoa(run.Processed),
						strconv.Itoa(run.Moved),
						strconv.Itoa(run.Renamed),
						strconv.Itoa(run.Skipped),
						strconv.Itoa(run.Errors),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Run", "Mode", "Started", "Files", "Moved", "Renamed", "Skipped", "Errors"},
					rows, 4, 5, 6, 7, 8))
				return nil
			})
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show every action of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				actions, err := store.RunActions(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, struct {
						Run     *history.Run     `json:"run"`
						Actions []history.Action `json:"actions"`
					}{run, actions})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s (%s), started %s", run.ID, run.Mode,
					run.StartedAt.Local().Format("2006-01-02 15:04:05"))
				if run.Finished() {
					fmt.Fprintf(out, ", took %s", run.Duration().Round(time.Millisecond))
				}
				fmt.Fprintln(out)

				rows := make([][]string, 0, len(actions))
				for _, a := range actions {
					target := a.Category
					if a.Subcategory != "" {
						target += "/" + a.Subcategory
					}
					rows = append(rows, []string{
						a.SourcePath,
						a.Status,
						target,
						fmt.Sprintf("%.2f", a.Confidence),
						a.FinalPath,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Status", "Category", "Confidence", "Destination"}, rows, 4))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			})
		},
	}
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"amutils/internal/history"
)

const historyTimeLayout = "2006-01-02 15:04"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No import runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one import run and the rows that failed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows, err := store.Rows(cmd.Context(), run.ID, !all)
			if err != nil {
				return err
			}
			printRun(cmd.OutOrStdout(), run, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include rows that were updated or skipped")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must be zero or more, got %d", keep)
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", removed)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 50, "Number of recent runs to keep")
	return cmd
}

func renderRunTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			formatRunTime(run.StartedAt),
			run.Source,
			string(run.Format),
			fmt.Sprint(run.Summary.Rows),
			fmt.Sprint(run.Summary.Updated()),
			fmt.Sprint(run.Summary.Failed),
			yesNo(run.DryRun),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Source", "Format", "Rows", "Updated", "Failed", "Dry run"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	)
}

func printRun(out io.Writer, run history.Run, rows []history.Row) {
	s := run.Summary
	newConsole(out).summarize("",
		fact{"Run", run.ID},
		fact{"Source", run.Source},
		fact{"Format", string(run.Format)},
		fact{"Encoding", run.Encoding},
		fact{"Started", formatRunTime(run.StartedAt)},
		fact{"Elapsed", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()},
		fact{"Dry run", yesNo(run.DryRun)},
		count("Rows", s.Rows),
		count("Updated", s.Updated()),
		count("Failed", s.Failed),
		count("Skipped", s.Skipped),
	)
	if len(rows) == 0 {
		return
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		detail := r.Error
		if r.Hint != "" {
			detail = fmt.Sprintf("%s (closest: %q)", detail, r.Hint)
		}
		table = append(table, []string{
			fmt.Sprint(r.Line),
			string(r.Status),
			string(r.Via),
			r.TrackID,
			r.Query,
			detail,
		})
	}
	fmt.Fprintln(out, renderTitledTable("Rows",
		[]string{"Line", "Status", "Via", "Track", "Query", "Detail"},
		table,
		[]columnAlignment{alignRight},
	))
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(historyTimeLayout)
}

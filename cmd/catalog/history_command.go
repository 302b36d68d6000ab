package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent catalog runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := ctx.openHistory(cmd.Context())
			if err != nil {
				return err
			}
			if store == nil {
				fmt.Fprintln(out, "Run history is disabled (history.path is empty)")
				return nil
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.FinishedAt.Local().Format("2006-01-02 15:04:05"),
					run.Kind,
					strconv.Itoa(run.Records),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Updated),
					filepath.Base(run.Output),
					shortHash(run.SHA256),
					run.Duration().Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Finished", "Kind", "Records", "Skipped", "Updated", "Output", "SHA-256", "Took"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")
	return cmd
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

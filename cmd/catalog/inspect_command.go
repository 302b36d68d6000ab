package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"contentcatalog/internal/pipeline"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var examples int

	cmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Show the columns of a spreadsheet source",
		Long:  "Show the columns of a spreadsheet source. Without a path, the configured secondary source is inspected.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			return ctx.withRunner(cmd, false, func(runner *pipeline.Runner) error {
				inspection, err := runner.Inspect(cmd.Context(), path, examples)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Source: %s\n", inspection.Source)
				fmt.Fprintf(out, "Rows: %d\n", inspection.Rows)
				if len(inspection.Columns) == 0 {
					fmt.Fprintln(out, "No columns found")
					return nil
				}

				rows := make([][]string, 0, len(inspection.Columns))
				for _, col := range inspection.Columns {
					rows = append(rows, []string{
						col.Name,
						strings.Join(col.Kinds, ", "),
						strconv.Itoa(col.Empty),
						strings.Join(col.Examples, " | "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Column", "Types", "Empty", "Examples"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))

				colorize := shouldColorize(out)
				if len(inspection.Missing) > 0 {
					fmt.Fprintln(out, renderStatusLine("Merge columns", statusWarn, "missing "+strings.Join(inspection.Missing, ", "), colorize))
				} else {
					fmt.Fprintln(out, renderStatusLine("Merge columns", statusOK, "all present", colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&examples, "examples", "n", 3, "Example values to show per column")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"contentcatalog/internal/pipeline"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var secondary string
	var output string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Join program duration and track count into the emitted catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := overridePath(cmd, "secondary", secondary, &cfg.Paths.SecondarySource); err != nil {
				return err
			}
			if err := overridePath(cmd, "output", output, &cfg.Paths.Output); err != nil {
				return err
			}

			return ctx.withRunner(cmd, true, func(runner *pipeline.Runner) error {
				summary, runErr := runner.Merge(cmd.Context())
				out := cmd.OutOrStdout()
				printRunSummary(out, "Catalog merge", summary, runErr, shouldColorize(out))
				return runErr
			})
		},
	}

	cmd.Flags().StringVar(&secondary, "secondary", "", "Program metadata workbook or CSV")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Catalog module to re-enrich")
	return cmd
}

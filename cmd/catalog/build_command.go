package main

import (
	"github.com/spf13/cobra"

	"contentcatalog/internal/pipeline"
)

type buildFlags struct {
	source     string
	secondary  string
	output     string
	samplesDir string
	noMerge    bool
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the catalog module from the content export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, ctx, flags)
		},
	}

	cmd.Flags().StringVar(&flags.source, "source", "", "Primary content export (CSV)")
	cmd.Flags().StringVar(&flags.secondary, "secondary", "", "Program metadata workbook or CSV")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Generated catalog module path")
	cmd.Flags().StringVar(&flags.samplesDir, "samples-dir", "", "Directory of <Language>.<langId>.mp3 samples")
	cmd.Flags().BoolVar(&flags.noMerge, "no-merge", false, "Skip the program metadata join")
	return cmd
}

func runBuild(cmd *cobra.Command, ctx *commandContext, flags buildFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := overridePath(cmd, "source", flags.source, &cfg.Paths.PrimarySource); err != nil {
		return err
	}
	if err := overridePath(cmd, "secondary", flags.secondary, &cfg.Paths.SecondarySource); err != nil {
		return err
	}
	if err := overridePath(cmd, "output", flags.output, &cfg.Paths.Output); err != nil {
		return err
	}
	if err := overridePath(cmd, "samples-dir", flags.samplesDir, &cfg.Samples.Dir); err != nil {
		return err
	}
	if flags.noMerge {
		cfg.Merge.Enabled = false
	}

	return ctx.withRunner(cmd, true, func(runner *pipeline.Runner) error {
		summary, runErr := runner.Build(cmd.Context())
		out := cmd.OutOrStdout()
		printRunSummary(out, "Catalog build", summary, runErr, shouldColorize(out))
		return runErr
	})
}

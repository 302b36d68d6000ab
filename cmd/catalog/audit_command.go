package main

import (
	"strings"

	"github.com/spf13/cobra"

	"contentcatalog/internal/audit"
	"contentcatalog/internal/pipeline"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var iso3 string
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit [language]",
		Short: "Compare the emitted catalog with the content export",
		Long: "Compare the emitted catalog with the content export for one language.\n" +
			"The language matches any part of the English language name; --iso3 accepts ISO 639-1 or 639-3 codes.\n" +
			"With neither, every record is compared.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := audit.Selector{ISO3: strings.TrimSpace(iso3)}
			if len(args) == 1 {
				sel.Language = strings.TrimSpace(args[0])
			}

			return ctx.withRunner(cmd, false, func(runner *pipeline.Runner) error {
				report, err := runner.Audit(cmd.Context(), sel)
				if err != nil {
					return err
				}
				if err := audit.Render(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				if strict && !report.Consistent() {
					return errAuditMismatch
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&iso3, "iso3", "", "Language code to match (th or tha)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with failure when source and catalog differ")
	return cmd
}

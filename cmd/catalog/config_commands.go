package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"contentcatalog/internal/config"
	"contentcatalog/internal/fieldmap"
	"contentcatalog/internal/preflight"
)

var errPreflightFailed = errors.New("preflight checks failed")

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool
	var withMapping bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)

			if withMapping {
				mappingPath := filepath.Join(filepath.Dir(target), "mapping.yaml")
				data, err := fieldmap.Default().Marshal()
				if err != nil {
					return fmt.Errorf("encode default mapping: %w", err)
				}
				if err := os.WriteFile(mappingPath, data, 0o644); err != nil {
					return fmt.Errorf("write mapping file: %w", err)
				}
				fmt.Fprintf(out, "Wrote default field mapping to %s\n", mappingPath)
				fmt.Fprintln(out, "Set [mapping] file to use it.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	cmd.Flags().BoolVar(&withMapping, "with-mapping", false, "Also write the built-in field mapping as mapping.yaml")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if _, err := fieldmap.LoadFile(cfg.Mapping.File); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, err := os.Stat(ctx.configPath); os.IsNotExist(err) {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Primary source: %s\n", cfg.Paths.PrimarySource)
			fmt.Fprintf(out, "Program metadata: %s (merge enabled: %s)\n", cfg.Paths.SecondarySource, yesNo(cfg.MergeEnabled()))
			fmt.Fprintf(out, "Output: %s\n", cfg.Paths.Output)
			fmt.Fprintf(out, "Audio samples: %s\n", yesNo(cfg.SamplesEnabled()))

			results := preflight.RunAll(cfg)
			colorize := shouldColorize(out)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Preflight:")
			for _, result := range results {
				fmt.Fprintln(out, renderStatusLine(result.Name, preflightStatus(result), result.Detail, colorize))
			}
			if preflight.Failed(results) {
				return errPreflightFailed
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func preflightStatus(result preflight.Result) statusKind {
	switch {
	case result.Passed:
		return statusOK
	case result.Optional:
		return statusWarn
	default:
		return statusError
	}
}

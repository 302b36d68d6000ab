package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"contentcatalog/internal/config"
	"contentcatalog/internal/history"
	"contentcatalog/internal/logging"
	"contentcatalog/internal/pipeline"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Logging.Level = "debug"
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

// openHistory returns nil when history is disabled.
func (c *commandContext) openHistory(ctx context.Context) (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.History.Path == "" {
		return nil, nil
	}
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	return store, nil
}

// withRunner builds a pipeline runner with logs on stderr. Runs that emit a
// catalog pass recordRuns to attach run history; a history store that cannot
// be opened is logged and the run goes ahead without it.
func (c *commandContext) withRunner(cmd *cobra.Command, recordRuns bool, fn func(*pipeline.Runner) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if recordRuns {
		store, err := c.openHistory(cmd.Context())
		switch {
		case err != nil:
			logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check history.path or clear it to disable history"),
				logging.String(logging.FieldImpact, "run will not be recorded"),
			)
		case store != nil:
			defer store.Close()
			opts = append(opts, pipeline.WithHistory(store))
		}
	}

	runner, err := pipeline.New(cfg, logger, opts...)
	if err != nil {
		return err
	}
	return fn(runner)
}

// overridePath replaces *target with the expanded flag value when the flag was set.
func overridePath(cmd *cobra.Command, flag string, value string, target *string) error {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	expanded, err := config.ExpandPath(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("--%s: %w", flag, err)
	}
	*target = expanded
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

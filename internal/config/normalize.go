package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSource()
	c.normalizeMerge()
	if err := c.normalizeSamples(); err != nil {
		return err
	}
	c.normalizeEmit()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.PrimarySource) == "" {
		c.Paths.PrimarySource = defaultPrimarySource
	}
	if c.Paths.PrimarySource, err = expandPath(strings.TrimSpace(c.Paths.PrimarySource)); err != nil {
		return fmt.Errorf("paths.primary_source: %w", err)
	}
	if c.Paths.SecondarySource, err = expandPath(strings.TrimSpace(c.Paths.SecondarySource)); err != nil {
		return fmt.Errorf("paths.secondary_source: %w", err)
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		c.Paths.Output = defaultOutput
	}
	if c.Paths.Output, err = expandPath(strings.TrimSpace(c.Paths.Output)); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	if c.Mapping.File, err = expandPath(strings.TrimSpace(c.Mapping.File)); err != nil {
		return fmt.Errorf("mapping.file: %w", err)
	}
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() {
	c.Source.Encoding = strings.ToLower(strings.TrimSpace(c.Source.Encoding))
	if c.Source.Encoding == "" {
		c.Source.Encoding = defaultEncoding
	}
	if c.Source.Delimiter == "" {
		c.Source.Delimiter = defaultDelimiter
	}
}

// Column names are matched after trimming, so the configured names are trimmed too.
func (c *Config) normalizeMerge() {
	c.Merge.Sheet = strings.TrimSpace(c.Merge.Sheet)
	c.Merge.KeyColumn = strings.TrimSpace(c.Merge.KeyColumn)
	c.Merge.DurationColumn = strings.TrimSpace(c.Merge.DurationColumn)
	c.Merge.TrackCountColumn = strings.TrimSpace(c.Merge.TrackCountColumn)
}

func (c *Config) normalizeSamples() error {
	var err error
	if c.Samples.Dir, err = expandPath(strings.TrimSpace(c.Samples.Dir)); err != nil {
		return fmt.Errorf("samples.dir: %w", err)
	}
	c.Samples.URLPrefix = strings.TrimRight(strings.TrimSpace(c.Samples.URLPrefix), "/")
	return nil
}

func (c *Config) normalizeEmit() {
	c.Emit.Binding = strings.TrimSpace(c.Emit.Binding)
	if c.Emit.Binding == "" {
		c.Emit.Binding = defaultBinding
	}
	if c.Emit.Indent == 0 {
		c.Emit.Indent = defaultIndent
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

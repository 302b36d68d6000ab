package config

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

var bindingPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	if err := c.validateEmit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSource() error {
	if _, err := htmlindex.Get(c.Source.Encoding); err != nil {
		return fmt.Errorf("source.encoding: unsupported charset %q", c.Source.Encoding)
	}
	if utf8.RuneCountInString(c.Source.Delimiter) != 1 {
		return errors.New("source.delimiter must be a single character")
	}
	switch c.Source.Delimiter {
	case "\"", "\r", "\n":
		return fmt.Errorf("source.delimiter %q is not allowed", c.Source.Delimiter)
	}
	return nil
}

func (c *Config) validateMerge() error {
	if !c.Merge.Enabled {
		return nil
	}
	columns := []struct{ key, value string }{
		{"merge.key_column", c.Merge.KeyColumn},
		{"merge.duration_column", c.Merge.DurationColumn},
		{"merge.track_count_column", c.Merge.TrackCountColumn},
	}
	for _, col := range columns {
		if col.value == "" {
			return fmt.Errorf("%s must be set when merge.enabled is true", col.key)
		}
	}
	if c.Merge.KeyColumn == c.Merge.DurationColumn || c.Merge.KeyColumn == c.Merge.TrackCountColumn ||
		c.Merge.DurationColumn == c.Merge.TrackCountColumn {
		return errors.New("merge columns must be distinct")
	}
	return nil
}

func (c *Config) validateEmit() error {
	if !bindingPattern.MatchString(c.Emit.Binding) {
		return fmt.Errorf("emit.binding %q is not a valid identifier", c.Emit.Binding)
	}
	if c.Emit.Indent < 0 || c.Emit.Indent > 8 {
		return errors.New("emit.indent must be between 0 and 8")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

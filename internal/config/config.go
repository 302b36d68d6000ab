package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the source and destination files of a pipeline run.
type Paths struct {
	PrimarySource   string `toml:"primary_source"`
	SecondarySource string `toml:"secondary_source"`
	Output          string `toml:"output"`
}

// Source describes how the primary tabular export is decoded.
type Source struct {
	// Encoding is a WHATWG label such as "utf-8" or "windows-874".
	Encoding  string `toml:"encoding"`
	Delimiter string `toml:"delimiter"`
}

// Mapping points at an optional YAML field mapping that replaces the built-in table.
type Mapping struct {
	File string `toml:"file"`
}

// Merge contains the program metadata join settings.
type Merge struct {
	Enabled          bool   `toml:"enabled"`
	Sheet            string `toml:"sheet"`
	KeyColumn        string `toml:"key_column"`
	DurationColumn   string `toml:"duration_column"`
	TrackCountColumn string `toml:"track_count_column"`
}

// Samples configures audio sample attachment. An empty Dir disables it.
type Samples struct {
	Dir       string `toml:"dir"`
	URLPrefix string `toml:"url_prefix"`
}

// Emit controls the generated catalog module.
type Emit struct {
	Binding string `toml:"binding"`
	Indent  int    `toml:"indent"`
}

// History configures the run history database. An empty Path disables it.
type History struct {
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the catalog tools.
//
// Configuration sections by subsystem:
//   - Paths: primary export, program metadata workbook, generated module
//   - Source: charset and delimiter of the primary export
//   - Mapping: optional field mapping override
//   - Merge: join columns and worksheet for program metadata
//   - Samples: audio sample directory and public URL prefix
//   - Emit: exported binding name and indentation
//   - History: run history database
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Source  Source  `toml:"source"`
	Mapping Mapping `toml:"mapping"`
	Merge   Merge   `toml:"merge"`
	Samples Samples `toml:"samples"`
	Emit    Emit    `toml:"emit"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of catalog.toml in the working directory.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigName)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigName
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// EnsureDirectories creates the parent directories of generated files.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.Output)}
	if c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MergeEnabled reports whether builds should join program metadata.
func (c *Config) MergeEnabled() bool {
	return c.Merge.Enabled && strings.TrimSpace(c.Paths.SecondarySource) != ""
}

// SamplesEnabled reports whether builds should attach audio samples.
func (c *Config) SamplesEnabled() bool {
	return strings.TrimSpace(c.Samples.Dir) != ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

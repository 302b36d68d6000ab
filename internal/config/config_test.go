package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcatalog/internal/config"
)

func TestLoadDefaultsResolveAgainstWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(dir, "catalog.toml"), resolved)

	assert.Equal(t, filepath.Join(dir, "your_content_data.csv"), cfg.Paths.PrimarySource)
	assert.Equal(t, filepath.Join(dir, "Message tracks and length.XLSX"), cfg.Paths.SecondarySource)
	assert.Equal(t, filepath.Join(dir, "src", "data", "staticContent.js"), cfg.Paths.Output)
	assert.Equal(t, "staticContent", cfg.Emit.Binding)
	assert.Equal(t, 4, cfg.Emit.Indent)
	assert.Equal(t, "Program Set Number", cfg.Merge.KeyColumn)
	assert.True(t, cfg.MergeEnabled())
	assert.False(t, cfg.SamplesEnabled())
	assert.Empty(t, cfg.Mapping.File)

	require.NoError(t, cfg.EnsureDirectories())
	info, err := os.Stat(filepath.Join(dir, "src", "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.toml")

	type payload struct {
		Paths struct {
			PrimarySource string `toml:"primary_source"`
			Output        string `toml:"output"`
		} `toml:"paths"`
		Merge struct {
			Enabled   bool   `toml:"enabled"`
			KeyColumn string `toml:"key_column"`
		} `toml:"merge"`
		Source struct {
			Encoding string `toml:"encoding"`
		} `toml:"source"`
	}
	custom := payload{}
	custom.Paths.PrimarySource = filepath.Join(dir, "export.csv")
	custom.Paths.Output = filepath.Join(dir, "out", "catalog.js")
	custom.Merge.Enabled = true
	custom.Merge.KeyColumn = "  Program  "
	custom.Source.Encoding = "Windows-874"

	data, err := toml.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, data, 0o644))

	cfg, resolved, exists, err := config.Load(configPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, configPath, resolved)
	assert.Equal(t, custom.Paths.PrimarySource, cfg.Paths.PrimarySource)
	assert.Equal(t, custom.Paths.Output, cfg.Paths.Output)
	assert.Equal(t, "Program", cfg.Merge.KeyColumn)
	assert.Equal(t, "windows-874", cfg.Source.Encoding)
	assert.Equal(t, "Message Length", cfg.Merge.DurationColumn)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"charset", "[source]\nencoding = \"klingon\"\n", "source.encoding"},
		{"delimiter", "[source]\ndelimiter = \";;\"\n", "source.delimiter"},
		{"binding", "[emit]\nbinding = \"static-content\"\n", "emit.binding"},
		{"merge columns", "[merge]\nkey_column = \"A\"\nduration_column = \"A\"\n", "distinct"},
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"unknown key", "[paths]\nsource = \"x.csv\"\n", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.body), 0o644))
			_, _, _, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestMergeDisabledSkipsColumnValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	body := "[merge]\nenabled = false\nkey_column = \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.MergeEnabled())
}

func TestMergeReportsFirstMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	body := "[merge]\nkey_column = \"\"\nduration_column = \"\"\ntrack_count_column = \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	for range 5 {
		_, _, _, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "merge.key_column must be set")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	target := filepath.Join(dir, "nested", "catalog.toml")

	require.NoError(t, config.CreateSample(target))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Catalog tool configuration."))

	cfg, _, exists, err := config.Load(target)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, config.Default().Emit.Binding, cfg.Emit.Binding)
}

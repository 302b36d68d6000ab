package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcatalog/internal/config"
	"contentcatalog/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Output: &buf})
	require.NoError(t, err)

	logger = logging.NewComponentLogger(logger, "ingest")
	logger.Info("row skipped", logging.Int("line", 4), logging.String("reason", "invalid id"))

	line := buf.String()
	assert.Contains(t, line, " INFO ingest: row skipped")
	assert.Contains(t, line, "line=4")
	assert.Contains(t, line, `reason="invalid id"`)
	assert.NotContains(t, line, "component=")
	assert.NotContains(t, line, ".go:")
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Output: &buf})
	require.NoError(t, err)

	logger.Debug("with caller")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestConsoleLoggerFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	require.NoError(t, err)

	logger.WithGroup("merge").Info("done", logging.Int("updated", 3))
	assert.Contains(t, buf.String(), "merge.updated=3")
}

func TestJSONLoggerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Output: &buf})
	require.NoError(t, err)

	logger.Warn("careful", logging.Error(errors.New("boom")))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "warn", payload["level"])
	assert.Equal(t, "careful", payload["msg"])
	assert.Equal(t, "boom", payload["error"])
	assert.Contains(t, payload, "ts")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	require.Error(t, err)
}

func TestNewFromConfigRespectsLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	require.NoError(t, err)

	logging.WarnWithContext(logger, "duplicate id", "duplicate_id", logging.String(logging.FieldImpact, "kept both rows"))

	line := buf.String()
	assert.Contains(t, line, "duplicate id [duplicate_id]")
	assert.NotContains(t, line, "event_type=")
	assert.Contains(t, line, "error_hint=")
	assert.Equal(t, 1, strings.Count(line, "impact="))
}

func TestConsoleLoggerShortensRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Output: &buf})
	require.NoError(t, err)

	logger.With(logging.String(logging.FieldRunID, "3f2a9c1e-7b4d-4e8a-9c1f-2d3e4f5a6b7c")).Info("catalog written")
	line := buf.String()
	assert.Contains(t, line, "catalog written run=3f2a9c1e")
	assert.NotContains(t, line, "7b4d")
}

func TestJSONLoggerKeepsEventType(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	require.NoError(t, err)

	logging.WarnWithContext(logger, "row skipped", "row_skipped")

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "row_skipped", payload["event_type"])
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing")
	assert.False(t, logger.Enabled(t.Context(), 100))
}

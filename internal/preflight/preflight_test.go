package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcatalog/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir(), true)
	assert.True(t, result.Passed, result.Detail)
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), false)
	assert.False(t, result.Passed)
	assert.NotEmpty(t, result.Detail)
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	assert.False(t, CheckDirectoryAccess("test", f, false).Passed)
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(f, []byte("id\n1\n"), 0o644))

	result := CheckReadableFile("source", f)
	assert.True(t, result.Passed, result.Detail)
	assert.False(t, CheckReadableFile("source", dir).Passed, "directory")
	assert.False(t, CheckReadableFile("source", filepath.Join(dir, "missing.csv")).Passed, "missing file")
	assert.False(t, CheckReadableFile("source", "").Passed, "empty path")
}

func TestCheckWritableTargetAcceptsMissingParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "src", "data", "staticContent.js")
	result := CheckWritableTarget("output", target)
	assert.True(t, result.Passed, result.Detail)
}

func TestCheckWritableTargetRejectsFileAncestor(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	result := CheckWritableTarget("output", filepath.Join(blocker, "staticContent.js"))
	assert.False(t, result.Passed)
}

func TestRunAllSkipsDisabledFeatures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Merge.Enabled = false
	cfg.Samples.Dir = ""
	cfg.History.Path = ""
	testsupport.WriteFile(t, cfg.Paths.PrimarySource, "id\n1\n")

	results := RunAll(cfg)
	assert.Len(t, results, 2, "primary and output checks only")
	assert.False(t, Failed(results), "%+v", results)
}

func TestRunAllReportsMissingSecondary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Merge.Enabled = true
	testsupport.WriteFile(t, cfg.Paths.PrimarySource, "id\n1\n")

	results := RunAll(cfg)
	assert.True(t, Failed(results), "%+v", results)
}

func TestFailedIgnoresOptionalChecks(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "samples", Optional: true},
	}
	assert.False(t, Failed(results))
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		12:      "12 B",
		2048:    "2.0 KiB",
		5 << 20: "5.0 MiB",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatSize(in), "formatSize(%d)", in)
	}
}

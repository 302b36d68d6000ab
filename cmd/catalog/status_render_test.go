package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"contentcatalog/internal/ingest"
	"contentcatalog/internal/merge"
	"contentcatalog/internal/pipeline"
)

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("Status", statusOK, "wrote 2 records", false)
	assert.Equal(t, "  Status:            [OK] wrote 2 records", got)

	colored := renderStatusLine("Status", statusError, "", true)
	assert.True(t, strings.HasPrefix(colored, ansiRed))
	assert.True(t, strings.HasSuffix(colored, "[ERROR]"+ansiReset))
}

func TestShouldColorizeIgnoresNonFiles(t *testing.T) {
	assert.False(t, shouldColorize(io.Discard))
	assert.False(t, shouldColorize(&bytes.Buffer{}))
}

func TestPrintRunSummaryListsIssues(t *testing.T) {
	skipped := make([]ingest.RowIssue, 7)
	for i := range skipped {
		skipped[i] = ingest.RowIssue{Line: i + 2, Reason: ingest.ReasonMissingID}
	}
	summary := pipeline.Summary{
		Kind:       "build",
		Source:     "/data/your_content_data.csv",
		Secondary:  "/data/tracks.xlsx",
		Output:     "/data/src/data/staticContent.js",
		Rows:       10,
		Records:    3,
		Skipped:    skipped,
		Duplicates: []ingest.Duplicate{{ID: 4, Line: 9, FirstLine: 3}},
		Merge:      &merge.Stats{Updated: 2, Unmatched: 1, Lookup: 5, Excluded: 1},
		Bytes:      120,
		SHA256:     "0123456789abcdef",
	}

	var buf bytes.Buffer
	printRunSummary(&buf, "Catalog build", summary, nil, false)
	out := buf.String()
	assert.Contains(t, out, "your_content_data.csv (10 rows)")
	assert.Contains(t, out, "[WARN] 7 (line 2: missing id;")
	assert.Contains(t, out, "+2 more")
	assert.Contains(t, out, "id 4 on lines 3 and 9")
	assert.Contains(t, out, "1 rows without a program number")
	assert.Contains(t, out, "sha256 0123456789ab)")
}

func TestPrintRunSummaryOnFailure(t *testing.T) {
	var buf bytes.Buffer
	printRunSummary(&buf, "Catalog build", pipeline.Summary{Kind: "build", Source: "x.csv"}, errors.New("boom"), false)
	out := buf.String()
	assert.Contains(t, out, "[ERROR] failed, catalog not written")
	assert.Contains(t, out, "[ERROR] boom")
	assert.NotContains(t, out, "Output:")
	assert.NotContains(t, out, "Skipped rows")
}

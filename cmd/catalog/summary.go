package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"contentcatalog/internal/history"
	"contentcatalog/internal/ingest"
	"contentcatalog/internal/pipeline"
)

var errAuditMismatch = errors.New("audit found differences between source and catalog")

const maxListedIssues = 5

// printRunSummary writes the closing report of a build or merge. It is
// printed on failure too, so operators always see how far the run got.
func printRunSummary(out io.Writer, title string, s pipeline.Summary, runErr error, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}

	if runErr != nil {
		fmt.Fprintln(out, renderStatusLine("Status", statusError, "failed, catalog not written", colorize))
		fmt.Fprintln(out, renderStatusLine("Reason", statusError, runErr.Error(), colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Status", statusOK, fmt.Sprintf("wrote %d records", s.Records), colorize))
	}

	if s.Source != "" {
		detail := filepath.Base(s.Source)
		if s.Kind == history.KindBuild && (s.Rows > 0 || runErr == nil) {
			detail = fmt.Sprintf("%s (%d rows)", detail, s.Rows)
		}
		fmt.Fprintln(out, renderStatusLine("Source", statusInfo, detail, colorize))
	}
	if s.Kind == history.KindBuild && (s.Rows > 0 || runErr == nil) {
		fmt.Fprintln(out, renderStatusLine("Skipped rows", countKind(len(s.Skipped)), describeSkipped(s.Skipped), colorize))
		fmt.Fprintln(out, renderStatusLine("Duplicate ids", countKind(len(s.Duplicates)), describeDuplicates(s.Duplicates), colorize))
		if len(s.MissingColumns) > 0 {
			fmt.Fprintln(out, renderStatusLine("Missing columns", statusWarn, strings.Join(s.MissingColumns, ", "), colorize))
		}
	}

	switch {
	case s.Merge != nil:
		kind := statusOK
		if s.Merge.Unmatched > 0 {
			kind = statusWarn
		}
		detail := fmt.Sprintf("%d updated, %d unmatched (%d programs from %s)",
			s.Merge.Updated, s.Merge.Unmatched, s.Merge.Lookup, filepath.Base(s.Secondary))
		if s.Merge.Excluded > 0 {
			detail += fmt.Sprintf(", %d rows without a program number", s.Merge.Excluded)
		}
		fmt.Fprintln(out, renderStatusLine("Program metadata", kind, detail, colorize))
	case s.Secondary == "" && runErr == nil:
		fmt.Fprintln(out, renderStatusLine("Program metadata", statusInfo, "skipped", colorize))
	}

	if s.Samples != nil {
		fmt.Fprintln(out, renderStatusLine("Audio samples", statusInfo,
			fmt.Sprintf("%d attached from %d files", s.Samples.Attached, s.Samples.Files), colorize))
	}

	if runErr == nil {
		fmt.Fprintln(out, renderStatusLine("Output", statusInfo,
			fmt.Sprintf("%s (%d bytes, sha256 %s)", s.Output, s.Bytes, shortHash(s.SHA256)), colorize))
	}
}

func countKind(n int) statusKind {
	if n == 0 {
		return statusOK
	}
	return statusWarn
}

func describeSkipped(issues []ingest.RowIssue) string {
	if len(issues) == 0 {
		return "none"
	}
	parts := make([]string, 0, maxListedIssues)
	for i, issue := range issues {
		if i == maxListedIssues {
			parts = append(parts, fmt.Sprintf("+%d more", len(issues)-maxListedIssues))
			break
		}
		parts = append(parts, fmt.Sprintf("line %d: %s", issue.Line, issue.Reason))
	}
	return fmt.Sprintf("%d (%s)", len(issues), strings.Join(parts, "; "))
}

func describeDuplicates(dups []ingest.Duplicate) string {
	if len(dups) == 0 {
		return "none"
	}
	parts := make([]string, 0, maxListedIssues)
	for i, d := range dups {
		if i == maxListedIssues {
			parts = append(parts, fmt.Sprintf("+%d more", len(dups)-maxListedIssues))
			break
		}
		parts = append(parts, fmt.Sprintf("id %d on lines %d and %d", d.ID, d.FirstLine, d.Line))
	}
	return fmt.Sprintf("%d kept (%s)", len(dups), strings.Join(parts, "; "))
}

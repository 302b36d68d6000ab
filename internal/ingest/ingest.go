package ingest

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/fieldmap"
	"contentcatalog/internal/logging"
	"contentcatalog/internal/tabular"
	"contentcatalog/internal/textnorm"
)

// ErrSourceUnavailable marks a primary source that could not be read at all.
var ErrSourceUnavailable = tabular.ErrUnavailable

// Skip reasons reported in RowIssue.Reason.
const (
	ReasonMissingID    = "missing id"
	ReasonNonNumericID = "non-numeric id"
	ReasonZeroID       = "zero id"
	ReasonIDOutOfRange = "id out of range"
)

// RowIssue describes a source row that was not emitted.
type RowIssue struct {
	Line   int
	Reason string
	RawID  string
}

// Duplicate records an id seen again after its first accepted row.
type Duplicate struct {
	ID        int64
	Line      int
	FirstLine int
}

// Result is the outcome of ingesting one table.
type Result struct {
	Records    []catalog.Record
	Skipped    []RowIssue
	Duplicates []Duplicate
	// MissingColumns lists mapped columns absent from the header; their keys
	// are emitted as empty strings.
	MissingColumns []string
	Rows           int
}

// Load reads the primary source at path and ingests it.
func Load(path string, opts tabular.CSVOptions, mapping fieldmap.Mapping, norm *textnorm.Normalizer, logger *slog.Logger) (Result, error) {
	table, err := tabular.ReadCSV(path, opts)
	if err != nil {
		return Result{}, fmt.Errorf("load primary source: %w", err)
	}
	return Ingest(table, mapping, norm, logger), nil
}

// Ingest converts table rows to records in source order.
func Ingest(table *tabular.Table, mapping fieldmap.Mapping, norm *textnorm.Normalizer, logger *slog.Logger) Result {
	logger = logging.NewComponentLogger(logger, "ingest")

	result := Result{Rows: len(table.Rows)}
	for _, f := range mapping.Fields {
		if !table.Has(f.Column) {
			result.MissingColumns = append(result.MissingColumns, f.Column)
		}
	}
	if len(result.MissingColumns) > 0 {
		logging.WarnWithContext(logger, "source is missing mapped columns", "missing_columns",
			logging.String("source", table.Name()),
			logging.String("columns", strings.Join(result.MissingColumns, ", ")),
			logging.String(logging.FieldImpact, "missing fields are emitted as empty strings"),
		)
	}

	firstSeen := make(map[int64]int)
	for _, row := range table.Rows {
		rec, issue, ok := convertRow(table, row, mapping, norm)
		if !ok {
			result.Skipped = append(result.Skipped, issue)
			logging.WarnWithContext(logger, "skipping row", "row_skipped",
				logging.Int("line", issue.Line),
				logging.String("reason", issue.Reason),
				logging.String("raw_id", issue.RawID),
				logging.String(logging.FieldImpact, "row omitted from catalog"),
			)
			continue
		}

		id, _ := rec.Get(fieldmap.IDKey)
		idValue, _ := id.Int64()
		if first, seen := firstSeen[idValue]; seen {
			result.Duplicates = append(result.Duplicates, Duplicate{ID: idValue, Line: row.Line, FirstLine: first})
			logging.WarnWithContext(logger, "duplicate content id", "duplicate_id",
				logging.Int64("id", idValue),
				logging.Int("line", row.Line),
				logging.Int("first_line", first),
				logging.String(logging.FieldImpact, "both rows kept in catalog"),
			)
		} else {
			firstSeen[idValue] = row.Line
		}
		result.Records = append(result.Records, rec)
	}

	logger.Debug("ingest complete",
		logging.String("source", table.Name()),
		logging.Int("rows", result.Rows),
		logging.Int("records", len(result.Records)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Int("duplicates", len(result.Duplicates)),
	)
	return result
}

// convertRow walks the mapping in order. The first problem with the id
// rejects the row and stops further conversion.
func convertRow(table *tabular.Table, row tabular.Row, mapping fieldmap.Mapping, norm *textnorm.Normalizer) (catalog.Record, RowIssue, bool) {
	var rec catalog.Record
	for _, f := range mapping.Fields {
		raw := strings.TrimSpace(table.Cell(row, f.Column).String())
		if f.Key == fieldmap.IDKey {
			id, reason := parseID(raw)
			if reason != "" {
				return catalog.Record{}, RowIssue{Line: row.Line, Reason: reason, RawID: raw}, false
			}
			rec.Set(f.Key, catalog.Int(id))
			continue
		}
		if raw != "" && f.Normalize {
			raw = norm.Apply(raw)
		}
		rec.Set(f.Key, catalog.String(raw))
	}
	return rec, RowIssue{}, true
}

func parseID(raw string) (int64, string) {
	if raw == "" {
		return 0, ReasonMissingID
	}
	if !IsDigits(raw) {
		return 0, ReasonNonNumericID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ReasonIDOutOfRange
	}
	if id == 0 {
		return 0, ReasonZeroID
	}
	return id, ""
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

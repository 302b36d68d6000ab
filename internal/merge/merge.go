package merge

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/fieldmap"
	"contentcatalog/internal/logging"
	"contentcatalog/internal/tabular"
)

// ErrMissingColumns indicates the secondary source lacks a required column.
var ErrMissingColumns = errors.New("secondary source is missing required columns")

// Keys written onto enriched records.
const (
	DurationKey   = "duration"
	TrackCountKey = "trackCount"
)

// Columns names the secondary-source columns used by the join.
type Columns struct {
	Key        string
	Duration   string
	TrackCount string
}

// DefaultColumns returns the column names of the program metadata export.
func DefaultColumns() Columns {
	return Columns{
		Key:        "Program Set Number",
		Duration:   "Message Length",
		TrackCount: "Track Count",
	}
}

func (c Columns) names() []string {
	return []string{c.Key, c.Duration, c.TrackCount}
}

// Entry is the metadata of one program.
type Entry struct {
	Duration   catalog.Value
	TrackCount catalog.Value
	Line       int
}

// Lookup maps program ids to metadata.
type Lookup struct {
	entries map[int64]Entry
	// Excluded counts rows whose key was empty or not an integer.
	Excluded int
	// Replaced counts rows that overwrote an earlier row with the same key.
	Replaced int
}

// Len returns the number of distinct program ids.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Get returns the metadata for program id.
func (l *Lookup) Get(id int64) (Entry, bool) {
	if l == nil {
		return Entry{}, false
	}
	e, ok := l.entries[id]
	return e, ok
}

// BuildLookup indexes table by the key column. Column presence is checked
// before any row is read; later rows win on duplicate keys.
func BuildLookup(table *tabular.Table, cols Columns) (*Lookup, error) {
	if missing := table.Missing(cols.names()...); len(missing) > 0 {
		return nil, fmt.Errorf("%w in %s: %s (found: %s)", ErrMissingColumns, table.Name(),
			strings.Join(missing, ", "), strings.Join(table.Header, ", "))
	}

	lookup := &Lookup{entries: make(map[int64]Entry, len(table.Rows))}
	for _, row := range table.Rows {
		key, ok := table.Cell(row, cols.Key).AsInt()
		if !ok {
			lookup.Excluded++
			continue
		}
		if _, dup := lookup.entries[key]; dup {
			lookup.Replaced++
		}
		lookup.entries[key] = Entry{
			Duration:   catalog.FromCell(table.Cell(row, cols.Duration)),
			TrackCount: catalog.FromCell(table.Cell(row, cols.TrackCount)),
			Line:       row.Line,
		}
	}
	return lookup, nil
}

// Load reads the secondary source at path and builds its lookup. CSV
// sources have numeric cells inferred so counts stay numbers.
func Load(path string, opts tabular.Options, cols Columns) (*Lookup, error) {
	opts.CSV.InferNumbers = true
	table, err := tabular.ReadFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load secondary source: %w", err)
	}
	return BuildLookup(table, cols)
}

// Stats summarises one Apply call.
type Stats struct {
	Updated   int
	Unmatched int
	Lookup    int
	Excluded  int
}

// Apply sets duration and track count on every record whose program id is
// found in lookup. Records are never added, removed or reordered.
func Apply(records []catalog.Record, lookup *Lookup, logger *slog.Logger) Stats {
	logger = logging.NewComponentLogger(logger, "merge")

	stats := Stats{Lookup: lookup.Len()}
	if lookup != nil {
		stats.Excluded = lookup.Excluded
	}
	for i := range records {
		program, _ := records[i].Get(fieldmap.ProgramKey)
		id, ok := program.AsInt()
		if !ok {
			stats.Unmatched++
			continue
		}
		entry, found := lookup.Get(id)
		if !found {
			stats.Unmatched++
			logger.Debug("program not found in metadata",
				logging.String("id", records[i].Text(fieldmap.IDKey)),
				logging.Int64("program_id", id),
			)
			continue
		}
		records[i].Set(DurationKey, entry.Duration)
		records[i].Set(TrackCountKey, entry.TrackCount)
		stats.Updated++
	}

	logger.Info("program metadata merged",
		logging.Int("updated", stats.Updated),
		logging.Int("unmatched", stats.Unmatched),
		logging.Int("programs", stats.Lookup),
		logging.Int("excluded_rows", stats.Excluded),
	)
	return stats
}

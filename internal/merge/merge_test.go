package merge_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/merge"
	"contentcatalog/internal/tabular"
	"contentcatalog/internal/testsupport"
)

func record(id int64, title string, program catalog.Value) catalog.Record {
	return catalog.NewRecord(
		catalog.Field{Key: "id", Value: catalog.Int(id)},
		catalog.Field{Key: "title_en", Value: catalog.String(title)},
		catalog.Field{Key: "programId", Value: program},
	)
}

func TestApplyScenarioFromWorkbook(t *testing.T) {
	path := testsupport.WriteWorkbook(t, filepath.Join(t.TempDir(), "Message tracks and length.XLSX"), [][]any{
		{"Program Set Number", "Message Length", "Track Count"},
		{12, "3:45", 2},
	})

	lookup, err := merge.Load(path, tabular.Options{}, merge.DefaultColumns())
	require.NoError(t, err)

	records := []catalog.Record{record(7, "Hope", catalog.String("12"))}
	stats := merge.Apply(records, lookup, nil)

	assert.Equal(t, merge.Stats{Updated: 1, Unmatched: 0, Lookup: 1, Excluded: 0}, stats)
	rec := records[0]
	assert.Equal(t, []string{"id", "title_en", "programId", "duration", "trackCount"}, rec.Keys())

	duration, _ := rec.Get("duration")
	assert.Equal(t, catalog.String("3:45"), duration)
	trackCount, _ := rec.Get("trackCount")
	assert.Equal(t, catalog.Int(2), trackCount)
}

func TestApplyIsLeftPreserving(t *testing.T) {
	table := tabular.NewTable("meta.xlsx", []string{"Program Set Number", "Message Length", "Track Count"}, []tabular.Row{
		{Line: 2, Cells: []tabular.Cell{tabular.IntCell(12), tabular.StringCell("3:45"), tabular.IntCell(2)}},
		{Line: 3, Cells: []tabular.Cell{tabular.FloatCell(13), tabular.Cell{}, tabular.IntCell(4)}},
	})
	lookup, err := merge.BuildLookup(table, merge.DefaultColumns())
	require.NoError(t, err)

	records := []catalog.Record{
		record(1, "Matched", catalog.String(" 12 ")),
		record(2, "Unknown program", catalog.String("99")),
		record(3, "No program", catalog.String("")),
		record(4, "Text program", catalog.String("T13")),
		record(5, "Null duration", catalog.Int(13)),
	}
	before := make([]catalog.Record, len(records))
	for i, r := range records {
		before[i] = r.Clone()
	}

	stats := merge.Apply(records, lookup, nil)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, 3, stats.Unmatched)
	require.Len(t, records, 5)

	for _, i := range []int{1, 2, 3} {
		assert.Equal(t, before[i].Fields(), records[i].Fields(), "record %d unchanged", i)
	}
	for i := range records {
		assert.Equal(t, before[i].Text("id"), records[i].Text("id"), "order preserved")
	}

	duration, ok := records[4].Get("duration")
	require.True(t, ok)
	assert.True(t, duration.IsNull(), "empty cell becomes null")
}

func TestBuildLookupExcludesBadKeysAndLastWins(t *testing.T) {
	table, err := tabular.DecodeCSV(strings.NewReader(strings.Join([]string{
		" Program Set Number , Message Length ,Track Count",
		"12,3:45,2",
		",1:00,1",
		"abc,2:00,1",
		"12.0,4:10,3",
	}, "\n")), tabular.CSVOptions{InferNumbers: true})
	require.NoError(t, err)

	lookup, err := merge.BuildLookup(table, merge.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, 1, lookup.Len())
	assert.Equal(t, 2, lookup.Excluded)
	assert.Equal(t, 1, lookup.Replaced)

	entry, ok := lookup.Get(12)
	require.True(t, ok)
	assert.Equal(t, catalog.String("4:10"), entry.Duration)
	assert.Equal(t, catalog.Int(3), entry.TrackCount)
	assert.Equal(t, 5, entry.Line)
}

func TestBuildLookupMissingColumnsIsFatal(t *testing.T) {
	table := tabular.NewTable("meta.xlsx", []string{"Program Set Number", "Length"}, []tabular.Row{
		{Line: 2, Cells: []tabular.Cell{tabular.IntCell(12), tabular.StringCell("3:45")}},
	})

	_, err := merge.BuildLookup(table, merge.DefaultColumns())
	require.Error(t, err)
	assert.True(t, errors.Is(err, merge.ErrMissingColumns))
	assert.Contains(t, err.Error(), "Message Length, Track Count")
}

func TestLoadMissingSource(t *testing.T) {
	_, err := merge.Load(filepath.Join(t.TempDir(), "absent.xlsx"), tabular.Options{}, merge.DefaultColumns())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrUnavailable))
}

func TestLoadCSVSecondarySource(t *testing.T) {
	path := testsupport.WriteCSV(t, filepath.Join(t.TempDir(), "tracks.csv"),
		"Program Set Number,Message Length,Track Count",
		"12,3:45,2",
	)
	lookup, err := merge.Load(path, tabular.Options{}, merge.DefaultColumns())
	require.NoError(t, err)

	entry, ok := lookup.Get(12)
	require.True(t, ok)
	assert.Equal(t, catalog.Int(2), entry.TrackCount)
}

func TestApplyWithNilLookup(t *testing.T) {
	records := []catalog.Record{record(1, "A", catalog.String("12"))}
	stats := merge.Apply(records, nil, nil)
	assert.Equal(t, 1, stats.Unmatched)
	assert.False(t, records[0].Has("duration"))
}

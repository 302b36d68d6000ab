package audit

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/fieldmap"
	"contentcatalog/internal/ingest"
	"contentcatalog/internal/language"
	"contentcatalog/internal/tabular"
	"contentcatalog/internal/textnorm"
)

// Selector picks the records to audit. A record matches when its English
// language name contains Language, ignoring case, or its language code names
// the same language as ISO3. Two-letter codes are accepted for ISO3.
// An empty selector matches every record.
type Selector struct {
	Language string
	ISO3     string
}

func (s Selector) folded() (string, string) {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(s.Language)), fold.String(strings.TrimSpace(s.ISO3))
}

// Match reports whether a language name and ISO3 code satisfy the selector.
func (s Selector) Match(langName, iso3 string) bool {
	lang, code := s.folded()
	if lang == "" && code == "" {
		return true
	}
	fold := cases.Fold()
	if lang != "" && strings.Contains(fold.String(langName), lang) {
		return true
	}
	return code != "" && language.Equal(iso3, code)
}

// Empty reports whether the selector has no criteria.
func (s Selector) Empty() bool {
	lang, code := s.folded()
	return lang == "" && code == ""
}

// Summary is one audited row or record.
type Summary struct {
	Line    int
	ID      string
	Title   string
	Program string
}

// Mismatch is a field whose catalog value differs from the source.
type Mismatch struct {
	ID      string
	Key     string
	Source  string
	Catalog string
}

// Report is the outcome of one audit.
type Report struct {
	Selector      Selector
	SourceName    string
	Source        []Summary
	Catalog       []Summary
	Programs      []string
	OnlyInSource  []string
	OnlyInCatalog []string
	Mismatches    []Mismatch
}

// Consistent reports whether both sides agree.
func (r Report) Consistent() bool {
	return len(r.Source) == len(r.Catalog) &&
		len(r.OnlyInSource) == 0 &&
		len(r.OnlyInCatalog) == 0 &&
		len(r.Mismatches) == 0
}

// Run compares the selected source rows with the selected catalog records.
// Source values are trimmed and normalized the way ingestion does before
// comparison.
func Run(table *tabular.Table, records []catalog.Record, mapping fieldmap.Mapping, norm *textnorm.Normalizer, sel Selector) Report {
	report := Report{Selector: sel, SourceName: table.Name()}

	column := func(key string) string {
		c, _ := mapping.ColumnFor(key)
		return c
	}
	idCol, titleCol, programCol := column(fieldmap.IDKey), column(fieldmap.TitleKey), column(fieldmap.ProgramKey)
	languageCol, isoCol := column(fieldmap.LanguageKey), column(fieldmap.ISO3Key)

	sourceRows := make(map[string]tabular.Row)
	for _, row := range table.Rows {
		cell := func(col string) string { return strings.TrimSpace(table.Cell(row, col).String()) }
		if !sel.Match(cell(languageCol), cell(isoCol)) {
			continue
		}
		id := cell(idCol)
		report.Source = append(report.Source, Summary{Line: row.Line, ID: id, Title: cell(titleCol), Program: cell(programCol)})
		if _, seen := sourceRows[id]; !seen && ingest.IsDigits(id) {
			sourceRows[id] = row
		}
	}

	catalogRecords := make(map[string]catalog.Record)
	programs := make(map[string]struct{})
	for i, rec := range records {
		if !sel.Match(rec.Text(fieldmap.LanguageKey), rec.Text(fieldmap.ISO3Key)) {
			continue
		}
		id := rec.Text(fieldmap.IDKey)
		program := rec.Text(fieldmap.ProgramKey)
		report.Catalog = append(report.Catalog, Summary{Line: i + 1, ID: id, Title: rec.Text(fieldmap.TitleKey), Program: program})
		programs[program] = struct{}{}
		if _, seen := catalogRecords[id]; !seen {
			catalogRecords[id] = rec
		}
	}

	for program := range programs {
		report.Programs = append(report.Programs, program)
	}
	slices.SortFunc(report.Programs, compareIDs)

	for id := range sourceRows {
		if _, ok := catalogRecords[id]; !ok {
			report.OnlyInSource = append(report.OnlyInSource, id)
		}
	}
	for id := range catalogRecords {
		if _, ok := sourceRows[id]; !ok {
			report.OnlyInCatalog = append(report.OnlyInCatalog, id)
		}
	}
	slices.SortFunc(report.OnlyInSource, compareIDs)
	slices.SortFunc(report.OnlyInCatalog, compareIDs)

	shared := make([]string, 0, len(sourceRows))
	for id := range sourceRows {
		if _, ok := catalogRecords[id]; ok {
			shared = append(shared, id)
		}
	}
	slices.SortFunc(shared, compareIDs)
	for _, id := range shared {
		report.Mismatches = append(report.Mismatches,
			compareFields(id, table, sourceRows[id], catalogRecords[id], mapping, norm)...)
	}
	return report
}

func compareFields(id string, table *tabular.Table, row tabular.Row, rec catalog.Record, mapping fieldmap.Mapping, norm *textnorm.Normalizer) []Mismatch {
	var out []Mismatch
	for _, f := range mapping.Fields {
		if f.Key == fieldmap.IDKey {
			continue
		}
		want := strings.TrimSpace(table.Cell(row, f.Column).String())
		if want != "" && f.Normalize {
			want = norm.Apply(want)
		}
		value, ok := rec.Get(f.Key)
		got := value.String()
		if !ok {
			got = "<absent>"
		}
		if want != got {
			out = append(out, Mismatch{ID: id, Key: f.Key, Source: want, Catalog: got})
		}
	}
	return out
}

// compareIDs orders numeric ids numerically and everything else after them
// lexically.
func compareIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

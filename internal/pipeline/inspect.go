package pipeline

import (
	"context"
	"fmt"
	"strings"

	"contentcatalog/internal/audit"
	"contentcatalog/internal/catalog"
	"contentcatalog/internal/tabular"
)

// Audit re-reads the primary source and the emitted catalog and compares the
// records selected by sel.
func (r *Runner) Audit(ctx context.Context, sel audit.Selector) (audit.Report, error) {
	if err := ctx.Err(); err != nil {
		return audit.Report{}, err
	}
	mapping, err := r.mapping()
	if err != nil {
		return audit.Report{}, err
	}
	table, err := tabular.ReadCSV(r.cfg.Paths.PrimarySource, r.csvOptions())
	if err != nil {
		return audit.Report{}, fmt.Errorf("load primary source: %w", err)
	}
	records, err := catalog.ReadFile(r.cfg.Paths.Output, r.cfg.Emit.Binding)
	if err != nil {
		return audit.Report{}, err
	}
	return audit.Run(table, records, mapping, r.normalizer, sel), nil
}

// ColumnInfo describes one column of an inspected source.
type ColumnInfo struct {
	Name string
	// Kinds lists the cell types seen in the column, in a fixed order.
	Kinds    []string
	Empty    int
	Examples []string
}

// Inspection is the column overview of a tabular source.
type Inspection struct {
	Source  string
	Rows    int
	Columns []ColumnInfo
	Missing []string
}

// Inspect reads path (or the configured secondary source when path is empty)
// and describes its columns. Missing lists the configured merge columns the
// source lacks.
func (r *Runner) Inspect(ctx context.Context, path string, sampleSize int) (Inspection, error) {
	if err := ctx.Err(); err != nil {
		return Inspection{}, err
	}
	if strings.TrimSpace(path) == "" {
		path = r.cfg.Paths.SecondarySource
	}
	if path == "" {
		return Inspection{}, ErrNoSecondarySource
	}
	opts := tabular.Options{CSV: r.csvOptions(), Sheet: r.cfg.Merge.Sheet}
	opts.CSV.InferNumbers = true
	table, err := tabular.ReadFile(path, opts)
	if err != nil {
		return Inspection{}, err
	}

	out := Inspection{Source: path, Rows: len(table.Rows)}
	for _, name := range table.Header {
		info := ColumnInfo{Name: name}
		seen := map[tabular.Kind]bool{}
		for _, row := range table.Rows {
			cell := table.Cell(row, name)
			if cell.IsEmpty() {
				info.Empty++
				continue
			}
			seen[cell.Kind] = true
			if len(info.Examples) < sampleSize {
				info.Examples = append(info.Examples, cell.String())
			}
		}
		for _, kind := range []tabular.Kind{tabular.KindInt, tabular.KindFloat, tabular.KindString} {
			if seen[kind] {
				info.Kinds = append(info.Kinds, kindName(kind))
			}
		}
		out.Columns = append(out.Columns, info)
	}
	out.Missing = table.Missing(r.mergeColumns().Key, r.mergeColumns().Duration, r.mergeColumns().TrackCount)
	return out, nil
}

func kindName(k tabular.Kind) string {
	switch k {
	case tabular.KindInt:
		return "integer"
	case tabular.KindFloat:
		return "number"
	case tabular.KindString:
		return "text"
	default:
		return "empty"
	}
}

package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"contentcatalog/internal/language"
)

// Render writes a human-readable report to w.
func Render(w io.Writer, r Report) error {
	label := describeSelector(r.Selector)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Source (%s) ---\n", r.SourceName)
	b.WriteString(summaryTable(r.Source, "Line"))
	fmt.Fprintf(&b, "\nTotal %s in source: %d\n", label, len(r.Source))

	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(summaryTable(r.Catalog, "Index"))
	fmt.Fprintf(&b, "\nTotal %s in catalog: %d\n", label, len(r.Catalog))
	fmt.Fprintf(&b, "Distinct programs in catalog: %s\n", listOrNone(r.Programs))

	if len(r.OnlyInSource) > 0 {
		fmt.Fprintf(&b, "Only in source: %s\n", strings.Join(r.OnlyInSource, ", "))
	}
	if len(r.OnlyInCatalog) > 0 {
		fmt.Fprintf(&b, "Only in catalog: %s\n", strings.Join(r.OnlyInCatalog, ", "))
	}
	if len(r.Mismatches) > 0 {
		b.WriteString("\nField mismatches:\n")
		tw := newWriter()
		tw.AppendHeader(table.Row{"ID", "Field", "Source", "Catalog"})
		for _, m := range r.Mismatches {
			tw.AppendRow(table.Row{m.ID, m.Key, m.Source, m.Catalog})
		}
		b.WriteString(tw.Render())
		b.WriteString("\n")
	}

	if r.Consistent() {
		b.WriteString("\nSource and catalog agree.\n")
	} else {
		b.WriteString("\nSource and catalog differ.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryTable(rows []Summary, position string) string {
	if len(rows) == 0 {
		return "(none)\n"
	}
	tw := newWriter()
	tw.AppendHeader(table.Row{position, "ID", "Title", "Program"})
	for _, s := range rows {
		tw.AppendRow(table.Row{strconv.Itoa(s.Line), s.ID, s.Title, s.Program})
	}
	return tw.Render() + "\n"
}

func newWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

func describeSelector(s Selector) string {
	parts := make([]string, 0, 2)
	if v := strings.TrimSpace(s.Language); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(s.ISO3); v != "" {
		code := strings.ToUpper(language.ToISO3(v))
		if name := language.DisplayName(v); name != "" && name != code && len(parts) == 0 {
			code = name + " (" + code + ")"
		}
		parts = append(parts, code)
	}
	if len(parts) == 0 {
		return "records"
	}
	return strings.Join(parts, "/")
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteCSV joins lines with CRLF, the way spreadsheet exports do, and writes them to path.
func WriteCSV(t testing.TB, path string, lines ...string) string {
	t.Helper()
	return WriteFile(t, path, strings.Join(lines, "\r\n")+"\r\n")
}

// WriteWorkbook saves rows to the first sheet of a new workbook at path.
// Values keep their Go types, so ints become numeric cells and strings text cells.
func WriteWorkbook(t testing.TB, path string, rows [][]any) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := append([]any(nil), row...)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", r+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

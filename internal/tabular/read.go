package tabular

import (
	"path/filepath"
	"strings"
)

// Options selects how ReadFile decodes a source.
type Options struct {
	CSV   CSVOptions
	Sheet string
}

// ReadFile dispatches on the file extension: Excel workbooks go through
// ReadXLSX, everything else through ReadCSV.
func ReadFile(path string, opts Options) (*Table, error) {
	if IsWorkbook(path) {
		return ReadXLSX(path, opts.Sheet)
	}
	return ReadCSV(path, opts.CSV)
}

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	default:
		return false
	}
}

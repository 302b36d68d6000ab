package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions controls CSV decoding.
type CSVOptions struct {
	// Encoding is a WHATWG charset label; empty means UTF-8.
	Encoding  string
	Delimiter rune
	// InferNumbers types integer and decimal cells instead of keeping text.
	InferNumbers bool
}

// ReadCSV opens path and decodes it as a header-row CSV table.
func ReadCSV(path string, opts CSVOptions) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, path, err)
	}
	defer file.Close()

	table, err := DecodeCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, path, err)
	}
	table.Source = path
	return table, nil
}

// DecodeCSV reads a header-row CSV table from r.
func DecodeCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	label := opts.Encoding
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	decoded := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewTable("", nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		cells := make([]Cell, len(record))
		for i, raw := range record {
			if opts.InferNumbers {
				cells[i] = inferCell(raw)
			} else {
				cells[i] = StringCell(raw)
			}
		}
		rows = append(rows, Row{Line: line, Cells: cells})
	}
	return NewTable("", header, rows), nil
}

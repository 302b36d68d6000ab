package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the named worksheet (or the first one when sheet is empty)
// of an Excel workbook. The first row is the header.
func ReadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", ErrUnavailable, path)
		}
		sheet = sheets[0]
	}

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q of %s: %w", ErrUnavailable, sheet, path, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q of %s: %w", ErrUnavailable, sheet, path, err)
	}

	if len(formatted) == 0 {
		return NewTable(path, nil, nil), nil
	}

	rows := make([]Row, 0, len(formatted)-1)
	for r := 1; r < len(formatted); r++ {
		cells := make([]Cell, len(formatted[r]))
		for c, display := range formatted[r] {
			var rawValue string
			if r < len(raw) && c < len(raw[r]) {
				rawValue = raw[r][c]
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("cell reference: %w", err)
			}
			cellType, err := f.GetCellType(sheet, ref)
			if err != nil {
				return nil, fmt.Errorf("cell type %s: %w", ref, err)
			}
			cells[c] = workbookCell(cellType, display, rawValue, numberFormat(f, sheet, ref))
		}
		if allEmpty(cells) {
			continue
		}
		rows = append(rows, Row{Line: r + 1, Cells: cells})
	}
	return NewTable(path, formatted[0], rows), nil
}

// workbookCell keeps numbers numeric only when they are displayed as plain
// numbers. Time-formatted durations become the text Excel shows for them.
func workbookCell(cellType excelize.CellType, display, raw, format string) Cell {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
	default:
		return StringCell(display)
	}
	trimmed := strings.TrimSpace(display)
	if trimmed == "" {
		return Cell{}
	}
	if format != "" {
		if serial, err := strconv.ParseFloat(raw, 64); err == nil {
			if text, ok := formatElapsed(format, serial); ok {
				return StringCell(text)
			}
		}
	}
	if !looksNumeric(strings.ReplaceAll(trimmed, ",", "")) {
		return StringCell(display)
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return IntCell(v)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return StringCell(display)
	}
	if v, ok := FloatCell(f).AsInt(); ok {
		return IntCell(v)
	}
	return FloatCell(f)
}

func allEmpty(cells []Cell) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Built-in time-only formats by number format id.
var builtinTimeFormats = map[int]string{
	20: "h:mm",
	21: "h:mm:ss",
	45: "mm:ss",
	46: "[h]:mm:ss",
}

// numberFormat returns the format code of a cell styled with a time format
// formatElapsed understands, or "".
func numberFormat(f *excelize.File, sheet, ref string) string {
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return ""
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return ""
	}
	if style.CustomNumFmt != nil {
		return *style.CustomNumFmt
	}
	return builtinTimeFormats[style.NumFmt]
}

// formatElapsed renders a day-fraction serial with a time-only format code
// such as h:mm, h:mm:ss or [h]:mm:ss. Single-letter tokens are not padded.
// Codes with date, AM/PM or other parts are rejected.
func formatElapsed(code string, serial float64) (string, bool) {
	code, _, _ = strings.Cut(strings.ToLower(strings.TrimSpace(code)), ";")
	if code == "" || math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 {
		return "", false
	}

	type token struct {
		unit    byte
		width   int
		elapsed bool
	}
	var tokens []token
	var seps []string
	sep := ""
	for i := 0; i < len(code); {
		ch := code[i]
		switch {
		case ch == ':' || ch == '.':
			sep += string(ch)
			i++
		case ch == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 2 {
				return "", false
			}
			inner := code[i+1 : i+end]
			if strings.Trim(inner, inner[:1]) != "" || !strings.ContainsAny(inner[:1], "hms") {
				return "", false
			}
			tokens = append(tokens, token{unit: inner[0], width: len(inner), elapsed: true})
			seps = append(seps, sep)
			sep = ""
			i += end + 1
		case ch == 'h' || ch == 'm' || ch == 's':
			j := i
			for j < len(code) && code[j] == ch {
				j++
			}
			if j-i > 2 {
				return "", false
			}
			tokens = append(tokens, token{unit: ch, width: j - i})
			seps = append(seps, sep)
			sep = ""
			i = j
		default:
			return "", false
		}
	}
	if len(tokens) < 2 || sep != "" {
		return "", false
	}

	total := int64(math.Round(serial * 86400))
	var b strings.Builder
	for i, tok := range tokens {
		var v int64
		switch tok.unit {
		case 'h':
			v = total / 3600
			if !tok.elapsed {
				v %= 24
			}
		case 'm':
			v = total / 60
			if !tok.elapsed {
				v %= 60
			}
		case 's':
			v = total
			if !tok.elapsed {
				v %= 60
			}
		}
		b.WriteString(seps[i])
		fmt.Fprintf(&b, "%0*d", tok.width, v)
	}
	return b.String(), true
}

package tabular

import (
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnavailable marks a source file that could not be opened or decoded at all.
var ErrUnavailable = errors.New("source unavailable")

// Kind identifies the native type of a cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindInt
	KindFloat
)

// Cell is one typed table value.
type Cell struct {
	Kind  Kind
	Str   string
	Int   int64
	Float float64
}

// StringCell returns a text cell; the empty string yields an empty cell.
func StringCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: KindString, Str: s}
}

// IntCell returns a native integer cell.
func IntCell(v int64) Cell { return Cell{Kind: KindInt, Int: v} }

// FloatCell returns a native floating point cell.
func FloatCell(v float64) Cell { return Cell{Kind: KindFloat, Float: v} }

// String renders the cell the way it appeared in the source.
func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Str
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'f', -1, 64)
	default:
		return ""
	}
}

// IsEmpty reports whether the cell holds no value or only whitespace.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind == KindString && strings.TrimSpace(c.Str) == "")
}

// AsInt converts the cell to an integer key. Integral floats (12.0) and
// digit-only strings convert; anything else does not.
func (c Cell) AsInt() (int64, bool) {
	switch c.Kind {
	case KindInt:
		return c.Int, true
	case KindFloat:
		if math.IsNaN(c.Float) || math.IsInf(c.Float, 0) || c.Float != math.Trunc(c.Float) {
			return 0, false
		}
		if c.Float > math.MaxInt64 || c.Float < math.MinInt64 {
			return 0, false
		}
		return int64(c.Float), true
	case KindString:
		return ParseIntKey(c.Str)
	default:
		return 0, false
	}
}

// ParseIntKey converts a trimmed, optionally signed decimal string (or an
// integral decimal such as "12.0") into an integer.
func ParseIntKey(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	if !looksNumeric(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return FloatCell(f).AsInt()
}

// Row is one data row; Line is its 1-based position in the source file.
type Row struct {
	Line  int
	Cells []Cell
}

// Table is a header row plus data rows.
type Table struct {
	Source string
	Header []string
	Rows   []Row

	index map[string]int
}

// NewTable builds a table, trimming header names.
func NewTable(source string, header []string, rows []Row) *Table {
	t := &Table{Source: source, Rows: rows}
	t.Header = make([]string, len(header))
	t.index = make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		t.Header[i] = name
		t.index[name] = i
	}
	return t
}

// Has reports whether the header contains column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Missing returns the requested columns absent from the header, in request order.
func (t *Table) Missing(columns ...string) []string {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Cell returns the value of column in row. Missing columns and short rows
// yield an empty cell.
func (t *Table) Cell(row Row, column string) Cell {
	i, ok := t.index[column]
	if !ok || i >= len(row.Cells) {
		return Cell{}
	}
	return row.Cells[i]
}

// Name returns the base file name of the source.
func (t *Table) Name() string {
	if t.Source == "" {
		return ""
	}
	return filepath.Base(t.Source)
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	digits, dot, exp := 0, false, false
	for ; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			digits++
		case ch == '.' && !dot && !exp:
			dot = true
		case (ch == 'e' || ch == 'E') && !exp && digits > 0:
			exp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
			if i+1 >= len(s) {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// inferCell types a raw text value: integers and decimals become numbers,
// everything else stays text.
func inferCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StringCell(raw)
	}
	if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return IntCell(v)
	}
	if looksNumeric(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return FloatCell(f)
		}
	}
	return StringCell(raw)
}

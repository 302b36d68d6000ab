package catalog

import (
	"encoding/json"
	"math"
	"strconv"

	"contentcatalog/internal/tabular"
)

// ValueKind identifies the scalar type held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt
	KindFloat
	KindString
)

// Value is one scalar catalog value.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a string value. The empty string is kept as a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports which member of the value is set.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// FromCell converts a table cell, keeping native numbers numeric. Empty cells
// become null.
func FromCell(c tabular.Cell) Value {
	switch c.Kind {
	case tabular.KindInt:
		return Int(c.Int)
	case tabular.KindFloat:
		return Float(c.Float)
	case tabular.KindString:
		return String(c.Str)
	default:
		return Null()
	}
}

// Int64 returns the integer held by v.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Str returns the string held by v.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsInt converts v to an integer key: integers, integral floats and
// numeric strings convert.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		return tabular.FloatCell(v.f).AsInt()
	case KindString:
		return tabular.ParseIntKey(v.s)
	default:
		return 0, false
	}
}

// String renders v for display; null renders empty.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// Equal reports whether both values have the same kind and content.
func (v Value) Equal(other Value) bool {
	return v == other
}

// MarshalJSON encodes v as a JSON scalar. Non-finite floats encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.f)
	case KindString:
		return marshalString(v.s)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Numbers without a fraction or
// exponent decode as integers.
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := decodeScalar(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

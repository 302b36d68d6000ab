package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Field is one key/value pair of a record.
type Field struct {
	Key   string
	Value Value
}

// Record is an ordered set of fields. Keys keep their insertion order when
// encoded, so the catalog reads in mapping order.
type Record struct {
	fields []Field
}

// NewRecord builds a record from fields in order. A repeated key replaces the
// earlier value in place.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Set assigns key, replacing an existing value in place or appending a new field.
func (r *Record) Set(key string, value Value) {
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Text returns the display form of key, or "" when absent.
func (r Record) Text(key string) string {
	v, _ := r.Get(key)
	return v.String()
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns the record keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the record's fields.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.fields) }

// Clone returns a record that shares no storage with r.
func (r Record) Clone() Record {
	return Record{fields: r.Fields()}
}

// MarshalJSON encodes the record as a compact JSON object in key order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", f.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object, preserving key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("catalog record must be a JSON object")
	}

	var out Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		value, err := decodeScalar(raw)
		if err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		out.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}

func decodeScalar(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch v := tok.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case json.Number:
		text := v.String()
		if !strings.ContainsAny(text, ".eE") {
			if i, err := v.Int64(); err == nil {
				return Int(i), nil
			}
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s: %w", text, err)
		}
		return Float(f), nil
	case bool:
		return Value{}, fmt.Errorf("unsupported boolean value %t", v)
	default:
		return Value{}, fmt.Errorf("unsupported value %s", strings.TrimSpace(string(data)))
	}
}

// marshalString encodes s as a JSON string without HTML escaping, so
// non-ASCII text and characters such as '&' stay verbatim. encoding/json
// always escapes U+2028 and U+2029; those escapes are turned back into the
// raw characters.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	if strings.ContainsAny(s, "\u2028\u2029") {
		out = unescapeLineSeparators(out)
	}
	return out, nil
}

// unescapeLineSeparators replaces \u2028 and \u2029 escapes in encoded JSON
// with the characters themselves. An escape counts only when its backslash
// is not itself escaped.
func unescapeLineSeparators(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && string(data[i+2:i+5]) == "202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		// Other escapes are copied whole.
		out = append(out, data[i])
		if i+1 < len(data) {
			i++
			out = append(out, data[i])
		}
	}
	return out
}

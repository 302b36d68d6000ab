package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrBindingNotFound indicates the module text has no export for the binding.
var ErrBindingNotFound = errors.New("catalog binding not found")

// Parse extracts the records exported as binding from emitted module text.
func Parse(data []byte, binding string) ([]Record, error) {
	if binding == "" {
		binding = DefaultBinding
	}
	pattern := regexp.MustCompile(`(?m)^\s*export\s+const\s+` + regexp.QuoteMeta(binding) + `\s*=\s*`)
	loc := pattern.FindIndex(data)
	if loc == nil {
		return nil, fmt.Errorf("%w: %s", ErrBindingNotFound, binding)
	}

	dec := json.NewDecoder(bytes.NewReader(data[loc[1]:]))
	var raw []json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s array: %w", binding, err)
	}

	records := make([]Record, 0, len(raw))
	for i, item := range raw {
		var rec Record
		if err := rec.UnmarshalJSON(item); err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", binding, i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadFile reads and parses an emitted module from disk.
func ReadFile(path, binding string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	records, err := Parse(data, binding)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return records, nil
}

// SourceName returns the source file named in the provenance comment of
// emitted module text.
func SourceName(data []byte) (string, bool) {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	rest, ok := strings.CutPrefix(strings.TrimRight(string(line), "\r"), HeaderPrefix)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(rest, "."), true
}

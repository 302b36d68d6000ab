package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// HeaderPrefix starts the provenance comment on the first line of every
// emitted module.
const HeaderPrefix = "// This file was automatically generated from your CSV data on "

// DefaultBinding is the exported constant name the front end imports.
const DefaultBinding = "staticContent"

var bindingPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// EncodeOptions controls the emitted module text.
type EncodeOptions struct {
	// SourceName is written into the provenance comment, usually the base
	// name of the primary source file.
	SourceName string
	Binding    string
	// Indent is the number of spaces per nesting level.
	Indent int
}

// Encode renders records as an ES module exporting one constant array.
// The output depends only on its inputs: the same records in the same order
// always encode to the same bytes.
func Encode(records []Record, opts EncodeOptions) ([]byte, error) {
	binding := opts.Binding
	if binding == "" {
		binding = DefaultBinding
	}
	if !bindingPattern.MatchString(binding) {
		return nil, fmt.Errorf("invalid binding name %q", binding)
	}
	if opts.Indent < 0 {
		return nil, fmt.Errorf("invalid indent %d", opts.Indent)
	}

	array, err := encodeArray(records, opts.Indent)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString(HeaderPrefix)
	out.WriteString(opts.SourceName)
	out.WriteString(".\n")
	out.WriteString("export const ")
	out.WriteString(binding)
	out.WriteString(" = ")
	out.Write(array)
	out.WriteString(";\n")
	return out.Bytes(), nil
}

// encodeArray builds the compact array by hand; json.Marshal would re-escape
// HTML characters in the record output.
func encodeArray(records []Record, indent int) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, rec := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		data, err := rec.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode record %d: %w", i, err)
		}
		compact.Write(data)
	}
	compact.WriteByte(']')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact.Bytes(), "", strings.Repeat(" ", indent)); err != nil {
		return nil, fmt.Errorf("indent catalog: %w", err)
	}
	return pretty.Bytes(), nil
}

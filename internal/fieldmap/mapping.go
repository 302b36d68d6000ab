package fieldmap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// IDKey is the record key holding the numeric content identifier.
	IDKey = "id"
	// ProgramKey is the record key used to join program metadata.
	ProgramKey = "programId"
	// LanguageKey is the English language name, used by audits and samples.
	LanguageKey = "languageEn"
	// ISO3Key is the three-letter language code.
	ISO3Key = "iso3"
	// LangIDKey is the numeric language identifier used to match audio samples.
	LangIDKey = "langId"
	// TitleKey is the English title shown in audit summaries.
	TitleKey = "title_en"
)

// Field maps one source column to one catalog key.
type Field struct {
	Column string `yaml:"column"`
	Key    string `yaml:"key"`
	// Normalize marks long-form content text that must be cleaned of export artifacts.
	Normalize bool `yaml:"normalize,omitempty"`
}

// Mapping is the ordered list of column to key correspondences.
type Mapping struct {
	Fields []Field
}

// Default returns the built-in mapping for the content export.
func Default() Mapping {
	return Mapping{Fields: []Field{
		{Column: "id", Key: IDKey},
		{Column: "langID", Key: LangIDKey},
		{Column: "iso3", Key: ISO3Key},
		{Column: "langEn", Key: LanguageKey},
		{Column: "langTh", Key: "languageTh"},
		{Column: "titleEn", Key: TitleKey},
		{Column: "titleTh", Key: "title_th"},
		{Column: "verseEn", Key: "verse_en", Normalize: true},
		{Column: "verseTh", Key: "verse_th", Normalize: true},
		{Column: "playUrl", Key: "streamUrl"},
		{Column: "downloadTrack001Url", Key: "trackDownloadUrl"},
		{Column: "downloadZipUrl", Key: "zipDownloadUrl"},
		{Column: "program", Key: ProgramKey},
	}}
}

// LoadFile reads a YAML mapping file. An empty path returns Default.
func LoadFile(path string) (Mapping, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML sequence of fields and validates the result.
func Parse(data []byte) (Mapping, error) {
	var fields []Field
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return Mapping{}, fmt.Errorf("parse mapping yaml: %w", err)
	}
	for i := range fields {
		fields[i].Column = strings.TrimSpace(fields[i].Column)
		fields[i].Key = strings.TrimSpace(fields[i].Key)
	}
	m := Mapping{Fields: fields}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Marshal serializes the mapping in the same YAML shape Parse accepts.
func (m Mapping) Marshal() ([]byte, error) {
	return yaml.Marshal(m.Fields)
}

// Validate checks that the mapping has exactly one id field and no duplicate
// columns or keys.
func (m Mapping) Validate() error {
	if len(m.Fields) == 0 {
		return errors.New("mapping has no fields")
	}
	keys := make(map[string]struct{}, len(m.Fields))
	columns := make(map[string]struct{}, len(m.Fields))
	for i, f := range m.Fields {
		if f.Column == "" {
			return fmt.Errorf("mapping field %d: column must be set", i+1)
		}
		if f.Key == "" {
			return fmt.Errorf("mapping field %d (%s): key must be set", i+1, f.Column)
		}
		if _, dup := keys[f.Key]; dup {
			return fmt.Errorf("mapping key %q appears more than once", f.Key)
		}
		if _, dup := columns[f.Column]; dup {
			return fmt.Errorf("mapping column %q appears more than once", f.Column)
		}
		if f.Key == IDKey && f.Normalize {
			return errors.New("mapping id field cannot be normalized")
		}
		keys[f.Key] = struct{}{}
		columns[f.Column] = struct{}{}
	}
	if _, ok := keys[IDKey]; !ok {
		return fmt.Errorf("mapping must include a field with key %q", IDKey)
	}
	return nil
}

// Keys returns the catalog keys in mapping order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		keys[i] = f.Key
	}
	return keys
}

// ColumnFor returns the source column mapped to key.
func (m Mapping) ColumnFor(key string) (string, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f.Column, true
		}
	}
	return "", false
}

// Lookup returns the field mapped to key.
func (m Mapping) Lookup(key string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

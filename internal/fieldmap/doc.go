// Package fieldmap declares how columns of the content export become keys of
// catalog records.
//
// A Mapping is ordered data, not code: the order of its fields is the key
// order of every emitted record, and operators add or remove columns by
// editing a YAML file rather than the ingestion logic. The file is a plain
// sequence:
//
//	# mapping.yaml
//	- column: id
//	  key: id
//	- column: verseEn
//	  key: verse_en
//	  normalize: true
//
// Two keys carry behaviour elsewhere in the pipeline: IDKey is coerced to an
// integer and gates record validity, and ProgramKey is the join key for
// program metadata.
package fieldmap

// Package pipeline wires the catalog stages together.
//
// Build reads the primary export, converts rows to records, joins program
// metadata, attaches audio samples and writes the catalog module. Merge
// re-enriches an already emitted module in place. Both write nothing when a
// source-level error occurs, and both record a history entry on success.
// Audit and Inspect are read-only helpers for the CLI.
package pipeline

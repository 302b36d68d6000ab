// Package main hosts the catalog CLI entrypoint and command graph.
//
// Running catalog with no arguments builds the content catalog from the
// configured sources. Subcommands re-enrich an emitted catalog, audit it
// against the primary export, inspect spreadsheet columns, list run history
// and scaffold configuration. Configuration resolution and logging setup
// live here so each command only maps flags onto the pipeline.
package main

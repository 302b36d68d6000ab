// Package config loads, normalizes, and validates catalog tool configuration.
//
// It supplies repository defaults that mirror the historical on-disk layout
// (the CSV export next to the tools, the generated module under src/data),
// expands user paths (including tilde shortcuts), and reads an optional TOML
// file. There is deliberately no environment-variable layer: every knob lives
// in the file or in the defaults, so a run is reproducible from the working
// directory alone.
//
// Always obtain settings through this package so the pipeline receives
// absolute paths, canonical log formats, and clear validation errors.
package config

// Package merge enriches catalog records with program metadata (duration
// and track count) joined from a secondary spreadsheet by integer program id.
package merge

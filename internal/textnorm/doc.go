// Package textnorm cleans long-form content text of artifacts left behind by
// the upstream spreadsheet export.
package textnorm

// Package history keeps a local SQLite log of emitted catalogs.
//
// Every successful build or merge records a Run with its inputs, output,
// counts and the SHA-256 of the emitted artifact, so operators can tell when
// the catalog last changed and from which sources. The schema is managed by
// embedded, ordered SQL migrations.
package history

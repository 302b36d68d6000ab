// Package ingest turns rows of the primary content export into catalog
// records.
//
// Row problems (a missing, non-numeric or zero id) skip the row and are
// reported in Result; only a source that cannot be opened or decoded is an
// error. Duplicate ids are kept in source order and reported.
package ingest

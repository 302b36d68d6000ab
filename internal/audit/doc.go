// Package audit cross-checks an emitted catalog against the primary source
// for one language. It re-reads both sides independently of the pipeline and
// reports per-record summaries, counts, the distinct program ids in the
// catalog, ids present on only one side, and field values that differ.
package audit

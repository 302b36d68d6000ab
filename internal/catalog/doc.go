// Package catalog holds the emitted content catalog: ordered records of
// scalar values, the deterministic JavaScript module encoding consumed by
// the front end, a locked atomic writer, and a reader that recovers records
// from a previously emitted module.
package catalog

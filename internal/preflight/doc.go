// Package preflight checks that the files and directories a build touches
// are reachable before any work starts.
//
// "catalog config validate" prints every result. Checks for optional
// features are skipped when the feature is disabled in configuration.
package preflight

// Package testsupport provides shared helpers for package tests: temp-rooted
// configs, fixture writers for CSV and workbook sources, and history stores.
package testsupport

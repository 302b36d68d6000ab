// Package tabular reads header-row tables from CSV exports and Excel
// workbooks into one in-memory shape.
//
// CSV input is decoded through golang.org/x/text so a leading byte-order mark
// never leaks into the first column name, and non-UTF-8 exports (for example
// windows-874 Thai) can be read by WHATWG label. Workbooks are read with
// excelize; numeric cells keep their native type so integer track counts stay
// integers in the catalog, while cells whose display format is not a plain
// number (times such as 3:45) keep their displayed text.
//
// Header names are trimmed. When a header repeats, the last column wins, which
// matches how the export tooling has always resolved duplicates.
package tabular

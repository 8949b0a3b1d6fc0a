// Package importer applies a parsed CSV sheet to the library.
//
// Standard rows are applied by track id. Matched rows are resolved through a
// fixed ladder: the full path is scored against every library track, then the
// bare file name, then (when the row has both a title and a duration) the
// closest duration within tolerance. Rows that resolve are written with only
// the fields they actually carry; rows that do not are reported with the
// nearest library name as a hint. Each row completes before the next starts.
//
// A run produces a Report: counters by outcome and match route, plus one
// Outcome per row. When a Recorder is configured the report is persisted
// after the last row.
package importer

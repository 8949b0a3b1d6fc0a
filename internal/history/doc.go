// Package history keeps an audit trail of import runs in SQLite.
//
// Every run gets one row in runs with its source file, negotiated encoding,
// sheet format and summary counters, plus one row per CSV record in
// run_rows describing how that record was resolved. The store satisfies
// importer.Recorder so the pipeline can write to it directly.
//
// Schema changes bump schemaVersion in schema.go; an older database is
// rejected with ErrSchemaMismatch and has to be deleted.
package history

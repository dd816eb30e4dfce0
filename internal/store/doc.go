// Package store persists fixture records in SQLite.
//
// Records are keyed by uid. Entering a record whose uid already exists is
// reported as a duplicate rather than failing the batch, and odds and result
// updates report the records they could not apply. The package also exports
// the table as CSV, writes dated backups, and runs diagnostic health checks.
//
// Schema changes bump schemaVersion in schema.go; an existing database with a
// different version is rejected with ErrSchemaMismatch.
package store

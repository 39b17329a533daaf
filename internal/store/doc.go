// Package store implements the section-keyed configuration store that
// holds graph definitions.
//
// A Config is a staged set of named sections. Reads and writes operate on an
// in-memory working set; Save hands the complete set to a Backend and, once
// the backend reports success, makes it the committed snapshot. Discard drops
// staged changes and returns to the last committed snapshot, so a failed save
// never leaves memory and storage disagreeing.
//
// Backends:
//   - INIBackend: one [section] per graph, the format used by the web module
//   - YAMLBackend: a YAML mapping of section name to key/value pairs
//   - SQLiteBackend: two tables in a pure Go SQLite database
//   - RedisBackend: one hash per section plus an index set
//
// File backends write through a temporary file and an atomic rename.
package store

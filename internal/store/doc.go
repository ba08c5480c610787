// Package store persists translated words in SQLite. Every record is keyed
// by its literal word; a unique index keeps at most one row per word, and
// lookups are exact (case and form sensitive).
//
// Migrations are embedded and applied with goose by Open, so a fresh
// database file is usable immediately.
package store

// Package store implements the persistence layer of the review engine.
//
// At the bottom sits the Store contract: named collections of records,
// loaded and saved as whole JSON-array payloads. Three interchangeable
// backends implement it — a per-key file store (optionally fully
// in-memory), a single-table SQLite store, and a PostgreSQL store whose
// schema is managed by goose migrations. Absent or malformed payloads are
// normalized to an empty record set; a corrupt collection silently resets
// rather than failing the caller.
//
// On top of the Store, typed repositories provide CRUD for users,
// collections and review items, enforce referential integrity and cascade
// deletes, and serialize every read-modify-write cycle through a single
// shared mutex so that no two mutations interleave within one process.
package store

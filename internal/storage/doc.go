// Package storage persists raw driving-log data in SQLite.
//
// # Overview
//
// The schema holds three tables:
//
//   - logs: one row per driving log with its geodetic origin
//   - samples: ordered raw pose offsets (meters east/north of the origin)
//   - previews: optional pre-rendered preview image blob per log
//
// The package deliberately stores raw samples, not projected lat/lon points:
// projection and bounding-box derivation are the catalog layer's computation
// and the reason its trajectory cache exists.
//
// # Schema Management
//
// Migrations are versioned and applied by MigrationRunner inside
// transactions, tracked in a schema_migrations table. WAL mode and foreign
// keys are enabled on every Run.
//
// # Error Handling
//
// Missing rows are reported as wrapped ErrNotFound so callers can
// distinguish "unknown log" from storage failures with errors.Is. A known
// log with zero samples is not an error; it loads as an empty sample slice.
//
// # Concurrency
//
// *sql.DB and prepared statements are safe for concurrent use; the store
// adds no locking of its own.
package storage

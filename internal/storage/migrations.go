package storage

import (
	"database/sql"
	"fmt"
)

// schemaStep is one versioned schema change.
type schemaStep struct {
	Version int
	Name    string
	Apply   func(tx *sql.Tx) error
}

// steps lists every schema change in order. Append only.
var steps = []schemaStep{
	{Version: 1, Name: "logs_samples_previews", Apply: migrateV001},
}

// MigrationRunner brings a SQLite log database up to the current schema.
type MigrationRunner struct {
	db *sql.DB
}

// NewMigrationRunner creates a MigrationRunner for the given database.
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return &MigrationRunner{db: db}
}

// Run applies all pending schema steps in order. It enables WAL mode and
// foreign keys first, then records each applied step in schema_migrations.
func (r *MigrationRunner) Run() error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := r.db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	current, err := r.currentVersion()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, step := range steps {
		if step.Version <= current {
			continue
		}
		if err := r.apply(step); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", step.Version, step.Name, err)
		}
	}

	return nil
}

// currentVersion returns the highest applied step version, zero for a fresh
// database.
func (r *MigrationRunner) currentVersion() (int, error) {
	var version sql.NullInt64
	err := r.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return int(version.Int64), nil
}

// apply executes one step inside a transaction and records it.
func (r *MigrationRunner) apply(step schemaStep) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := step.Apply(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		step.Version, step.Name,
	); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}

package storage

import "database/sql"

// migrateV001 creates the initial zodmap schema: one row per driving log,
// its ordered raw pose samples, and an optional preview blob. Every
// statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS logs (
			id         TEXT PRIMARY KEY,
			origin_lat REAL NOT NULL,
			origin_lon REAL NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS samples (
			log_id TEXT NOT NULL REFERENCES logs(id) ON DELETE CASCADE,
			seq    INTEGER NOT NULL,
			dx     REAL NOT NULL,
			dy     REAL NOT NULL,
			PRIMARY KEY (log_id, seq)
		)`,

		`CREATE TABLE IF NOT EXISTS previews (
			log_id     TEXT PRIMARY KEY REFERENCES logs(id) ON DELETE CASCADE,
			mime       TEXT NOT NULL DEFAULT 'image/jpeg',
			data       BLOB NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_samples_log ON samples(log_id, seq)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

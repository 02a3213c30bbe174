package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Store defines the interface the catalog layer consumes: enumeration of
// known logs, raw trajectory samples, and preview blobs. Insert operations
// exist for ingest tooling and test seeding.
type Store interface {
	ListLogIDs(ctx context.Context) ([]string, error)
	LoadSamples(ctx context.Context, logID string) (*RawLog, error)
	LoadPreview(ctx context.Context, logID string) (*Preview, error)
	InsertLog(ctx context.Context, raw *RawLog) error
	InsertPreview(ctx context.Context, logID string, p *Preview) error
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	getLog        *sql.Stmt
	getSamples    *sql.Stmt
	getPreview    *sql.Stmt
	insertLog     *sql.Stmt
	insertSample  *sql.Stmt
	insertPreview *sql.Stmt
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getLog, err = s.db.Prepare(`SELECT id, origin_lat, origin_lon FROM logs WHERE id = ?`)
	if err != nil {
		return err
	}

	s.getSamples, err = s.db.Prepare(`
		SELECT seq, dx, dy FROM samples WHERE log_id = ? ORDER BY seq
	`)
	if err != nil {
		return err
	}

	s.getPreview, err = s.db.Prepare(`SELECT mime, data FROM previews WHERE log_id = ?`)
	if err != nil {
		return err
	}

	s.insertLog, err = s.db.Prepare(`
		INSERT INTO logs (id, origin_lat, origin_lon) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertSample, err = s.db.Prepare(`
		INSERT INTO samples (log_id, seq, dx, dy) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertPreview, err = s.db.Prepare(`
		INSERT OR REPLACE INTO previews (log_id, mime, data) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

// ListLogIDs returns every known log identifier in sorted order.
func (s *SQLiteStore) ListLogIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM logs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan log id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice rather than nil
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// LoadSamples returns a log's origin and its ordered raw samples.
// A known log with zero samples yields an empty slice, not an error.
func (s *SQLiteStore) LoadSamples(ctx context.Context, logID string) (*RawLog, error) {
	raw := &RawLog{ID: logID}
	err := s.getLog.QueryRowContext(ctx, logID).Scan(&raw.ID, &raw.Origin.Lat, &raw.Origin.Lon)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("log %s: %w", logID, ErrNotFound)
		}
		return nil, fmt.Errorf("get log: %w", err)
	}

	rows, err := s.getSamples.QueryContext(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sm Sample
		if err := rows.Scan(&sm.Seq, &sm.DX, &sm.DY); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		raw.Samples = append(raw.Samples, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return raw, nil
}

// LoadPreview returns the stored preview blob for a log.
func (s *SQLiteStore) LoadPreview(ctx context.Context, logID string) (*Preview, error) {
	var p Preview
	err := s.getPreview.QueryRowContext(ctx, logID).Scan(&p.MIME, &p.Data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("preview for log %s: %w", logID, ErrNotFound)
		}
		return nil, fmt.Errorf("get preview: %w", err)
	}
	return &p, nil
}

// InsertLog stores a log and all of its samples in a single transaction.
func (s *SQLiteStore) InsertLog(ctx context.Context, raw *RawLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.StmtContext(ctx, s.insertLog).ExecContext(ctx, raw.ID, raw.Origin.Lat, raw.Origin.Lon); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	for _, sm := range raw.Samples {
		if _, err := tx.StmtContext(ctx, s.insertSample).ExecContext(ctx, raw.ID, sm.Seq, sm.DX, sm.DY); err != nil {
			return fmt.Errorf("insert sample %d: %w", sm.Seq, err)
		}
	}

	return tx.Commit()
}

// InsertPreview stores (or replaces) the preview blob for a log.
func (s *SQLiteStore) InsertPreview(ctx context.Context, logID string, p *Preview) error {
	mime := p.MIME
	if mime == "" {
		mime = "image/jpeg"
	}
	if _, err := s.insertPreview.ExecContext(ctx, logID, mime, p.Data); err != nil {
		return fmt.Errorf("insert preview: %w", err)
	}
	return nil
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.getLog, s.getSamples, s.getPreview,
		s.insertLog, s.insertSample, s.insertPreview,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

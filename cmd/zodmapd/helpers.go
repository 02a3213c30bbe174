package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/adasviz/zodmap/internal/storage"
)

// defaultDBPath returns the default zodmap database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "zodmap.db"
	}
	return filepath.Join(home, ".local", "share", "zodmap", "zodmap.db")
}

// openStore opens the log database, runs migrations, and returns a
// ready-to-use store and the underlying *sql.DB.
func openStore(dbPath string) (*storage.SQLiteStore, *sql.DB, error) {
	if dbPath == "" {
		dbPath = defaultDBPath()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

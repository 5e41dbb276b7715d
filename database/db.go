package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

// New opens the SQLite file at dbPath, creating its directory if needed.
// The schema is not touched until Migrate is called.
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Connection pragmas go in the DSN so every pooled connection gets them.
	// _txlock=immediate takes the write lock at BEGIN, which keeps
	// read-then-write transactions from deadlocking on upgrade.
	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate brings the schema up to SchemaVersion.
func (db *DB) Migrate() error {
	return db.MigrateUp()
}

func (db *DB) Close() error {
	return db.DB.Close()
}

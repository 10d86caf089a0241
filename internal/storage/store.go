package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// dsnParams ride on the path so the driver applies them to every pooled
// connection, not just the first one the pool hands out. Transactions begin
// immediate: writers take the write lock at BEGIN instead of failing a
// read-to-write upgrade under load.
const dsnParams = "?_pragma=journal_mode(WAL)" +
	"&_pragma=foreign_keys(1)" +
	"&_pragma=busy_timeout(5000)" +
	"&_txlock=immediate"

// defaultTableDDL creates the three system tables. Every statement uses
// IF NOT EXISTS so the bootstrap is safe to repeat on any connection.
var defaultTableDDL = []string{
	`CREATE TABLE IF NOT EXISTS key_value_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		tags TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS table_registry (
		table_name TEXT PRIMARY KEY,
		schema TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Store owns the single *sql.DB handle for the store file. All repositories
// are constructed against it at Open time; nothing else opens connections.
type Store struct {
	db   *sql.DB
	path string

	KeyValues KeyValueRepository
	Notes     NoteRepository
	Registry  RegistryRepository
	Tables    TableRepository
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("open storage: empty path")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("open storage: create parent dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)

	store := &Store{db: db, path: path}
	if err := store.Bootstrap(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	store.KeyValues = &keyValueRepository{db: db}
	store.Notes = &noteRepository{db: db}
	store.Registry = &registryRepository{db: db}
	store.Tables = &tableRepository{db: db}

	return store, nil
}

// Bootstrap ensures the default tables exist. Idempotent.
func (s *Store) Bootstrap(ctx context.Context) error {
	for _, stmt := range defaultTableDDL {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap default tables: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

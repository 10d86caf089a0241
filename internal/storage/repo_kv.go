package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type keyValueRepository struct {
	db *sql.DB
}

func (r *keyValueRepository) Store(ctx context.Context, key, value string) (bool, error) {
	// The transaction begins immediate (see dsnParams), so the existence
	// check already holds the write lock and the created/updated answer
	// cannot be invalidated by a concurrent writer.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("store value: begin tx: %w", err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM key_value_store WHERE key = ?)`, key,
	).Scan(&exists); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("store value: lookup: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO key_value_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("store value: upsert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("store value: commit: %w", err)
	}
	return !exists, nil
}

func (r *keyValueRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM key_value_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get value: %w", err)
	}
	return value, nil
}

func (r *keyValueRepository) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM key_value_store ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("list keys: scan: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list keys: iterate: %w", err)
	}
	return keys, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type registryRepository struct {
	db *sql.DB
}

func (r *registryRepository) Register(ctx context.Context, tableName, schema string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO table_registry (table_name, schema) VALUES (?, ?)`,
		tableName, schema); err != nil {
		return fmt.Errorf("register table: %w", err)
	}
	return nil
}

func (r *registryRepository) Unregister(ctx context.Context, tableName string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM table_registry WHERE table_name = ?`, tableName); err != nil {
		return fmt.Errorf("unregister table: %w", err)
	}
	return nil
}

func (r *registryRepository) Get(ctx context.Context, tableName string) (*RegisteredTable, error) {
	var entry RegisteredTable
	err := r.db.QueryRowContext(ctx, `
		SELECT table_name, schema, created_at
		FROM table_registry
		WHERE table_name = ?
	`, tableName).Scan(&entry.TableName, &entry.Schema, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get registered table: %w", err)
	}
	return &entry, nil
}

func (r *registryRepository) List(ctx context.Context) ([]RegisteredTable, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT table_name, schema, created_at
		FROM table_registry
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list registered tables: %w", err)
	}
	defer rows.Close()

	var out []RegisteredTable
	for rows.Next() {
		var entry RegisteredTable
		if err := rows.Scan(&entry.TableName, &entry.Schema, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("list registered tables: scan: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registered tables: iterate: %w", err)
	}
	return out, nil
}

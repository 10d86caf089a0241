package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type noteRepository struct {
	db *sql.DB
}

func (r *noteRepository) Add(ctx context.Context, title, content, tags string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (title, content, tags) VALUES (?, ?, ?)`,
		title, content, tags)
	if err != nil {
		return 0, fmt.Errorf("add note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add note: last insert id: %w", err)
	}
	return id, nil
}

func (r *noteRepository) Get(ctx context.Context, id int64) (*Note, error) {
	var (
		note Note
		tags sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, content, tags, created_at, updated_at
		FROM notes
		WHERE id = ?
	`, id).Scan(&note.ID, &note.Title, &note.Content, &tags, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	note.Tags = tags.String
	return &note, nil
}

func (r *noteRepository) Search(ctx context.Context, query string) ([]Note, error) {
	// LIKE is case-insensitive for ASCII in SQLite, matching the intended
	// substring semantics.
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title FROM notes
		WHERE title LIKE ? OR content LIKE ? OR tags LIKE ?
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.Title); err != nil {
			return nil, fmt.Errorf("search notes: scan: %w", err)
		}
		out = append(out, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search notes: iterate: %w", err)
	}
	return out, nil
}

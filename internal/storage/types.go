package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// KeyValueEntry is a row in the key_value_store table. Timestamps are kept
// as the raw text SQLite assigns via CURRENT_TIMESTAMP defaults.
type KeyValueEntry struct {
	Key       string
	Value     string
	CreatedAt string
	UpdatedAt string
}

// Note is a row in the notes table. Tags are free-form comma-separated text.
type Note struct {
	ID        int64
	Title     string
	Content   string
	Tags      string
	CreatedAt string
	UpdatedAt string
}

// RegisteredTable is a row in the table_registry catalog. Schema holds the
// raw column-definition text exactly as supplied at creation.
type RegisteredTable struct {
	TableName string
	Schema    string
	CreatedAt string
}

// Column describes one column of a table in definition order, as reported
// by PRAGMA table_info.
type Column struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// ResultSet holds query output with every value already rendered to text,
// ready for tabular formatting at the tool boundary.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Empty reports whether the result set carries no rows.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

type KeyValueRepository interface {
	// Store upserts by key and reports whether a new entry was created
	// (false means an existing value was overwritten).
	Store(ctx context.Context, key, value string) (created bool, err error)
	Get(ctx context.Context, key string) (string, error)
	ListKeys(ctx context.Context) ([]string, error)
}

type NoteRepository interface {
	Add(ctx context.Context, title, content, tags string) (int64, error)
	Get(ctx context.Context, id int64) (*Note, error)
	// Search matches a substring case-insensitively across title, content,
	// and tags.
	Search(ctx context.Context, query string) ([]Note, error)
}

type RegistryRepository interface {
	Register(ctx context.Context, tableName, schema string) error
	Unregister(ctx context.Context, tableName string) error
	Get(ctx context.Context, tableName string) (*RegisteredTable, error)
	List(ctx context.Context) ([]RegisteredTable, error)
}

// TableRepository performs DDL and DML against caller-defined tables. Table
// names and clause fragments are interpolated verbatim; validation and
// protected-name checks happen above this layer.
type TableRepository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Names(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, name string) ([]Column, error)
	// Create creates the physical table and its registry row in one
	// transaction.
	Create(ctx context.Context, name, schema string) error
	// Drop removes the physical table and its registry row in one
	// transaction.
	Drop(ctx context.Context, name string) error
	Insert(ctx context.Context, name, fields, values string) (int64, error)
	Update(ctx context.Context, name, setClause, whereClause string) (int64, error)
	DeleteRows(ctx context.Context, name, whereClause string) (int64, error)
	Select(ctx context.Context, name, conditions string, limit int) (*ResultSet, error)
	// Query executes a raw statement and collects whatever rows it yields.
	Query(ctx context.Context, raw string) (*ResultSet, error)
}

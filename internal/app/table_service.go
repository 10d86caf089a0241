package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkwalker/agentdb/internal/storage"
)

// TableService implements the generic table operations: lifecycle against
// the registry plus row-level CRUD built from caller-supplied fragments.
// Row-level operations trust any table present in sqlite_master; only the
// lifecycle operations consult the protected set and the registry.
type TableService struct {
	tables   storage.TableRepository
	registry storage.RegistryRepository
}

func NewTableService(tables storage.TableRepository, registry storage.RegistryRepository) *TableService {
	return &TableService{tables: tables, registry: registry}
}

func (s *TableService) Create(ctx context.Context, name, schema string) error {
	if !ValidIdentifier(name) {
		return ErrInvalidIdentifier
	}
	if IsProtected(name) {
		return fmt.Errorf("%w: %s", ErrReservedName, name)
	}

	exists, err := s.tables.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	// Two concurrent creates can both pass the check above; SQLite's own
	// uniqueness is the final arbiter and the loser surfaces a store error.
	return s.tables.Create(ctx, name, schema)
}

// List returns all user-visible table names in lexicographic order,
// excluding SQLite's internal tables.
func (s *TableService) List(ctx context.Context) ([]string, error) {
	names, err := s.tables.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, "sqlite_") {
			continue
		}
		out = append(out, name)
	}
	return out, nil
}

func (s *TableService) Describe(ctx context.Context, name string) ([]storage.Column, error) {
	exists, err := s.tables.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return s.tables.Columns(ctx, name)
}

func (s *TableService) Insert(ctx context.Context, name, fields, values string) (int64, error) {
	if err := s.requireTable(ctx, name); err != nil {
		return 0, err
	}
	return s.tables.Insert(ctx, name, fields, values)
}

func (s *TableService) Update(ctx context.Context, name, setClause, whereClause string) (int64, error) {
	if err := s.requireTable(ctx, name); err != nil {
		return 0, err
	}
	return s.tables.Update(ctx, name, setClause, whereClause)
}

func (s *TableService) DeleteRows(ctx context.Context, name, whereClause string) (int64, error) {
	if err := s.requireTable(ctx, name); err != nil {
		return 0, err
	}
	return s.tables.DeleteRows(ctx, name, whereClause)
}

// Query passes limit through verbatim: an explicit 0 selects no rows, and
// SQLite treats a negative limit as unlimited. The default for a caller
// that omits the argument lives at the tool layer.
func (s *TableService) Query(ctx context.Context, name, conditions string, limit int) (*storage.ResultSet, error) {
	if err := s.requireTable(ctx, name); err != nil {
		return nil, err
	}
	return s.tables.Select(ctx, name, conditions, limit)
}

func (s *TableService) Drop(ctx context.Context, name string) error {
	if IsProtected(name) {
		return fmt.Errorf("%w: %s", ErrSystemTable, name)
	}
	if err := s.requireTable(ctx, name); err != nil {
		return err
	}
	return s.tables.Drop(ctx, name)
}

// Registered exposes the registry catalog (name, declared schema, creation
// time) for the tables created through this service.
func (s *TableService) Registered(ctx context.Context) ([]storage.RegisteredTable, error) {
	return s.registry.List(ctx)
}

func (s *TableService) requireTable(ctx context.Context, name string) error {
	exists, err := s.tables.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return nil
}

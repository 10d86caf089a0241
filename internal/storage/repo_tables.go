package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// tableRepository runs statements assembled from caller-supplied fragments.
// Table names and clause text are interpolated as-is: SQLite cannot bind
// identifiers or clause positions, and the fragment contract is part of the
// tool surface. Values on the fixed-schema paths stay parameterized.
type tableRepository struct {
	db *sql.DB
}

func (r *tableRepository) Exists(ctx context.Context, name string) (bool, error) {
	var found string
	err := r.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check table exists: %w", err)
	}
	return true, nil
}

func (r *tableRepository) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: iterate: %w", err)
	}
	return names, nil
}

func (r *tableRepository) Columns(ctx context.Context, name string) ([]Column, error) {
	// PRAGMA arguments cannot be parameterized; the name has been
	// existence-checked against sqlite_master by the caller.
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%s)`, name))
	if err != nil {
		return nil, fmt.Errorf("describe table: %w", err)
	}
	defer rows.Close()

	var out []Column
	for rows.Next() {
		var (
			cid      int
			col      Column
			notNull  int
			dflt     sql.NullString
			primary  int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &primary); err != nil {
			return nil, fmt.Errorf("describe table: scan: %w", err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = primary != 0
		out = append(out, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe table: iterate: %w", err)
	}
	return out, nil
}

func (r *tableRepository) Create(ctx context.Context, name, schema string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create table: begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, name, schema)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create table: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO table_registry (table_name, schema) VALUES (?, ?)`, name, schema); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create table: register: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create table: commit: %w", err)
	}
	return nil
}

func (r *tableRepository) Drop(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("drop table: begin tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP TABLE %s`, name)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM table_registry WHERE table_name = ?`, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("drop table: unregister: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("drop table: commit: %w", err)
	}
	return nil
}

func (r *tableRepository) Insert(ctx context.Context, name, fields, values string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, name, fields, values))
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert record: last insert id: %w", err)
	}
	return id, nil
}

func (r *tableRepository) Update(ctx context.Context, name, setClause, whereClause string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s WHERE %s`, name, setClause, whereClause))
	if err != nil {
		return 0, fmt.Errorf("update records: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update records: rows affected: %w", err)
	}
	return count, nil
}

func (r *tableRepository) DeleteRows(ctx context.Context, name, whereClause string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE %s`, name, whereClause))
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete records: rows affected: %w", err)
	}
	return count, nil
}

func (r *tableRepository) Select(ctx context.Context, name, conditions string, limit int) (*ResultSet, error) {
	query := fmt.Sprintf(`SELECT * FROM %s`, name)
	if conditions != "" {
		query += ` WHERE ` + conditions
	}
	query += fmt.Sprintf(` LIMIT %d`, limit)
	return r.Query(ctx, query)
}

func (r *tableRepository) Query(ctx context.Context, raw string) (*ResultSet, error) {
	rows, err := r.db.QueryContext(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()
	return collectRows(rows)
}

func collectRows(rows *sql.Rows) (*ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("collect rows: columns: %w", err)
	}

	rs := &ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("collect rows: scan: %w", err)
		}

		rendered := make([]string, len(columns))
		for i, v := range values {
			rendered[i] = renderValue(v)
		}
		rs.Rows = append(rs.Rows, rendered)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collect rows: iterate: %w", err)
	}
	return rs, nil
}

// renderValue turns a driver value into display text.
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}

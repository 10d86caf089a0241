package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkwalker/agentdb/internal/storage"
)

func TestQueryGateRejectsMutatingKeywords(t *testing.T) {
	t.Parallel()

	gate, _ := newTestGate(t)
	ctx := context.Background()

	statements := []string{
		"INSERT INTO t VALUES (1)",
		"update t set a=1",
		"DELETE FROM t",
		"DROP TABLE t",
		"alter table t add column x",
		"TRUNCATE TABLE t",
		"CREATE TABLE t (id INTEGER)",
		"GRANT ALL ON t TO someone",
		"SELECT * FROM t; DROP TABLE t",
	}
	for _, stmt := range statements {
		_, err := gate.Execute(ctx, stmt)
		require.ErrorIsf(t, err, ErrUnsafeQuery, "expected %q to be rejected", stmt)
	}
}

func TestQueryGateRejectsDropRegardlessOfTableExistence(t *testing.T) {
	t.Parallel()

	gate, _ := newTestGate(t)

	_, err := gate.Execute(context.Background(), "DROP TABLE never_existed")
	require.ErrorIs(t, err, ErrUnsafeQuery)
}

func TestQueryGateOverRejectsKeywordAsLiteral(t *testing.T) {
	t.Parallel()

	gate, _ := newTestGate(t)

	// Known limitation of the substring scan: "update" as a plain literal
	// is still refused.
	_, err := gate.Execute(context.Background(), "SELECT 'update'")
	require.ErrorIs(t, err, ErrUnsafeQuery)
}

func TestQueryGateExecutesSelect(t *testing.T) {
	t.Parallel()

	gate, store := newTestGate(t)
	ctx := context.Background()

	_, err := store.KeyValues.Store(ctx, "k1", "v1")
	require.NoError(t, err)

	rs, err := gate.Execute(ctx, "SELECT key, value FROM key_value_store ORDER BY key")
	require.NoError(t, err)
	require.Equal(t, []string{"key", "value"}, rs.Columns)
	require.Equal(t, [][]string{{"k1", "v1"}}, rs.Rows)
}

func TestQueryGateSelectMissingTableReturnsStoreError(t *testing.T) {
	t.Parallel()

	gate, _ := newTestGate(t)

	_, err := gate.Execute(context.Background(), "SELECT * FROM missing_here")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnsafeQuery)
}

func newTestGate(t *testing.T) (*QueryGate, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "agent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	return NewQueryGate(store.Tables), store
}

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableCreateRegistersAndExists(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tables.Create(ctx, "users", "id INTEGER PRIMARY KEY, name TEXT"))

	exists, err := store.Tables.Exists(ctx, "users")
	require.NoError(t, err)
	require.True(t, exists)

	entry, err := store.Registry.Get(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, "id INTEGER PRIMARY KEY, name TEXT", entry.Schema)
}

func TestTableCreateBadSchemaLeavesNoRegistryRow(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	err := store.Tables.Create(ctx, "broken", "id NOT A TYPE ,,,")
	require.Error(t, err)

	_, err = store.Registry.Get(ctx, "broken")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTableDropRemovesTableAndRegistryRow(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tables.Create(ctx, "temp", "id INTEGER"))
	require.NoError(t, store.Tables.Drop(ctx, "temp"))

	exists, err := store.Tables.Exists(ctx, "temp")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = store.Registry.Get(ctx, "temp")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTableColumnsReportsDefinitionOrderAndPrimaryKey(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tables.Create(ctx, "t1", "id INTEGER PRIMARY KEY, name TEXT"))

	columns, err := store.Tables.Columns(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, columns, 2)

	require.Equal(t, "id", columns[0].Name)
	require.Equal(t, "INTEGER", columns[0].Type)
	require.True(t, columns[0].PrimaryKey)

	require.Equal(t, "name", columns[1].Name)
	require.Equal(t, "TEXT", columns[1].Type)
	require.False(t, columns[1].PrimaryKey)
}

func TestTableInsertUpdateDelete(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tables.Create(ctx, "people", "id INTEGER PRIMARY KEY, name TEXT, age INTEGER"))

	id, err := store.Tables.Insert(ctx, "people", "name,age", "'ada',36")
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	count, err := store.Tables.Update(ctx, "people", "age=37", "name='ada'")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	count, err = store.Tables.Update(ctx, "people", "age=1", "name='nobody'")
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = store.Tables.DeleteRows(ctx, "people", "name='ada'")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestTableSelectRendersValues(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tables.Create(ctx, "mixed", "id INTEGER PRIMARY KEY, label TEXT, score REAL, blob_col BLOB"))
	_, err := store.Tables.Insert(ctx, "mixed", "label,score,blob_col", "'a',1.5,NULL")
	require.NoError(t, err)

	rs, err := store.Tables.Select(ctx, "mixed", "", 10)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "label", "score", "blob_col"}, rs.Columns)
	require.Len(t, rs.Rows, 1)
	require.Equal(t, []string{"1", "a", "1.5", "NULL"}, rs.Rows[0])
}

func TestTableSelectHonorsConditionAndLimit(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Tables.Create(ctx, "nums", "n INTEGER"))
	for i := 0; i < 5; i++ {
		_, err := store.Tables.Insert(ctx, "nums", "n", "1")
		require.NoError(t, err)
	}

	rs, err := store.Tables.Select(ctx, "nums", "n = 1", 3)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 3)
}

func TestQueryCollectsArbitraryStatement(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	rs, err := store.Tables.Query(ctx, "SELECT 1 AS one, 'x' AS label")
	require.NoError(t, err)
	require.Equal(t, []string{"one", "label"}, rs.Columns)
	require.Equal(t, [][]string{{"1", "x"}}, rs.Rows)
}

func TestQueryMissingTableFails(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)

	_, err := store.Tables.Query(context.Background(), "SELECT * FROM missing_table")
	require.Error(t, err)
}

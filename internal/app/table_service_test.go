package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nkwalker/agentdb/internal/storage"
)

func TestValidIdentifier(t *testing.T) {
	t.Parallel()

	valid := []string{"users", "t1", "a", "my_table", "Table_2"}
	for _, name := range valid {
		require.Truef(t, ValidIdentifier(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "1table", "_hidden", "has space", "semi;colon", "dash-ed", "123"}
	for _, name := range invalid {
		require.Falsef(t, ValidIdentifier(name), "expected %q to be invalid", name)
	}
}

func TestIsProtectedCaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"notes", "NOTES", "Key_Value_Store", "table_registry", "SQLITE_MASTER"} {
		require.Truef(t, IsProtected(name), "expected %q to be protected", name)
	}
	require.False(t, IsProtected("users"))
}

func TestCreateRejectsInvalidName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	err := svc.Create(context.Background(), "1bad", "id INTEGER")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestCreateRejectsReservedNameBeforeTouchingStore(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	err := svc.Create(ctx, "notes", "id INTEGER")
	require.ErrorIs(t, err, ErrReservedName)

	// The pre-existing system table must be untouched and unregistered.
	_, err = store.Registry.Get(ctx, "notes")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "t1", "id INTEGER PRIMARY KEY"))
	err := svc.Create(ctx, "t1", "id INTEGER PRIMARY KEY")
	require.ErrorIs(t, err, ErrTableExists)
}

func TestCreateThenDescribe(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "t1", "id INTEGER PRIMARY KEY, name TEXT"))

	columns, err := svc.Describe(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	require.Equal(t, "id", columns[0].Name)
	require.True(t, columns[0].PrimaryKey)
	require.Equal(t, "name", columns[1].Name)
	require.False(t, columns[1].PrimaryKey)
}

func TestDescribeMissingTable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Describe(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestListExcludesInternalTables(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "zoo", "id INTEGER PRIMARY KEY AUTOINCREMENT"))
	require.NoError(t, svc.Create(ctx, "bar", "id INTEGER"))

	names, err := svc.List(ctx)
	require.NoError(t, err)
	// Lexicographic, system tables included, sqlite_sequence excluded.
	require.Equal(t, []string{"bar", "key_value_store", "notes", "table_registry", "zoo"}, names)
}

func TestRowOperationsRequireExistingTable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Insert(ctx, "ghost", "a", "1")
	require.ErrorIs(t, err, ErrTableNotFound)
	_, err = svc.Update(ctx, "ghost", "a=1", "a=2")
	require.ErrorIs(t, err, ErrTableNotFound)
	_, err = svc.DeleteRows(ctx, "ghost", "a=1")
	require.ErrorIs(t, err, ErrTableNotFound)
	_, err = svc.Query(ctx, "ghost", "", 10)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestInsertAndQueryRoundTrip(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "t1", "id INTEGER PRIMARY KEY, name TEXT"))

	id, err := svc.Insert(ctx, "t1", "id,name", "1,'a'")
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	rs, err := svc.Query(ctx, "t1", "", 10)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"1", "a"}}, rs.Rows)
}

func TestQueryLimitPassesThrough(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "nums", "n INTEGER"))
	for i := 0; i < 12; i++ {
		_, err := svc.Insert(ctx, "nums", "n", "1")
		require.NoError(t, err)
	}

	rs, err := svc.Query(ctx, "nums", "", 5)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 5)

	// An explicit zero limit selects no rows; negative means unlimited.
	rs, err = svc.Query(ctx, "nums", "", 0)
	require.NoError(t, err)
	require.Empty(t, rs.Rows)

	rs, err = svc.Query(ctx, "nums", "", -1)
	require.NoError(t, err)
	require.Len(t, rs.Rows, 12)
}

func TestUpdateZeroRowsIsNotAnError(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "t1", "id INTEGER, name TEXT"))

	count, err := svc.Update(ctx, "t1", "name='b'", "id=42")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDropProtectedTable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	err := svc.Drop(context.Background(), "Key_Value_Store")
	require.ErrorIs(t, err, ErrSystemTable)
}

func TestDropRemovesTableAndRegistryEntry(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "t1", "id INTEGER"))
	require.NoError(t, svc.Drop(ctx, "t1"))

	_, err := svc.Describe(ctx, "t1")
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = store.Registry.Get(ctx, "t1")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDropMissingTable(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	err := svc.Drop(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestRegisteredListsCreatedTables(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, "b_table", "id INTEGER"))
	require.NoError(t, svc.Create(ctx, "a_table", "id INTEGER"))

	entries, err := svc.Registered(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "a_table", entries[0].TableName)
	require.Equal(t, "b_table", entries[1].TableName)
}

func newTestService(t *testing.T) (*TableService, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "agent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	return NewTableService(store.Tables, store.Registry), store
}

package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(filepath.Join(dir, "nested", "data"))
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(dir, "nested", "data", DBFile)
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	var tables int
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'",
	).Scan(&tables))
	assert.Equal(t, 1, tables)
}

func TestNewStore_ReopenKeepsValues(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "userId", `"ada"`))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	val, ok, err := second.Get(ctx, "userId")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"ada"`, val)
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, ok, err := store.Get(ctx, "resumeData")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "resumeData", `{"skills":[]}`))
	require.NoError(t, store.Set(ctx, "resumeData", `{"skills":[{"category":"Go"}]}`))

	val, ok, err := store.Get(ctx, "resumeData")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"skills":[{"category":"Go"}]}`, val)

	require.NoError(t, store.Delete(ctx, "resumeData"))
	require.NoError(t, store.Delete(ctx, "resumeData"))
	_, ok, err = store.Get(ctx, "resumeData")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	keys := []string{"userId", "apiKey", "skills_chatId", "skills_data"}
	for _, k := range keys {
		require.NoError(t, store.Set(ctx, k, "x"))
	}

	require.NoError(t, store.Clear(ctx))

	for _, k := range keys {
		_, ok, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Set(ctx, "counter", "v"))
		}()
	}
	wg.Wait()

	_, ok, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// Failure paths driven through sqlmock.

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newStoreWithDB(db, "mock.db"), mock
}

func TestStore_GetError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs("userId").
		WillReturnError(errors.New("database is locked"))

	_, _, err := store.Get(context.Background(), "userId")
	assert.ErrorContains(t, err, "getting userId")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetScansRow(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs("apiKey").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`"k"`))

	val, ok, err := store.Get(context.Background(), "apiKey")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"k"`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SetError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO kv").
		WithArgs("userId", `"ada"`, sqlmock.AnyArg()).
		WillReturnError(errors.New("disk I/O error"))

	err := store.Set(context.Background(), "userId", `"ada"`)
	assert.ErrorContains(t, err, "setting userId")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ClearError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM kv").WillReturnError(errors.New("readonly database"))

	err := store.Clear(context.Background())
	assert.ErrorContains(t, err, "clearing store")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MigrateSkipsAppliedVersions(t *testing.T) {
	store, mock := newMockStore(t)
	fsys := fstest.MapFS{
		"001_initial.up.sql":   {Data: []byte("CREATE TABLE kv (key TEXT)")},
		"001_initial.down.sql": {Data: []byte("DROP TABLE kv")},
		"002_extra.up.sql":     {Data: []byte("ALTER TABLE kv ADD COLUMN extra TEXT")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("ALTER TABLE kv ADD COLUMN extra").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(2).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, store.migrate(fsys))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MigrateRollsBackOnFailure(t *testing.T) {
	store, mock := newMockStore(t)
	fsys := fstest.MapFS{"001_initial.up.sql": {Data: []byte("CREATE TABLE kv (key TEXT)")}}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE kv").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err := store.migrate(fsys)
	assert.ErrorContains(t, err, "executing migration 001_initial.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}

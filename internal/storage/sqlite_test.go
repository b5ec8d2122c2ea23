package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteStorage_PutGet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user", []byte(`{"id":1}`)))

	got, err := store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got))

	require.NoError(t, store.Put(ctx, "user", []byte(`{"id":2}`)))
	got, err = store.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2}`, string(got), "put must replace the previous value")
}

func TestSQLiteStorage_GetMissing(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.Get(context.Background(), "user")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_Delete(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user", []byte("x")))
	require.NoError(t, store.Delete(ctx, "user"))

	_, err := store.Get(ctx, "user")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "user"), "deleting twice is fine")
}

func TestSQLiteStorage_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "tally.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Put(ctx, "user", []byte("kept")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	got, err := reopened.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(got))
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.Get(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyString)

	//nolint:staticcheck // exercising the nil guard on purpose
	err = store.Put(nil, "user", nil)
	assert.ErrorIs(t, err, ErrNilContext)

	_, err = NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

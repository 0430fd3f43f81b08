package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	_, _, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	meta, err := store.Save(ctx, "notes", []byte(`{"title":"kickoff"}`), Meta{})
	require.NoError(t, err)
	assert.NotEmpty(t, meta.SnapshotID)

	data, loaded, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"kickoff"}`, string(data))
	assert.Equal(t, meta.SnapshotID, loaded.SnapshotID)
	assert.WithinDuration(t, meta.UpdatedAt, loaded.UpdatedAt, time.Millisecond)
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}

func TestSQLiteStoreUpsertReplacesRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	first, err := store.Save(ctx, "doc", []byte(`{"v":1}`), Meta{})
	require.NoError(t, err)
	second, err := store.Save(ctx, "doc", []byte(`{"v":2}`), Meta{})
	require.NoError(t, err)
	assert.NotEqual(t, first.SnapshotID, second.SnapshotID)

	data, loaded, ok, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(data))
	assert.Equal(t, second.SnapshotID, loaded.SnapshotID)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc"}, keys)
}

func TestSQLiteStoreExtraMetadataRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	_, err := store.Save(ctx, "doc", []byte("{}"), Meta{Extra: map[string]string{"origin": "import"}})
	require.NoError(t, err)

	_, meta, ok, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import", meta.Extra["origin"])
}

func TestSQLiteStoreClock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "docs.db"),
		SQLiteWithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.Save(ctx, "doc", []byte("{}"), Meta{})
	require.NoError(t, err)

	_, meta, ok, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, meta.UpdatedAt.Equal(fixed), "got %v", meta.UpdatedAt)
}

func TestSQLiteStoreDeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	for _, key := range []string{"b", "a", "brandAsset/logo-1"} {
		_, err := store.Save(ctx, key, []byte("{}"), Meta{})
		require.NoError(t, err)
	}

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "brandAsset/logo-1"}, keys)

	require.NoError(t, store.Delete(ctx, "b"))
	require.NoError(t, store.Delete(ctx, "b"), "deleting a missing key is a no-op")

	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "brandAsset/logo-1"}, keys)
}

func TestSQLiteStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	_, err := store.Save(ctx, "bad key", []byte("{}"), Meta{})
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, _, _, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "docs.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = store.Save(ctx, "doc", []byte(`{"v":1}`), Meta{})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	data, _, ok, err := reopened.Load(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":1}`, string(data))
}

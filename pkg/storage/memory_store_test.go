package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, _, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	assert.False(t, ok)

	meta, err := store.Save(ctx, "notes", []byte(`{"title":"kickoff"}`), Meta{})
	require.NoError(t, err)
	assert.NotEmpty(t, meta.SnapshotID)
	assert.False(t, meta.UpdatedAt.IsZero())

	data, loaded, ok, err := store.Load(ctx, "notes")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"kickoff"}`, string(data))
	assert.Equal(t, meta.SnapshotID, loaded.SnapshotID)
}

func TestMemoryStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, key := range []string{"", "spaced key", "emoji🙂", "semi;colon"} {
		_, err := store.Save(ctx, key, []byte("{}"), Meta{})
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
		_, _, _, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
		assert.ErrorIs(t, store.Delete(ctx, key), ErrInvalidKey, "key %q", key)
	}
}

func TestMemoryStoreCopiesDataDefensively(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	payload := []byte(`{"n":1}`)
	_, err := store.Save(ctx, "doc", payload, Meta{})
	require.NoError(t, err)
	payload[2] = 'x'

	data, _, ok, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"n":1}`, string(data))

	data[2] = 'y'
	again, _, _, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, string(again))
}

func TestMemoryStoreDeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, key := range []string{"b", "a", "c"} {
		_, err := store.Save(ctx, key, []byte("{}"), Meta{})
		require.NoError(t, err)
	}

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	require.NoError(t, store.Delete(ctx, "b"))
	require.NoError(t, store.Delete(ctx, "b"), "deleting a missing key is a no-op")

	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestMemoryStoreClockAndCallerMeta(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore(MemoryWithClock(func() time.Time { return fixed }))

	meta, err := store.Save(ctx, "doc", []byte("{}"), Meta{})
	require.NoError(t, err)
	assert.True(t, meta.UpdatedAt.Equal(fixed))

	// Caller-provided fields win over stamping.
	provided := Meta{SnapshotID: "snap-1", UpdatedAt: fixed.Add(time.Hour), Extra: map[string]string{"origin": "import"}}
	meta, err = store.Save(ctx, "doc", []byte("{}"), provided)
	require.NoError(t, err)
	assert.Equal(t, "snap-1", meta.SnapshotID)
	assert.True(t, meta.UpdatedAt.Equal(fixed.Add(time.Hour)))

	_, loaded, ok, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "import", loaded.Extra["origin"])

	// Returned meta is a copy; mutating it must not leak into the store.
	meta.Extra["origin"] = "mutated"
	_, reloaded, _, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "import", reloaded.Extra["origin"])
}

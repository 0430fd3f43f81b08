package brand

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-docstate/pkg/storage"
)

type recordingHook struct {
	mu     sync.Mutex
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHook) recorded() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Event(nil), h.events...)
}

func TestStoreStartsFromDefaultKit(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, storage.NewMemoryStore(), nil)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, DefaultKit(), store.Kit())
}

func TestSetPalettePersistsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	hook := &recordingHook{}

	store, err := NewStore(ctx, backing, Hooks{hook})
	require.NoError(t, err)
	defer store.Close()

	palette := Palette{
		Primary:    "#1f6feb",
		Secondary:  "#0d1117",
		Accent:     "#f778ba",
		Background: "#ffffff",
		Text:       "#0d1117",
	}
	require.NoError(t, store.SetPalette(ctx, palette))
	assert.Equal(t, palette, store.Kit().Palette)

	// The change is persisted immediately, not debounced.
	data, _, ok, err := backing.Load(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	var persisted Kit
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, palette, persisted.Palette)

	events := hook.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, "updated", events[0].Verb)
	assert.Equal(t, ObjectPalette, events[0].ObjectType)
	assert.Equal(t, "brand", events[0].Channel, "the default channel is applied")
	assert.False(t, events[0].OccurredAt.IsZero())
}

func TestSetLogoStoresAssetAndUpdatesKit(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()
	hook := &recordingHook{}

	store, err := NewStore(ctx, backing, Hooks{hook})
	require.NoError(t, err)
	defer store.Close()

	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}
	id, err := store.SetLogo(ctx, "image/png", payload)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, store.Kit().LogoAssetID)

	asset, ok, err := store.Logo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, asset.ID)
	assert.Equal(t, "image/png", asset.MIME)
	assert.Equal(t, payload, asset.Data, "binary data survives the round-trip")

	events := hook.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, ObjectLogo, events[0].ObjectType)
	assert.Equal(t, id, events[0].ObjectID)
	assert.Equal(t, "image/png", events[0].Metadata["mime"])
}

func TestSetLogoRejectsEmptyData(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, storage.NewMemoryStore(), nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SetLogo(ctx, "image/png", nil)
	assert.Error(t, err)
}

func TestLogoMissingOrCorruptBehavesAbsent(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()

	store, err := NewStore(ctx, backing, nil)
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Logo(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no logo set yet")

	id, err := store.SetLogo(ctx, "image/png", []byte{1, 2, 3})
	require.NoError(t, err)

	// Corrupt the asset record; the logo must behave like a missing one.
	_, err = backing.Save(ctx, "brandAsset/"+id, []byte("{{ corrupt"), storage.Meta{})
	require.NoError(t, err)

	_, ok, err = store.Logo(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateKitSurfacesHookErrors(t *testing.T) {
	ctx := context.Background()
	hookErr := errors.New("webhook down")
	failing := HookFunc(func(context.Context, Event) error { return hookErr })

	store, err := NewStore(ctx, storage.NewMemoryStore(), Hooks{failing})
	require.NoError(t, err)
	defer store.Close()

	err = store.UpdateKit(ctx, func(kit Kit) Kit {
		kit.FontFamily = "Space Grotesk"
		return kit
	})
	assert.ErrorIs(t, err, hookErr)
	// The kit change itself still landed.
	assert.Equal(t, "Space Grotesk", store.Kit().FontFamily)
}

func TestOpenWithInvalidPersistedKitFallsBack(t *testing.T) {
	ctx := context.Background()
	backing := storage.NewMemoryStore()

	bad := DefaultKit()
	bad.Palette.Primary = "cornflower blue"
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	_, err = backing.Save(ctx, StorageKey, data, storage.Meta{})
	require.NoError(t, err)

	store, err := NewStore(ctx, backing, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, DefaultKit(), store.Kit(), "a kit failing colour validation degrades to the default")
}

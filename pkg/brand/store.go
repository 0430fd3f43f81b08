package brand

import (
	"context"
	"encoding/json"
	"fmt"

	docstate "github.com/goliatone/go-docstate"
	"github.com/goliatone/go-docstate/pkg/storage"
	"github.com/google/uuid"
)

// Store owns the brand kit document and its assets. Unlike the per-module
// bindings, every successful change is persisted immediately and broadcast
// to subscribed hooks, because open document views restyle on brand changes.
type Store struct {
	binding *docstate.Binding[Kit]
	store   storage.Store
	emitter *Emitter
}

// NewStore opens the brand kit under its well-known key. hooks receive one
// event per successful change; pass nil when nothing subscribes.
func NewStore(ctx context.Context, st storage.Store, hooks Hooks, opts ...docstate.Option[Kit]) (*Store, error) {
	binding, err := docstate.Open(ctx, st, StorageKey, DefaultKit(), KitSchema(), opts...)
	if err != nil {
		return nil, err
	}
	return &Store{
		binding: binding,
		store:   st,
		emitter: NewEmitter(hooks, Config{Enabled: true}),
	}, nil
}

// Kit returns the current brand kit.
func (s *Store) Kit() Kit {
	return s.binding.Value()
}

// UpdateKit applies fn to the kit, persists the result immediately, and
// broadcasts a kit event.
func (s *Store) UpdateKit(ctx context.Context, fn func(Kit) Kit) error {
	if fn == nil {
		return nil
	}
	s.binding.Update(fn)
	if err := s.binding.Save(ctx); err != nil {
		return err
	}
	return s.emitter.Emit(ctx, Event{Verb: "updated", ObjectType: ObjectKit})
}

// SetPalette replaces the palette and broadcasts a palette event.
func (s *Store) SetPalette(ctx context.Context, palette Palette) error {
	s.binding.Update(func(kit Kit) Kit {
		kit.Palette = palette
		return kit
	})
	if err := s.binding.Save(ctx); err != nil {
		return err
	}
	return s.emitter.Emit(ctx, Event{Verb: "updated", ObjectType: ObjectPalette})
}

// SetLogo stores the logo bytes as a new asset, points the kit at it, and
// broadcasts a logo event. The new asset ID is returned.
func (s *Store) SetLogo(ctx context.Context, mime string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("brand: logo data is required")
	}

	asset := Asset{ID: uuid.NewString(), MIME: mime, Data: data}
	encoded, err := json.Marshal(asset)
	if err != nil {
		return "", fmt.Errorf("brand: encode logo asset: %w", err)
	}
	if _, err := s.store.Save(ctx, assetKey(asset.ID), encoded, storage.Meta{}); err != nil {
		return "", fmt.Errorf("brand: store logo asset: %w", err)
	}

	s.binding.Update(func(kit Kit) Kit {
		kit.LogoAssetID = asset.ID
		return kit
	})
	if err := s.binding.Save(ctx); err != nil {
		return "", err
	}

	err = s.emitter.Emit(ctx, Event{
		Verb:       "updated",
		ObjectType: ObjectLogo,
		ObjectID:   asset.ID,
		Metadata:   map[string]any{"mime": mime, "bytes": len(data)},
	})
	return asset.ID, err
}

// Logo returns the current logo asset, or ok=false when none is set.
func (s *Store) Logo(ctx context.Context) (Asset, bool, error) {
	kit := s.binding.Value()
	if kit.LogoAssetID == "" {
		return Asset{}, false, nil
	}

	data, _, ok, err := s.store.Load(ctx, assetKey(kit.LogoAssetID))
	if err != nil {
		return Asset{}, false, fmt.Errorf("brand: load logo asset: %w", err)
	}
	if !ok {
		return Asset{}, false, nil
	}

	var asset Asset
	if err := json.Unmarshal(data, &asset); err != nil {
		// A corrupt asset record behaves like a missing one.
		return Asset{}, false, nil
	}
	return asset, true, nil
}

// Close detaches the underlying binding.
func (s *Store) Close() {
	s.binding.Close()
}

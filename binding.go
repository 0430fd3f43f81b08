package docstate

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/goliatone/go-docstate/layering"
	"github.com/goliatone/go-docstate/pkg/storage"
)

// Binding pairs one storage key with one typed in-memory document. Edits are
// applied in memory immediately and flushed to the store after a debounce
// window, or synchronously through Save. Loads never fail: corrupt, legacy,
// or invalid records degrade to the default document.
type Binding[T any] struct {
	store  storage.Store
	key    string
	schema Schema[T]
	def    T
	cfg    bindingConfig[T]

	mu     sync.Mutex
	value  T
	timer  *time.Timer
	closed bool
}

// Open reads, migrates, and validates the record for key, returning a live
// binding. Programmer errors (missing store, key, or schema) are returned;
// data errors are not — they fall back to defaultValue.
func Open[T any](ctx context.Context, store storage.Store, key string, defaultValue T, schema Schema[T], opts ...Option[T]) (*Binding[T], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if key == "" {
		return nil, ErrEmptyKey
	}
	if schema == nil {
		return nil, ErrNilSchema
	}

	cfg := applyOptions(opts)
	return &Binding[T]{
		store:  store,
		key:    key,
		schema: schema,
		def:    defaultValue,
		cfg:    cfg,
		value:  loadValue(ctx, store, key, defaultValue, schema, cfg),
	}, nil
}

// Read performs a one-shot, best-effort read of key without creating a
// binding: the same decode, migrate, validate, fallback pipeline Open uses.
// Aggregating readers (export, wizard progress) use this to take point-in-time
// snapshots of other modules' documents without touching their live bindings.
func Read[T any](ctx context.Context, store storage.Store, key string, defaultValue T, schema Schema[T], opts ...Option[T]) T {
	if store == nil || key == "" || schema == nil {
		return defaultValue
	}
	return loadValue(ctx, store, key, defaultValue, schema, applyOptions(opts))
}

func loadValue[T any](ctx context.Context, store storage.Store, key string, defaultValue T, schema Schema[T], cfg bindingConfig[T]) T {
	data, _, ok, err := store.Load(ctx, key)
	if err != nil || !ok {
		// A failed read degrades exactly like an absent record.
		return defaultValue
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return defaultValue
	}

	if cfg.migrate != nil {
		raw = any(cfg.migrate(raw))
	}

	value, err := schema.Parse(raw)
	if err != nil {
		return defaultValue
	}
	if cfg.fillDefaults {
		value = layering.Fill(value, defaultValue)
	}
	return value
}

// Key returns the storage key this binding owns.
func (b *Binding[T]) Key() string {
	return b.key
}

// Value returns the current in-memory document. Callers must treat the
// result as read-only; use Update to edit documents containing slices or
// maps.
func (b *Binding[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set replaces the in-memory document and schedules a debounced write. A
// write scheduled inside the debounce window of a pending one supersedes it;
// only the latest document is ever persisted.
func (b *Binding[T]) Set(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.value = value
	b.scheduleLocked()
}

// Update applies fn to the current document, avoiding lost updates when
// several edits land in quick succession.
func (b *Binding[T]) Update(fn func(T) T) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.value = fn(b.value)
	b.scheduleLocked()
}

// Save cancels any pending debounce and writes the current document
// synchronously. The returned error is also reported through the write-error
// handler so explicit-save callers get immediate confirmation either way.
func (b *Binding[T]) Save(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.stopTimerLocked()
	value := b.value
	b.mu.Unlock()

	return b.write(ctx, value, "save")
}

// Close cancels any pending debounce without flushing and detaches the
// binding. An edit made just before Close, with no explicit Save, is dropped;
// the previously persisted record stays unchanged. Persisted bytes are never
// removed.
func (b *Binding[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.stopTimerLocked()
}

func (b *Binding[T]) scheduleLocked() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.cfg.debounce, b.flushDebounced)
}

func (b *Binding[T]) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Binding[T]) flushDebounced() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	value := b.value
	b.mu.Unlock()

	// Write failures on the debounced path never reach caller code; they are
	// reported through the logger and the write-error handler only.
	_ = b.write(context.Background(), value, "debounce")
}

func (b *Binding[T]) write(ctx context.Context, value T, trigger string) error {
	start := time.Now()

	data, err := json.Marshal(value)
	var meta storage.Meta
	if err == nil {
		meta, err = b.store.Save(ctx, b.key, data, storage.Meta{UpdatedAt: b.cfg.now()})
	}

	b.cfg.logger.LogWrite(WriteEvent{
		Key:        b.key,
		Trigger:    trigger,
		Bytes:      len(data),
		SnapshotID: meta.SnapshotID,
		Duration:   time.Since(start),
		Err:        err,
	})
	if err != nil && b.cfg.onWriteError != nil {
		b.cfg.onWriteError(b.key, err)
	}
	return err
}

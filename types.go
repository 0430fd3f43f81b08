package docstate

import (
	"time"
)

// DefaultDebounce is the delay between an in-memory update and its persisted
// write when no override is configured.
const DefaultDebounce = 300 * time.Millisecond

// Schema validates an arbitrary decoded value and returns the typed document.
// Parse must never panic on malformed shapes; it returns FieldErrors (or a
// plain error for engine failures) instead.
type Schema[T any] interface {
	Parse(raw any) (T, error)
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc[T any] func(raw any) (T, error)

// Parse implements Schema.
func (f SchemaFunc[T]) Parse(raw any) (T, error) {
	if f == nil {
		var zero T
		return zero, ErrNilSchema
	}
	return f(raw)
}

// Migration upgrades a legacy-shaped decoded value into the current document
// shape. Implementations must be total: any input, including nil, empty maps,
// and bare arrays, yields a structurally valid document, using empty-string
// and empty-slice defaults for fields that cannot be recovered. Migrations
// must also be idempotent.
type Migration[T any] func(raw any) T

// Option configures a Binding.
type Option[T any] func(*bindingConfig[T])

type bindingConfig[T any] struct {
	migrate      Migration[T]
	debounce     time.Duration
	logger       Logger
	onWriteError func(key string, err error)
	fillDefaults bool
	now          func() time.Time
}

func applyOptions[T any](opts []Option[T]) bindingConfig[T] {
	cfg := bindingConfig[T]{
		debounce: DefaultDebounce,
		logger:   noopLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMigration registers a migration applied to decoded values before
// validation.
func WithMigration[T any](migrate Migration[T]) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.migrate = migrate
	}
}

// WithDebounce overrides the debounce window between an update and its
// persisted write. Non-positive values are ignored.
func WithDebounce[T any](window time.Duration) Option[T] {
	return func(cfg *bindingConfig[T]) {
		if window > 0 {
			cfg.debounce = window
		}
	}
}

// WithLogger attaches a write-event logger to the binding.
func WithLogger[T any](logger Logger) Option[T] {
	return func(cfg *bindingConfig[T]) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithWriteErrorHandler registers a handler invoked whenever a persisted
// write fails. The handler is the notification surface for quota-style
// failures; in-memory state stays intact.
func WithWriteErrorHandler[T any](handler func(key string, err error)) Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.onWriteError = handler
	}
}

// WithDefaultsFill fills zero-valued fields of a loaded document from the
// default document, so records persisted before a field existed pick up its
// default without a migration.
func WithDefaultsFill[T any]() Option[T] {
	return func(cfg *bindingConfig[T]) {
		cfg.fillDefaults = true
	}
}

// WithClock overrides the timestamp source recorded in write metadata.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(cfg *bindingConfig[T]) {
		if now != nil {
			cfg.now = now
		}
	}
}

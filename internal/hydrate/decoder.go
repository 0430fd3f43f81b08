package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Context identifies the persisted document being decoded.
type Context struct {
	Key string
}

// PreHook lets callers normalise the raw payload before decoding. Migrations
// that reshape legacy maps run here.
type PreHook func(Context, map[string]any) (map[string]any, error)

// PostHook lets callers adjust or validate the decoded document.
type PostHook[T any] func(Context, *T) error

// DecoderOption configures a Decoder instance.
type DecoderOption[T any] func(*Decoder[T])

// Decoder converts decoded storage payloads into strongly typed documents.
type Decoder[T any] struct {
	preHooks     []PreHook
	postHooks    []PostHook[T]
	configureDec []func(*json.Decoder)
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithStrictFields invokes json.Decoder.DisallowUnknownFields so documents
// carrying unexpected keys fail decoding instead of silently dropping them.
func WithStrictFields[T any]() DecoderOption[T] {
	return func(d *Decoder[T]) {
		d.configureDec = append(d.configureDec, func(dec *json.Decoder) {
			dec.DisallowUnknownFields()
		})
	}
}

// WithDecoderConfig allows callers to configure the json.Decoder directly.
func WithDecoderConfig[T any](configure func(*json.Decoder)) DecoderOption[T] {
	return func(d *Decoder[T]) {
		if configure != nil {
			d.configureDec = append(d.configureDec, configure)
		}
	}
}

func NewDecoder[T any](opts ...DecoderOption[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode converts payload into the target document applying configured hooks.
// Unlike DecodeAny it requires an object-shaped payload.
func (d *Decoder[T]) Decode(ctx Context, payload map[string]any) (T, error) {
	var zero T

	if payload == nil {
		return zero, fmt.Errorf("hydrate: payload is nil for key %q", ctx.Key)
	}

	current, err := clonePayload(payload)
	if err != nil {
		return zero, fmt.Errorf("hydrate: clone payload for key %q: %w", ctx.Key, err)
	}

	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		next, err := hook(ctx, current)
		if err != nil {
			return zero, fmt.Errorf("hydrate: pre-hook for key %q failed: %w", ctx.Key, err)
		}
		if next != nil {
			current = next
		}
	}

	return d.decodeValue(ctx, current)
}

// DecodeAny accepts any JSON-shaped payload, including top-level arrays, and
// decodes it into the target document. Pre-hooks are skipped for non-object
// payloads since they operate on maps.
func (d *Decoder[T]) DecodeAny(ctx Context, payload any) (T, error) {
	if asMap, ok := payload.(map[string]any); ok {
		return d.Decode(ctx, asMap)
	}

	var zero T
	if payload == nil {
		return zero, fmt.Errorf("hydrate: payload is nil for key %q", ctx.Key)
	}
	return d.decodeValue(ctx, payload)
}

func (d *Decoder[T]) decodeValue(ctx Context, payload any) (T, error) {
	var zero T

	buffer, err := json.Marshal(payload)
	if err != nil {
		return zero, fmt.Errorf("hydrate: marshal payload for key %q: %w", ctx.Key, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(buffer))
	for _, configure := range d.configureDec {
		if configure != nil {
			configure(decoder)
		}
	}
	var result T
	if err := decoder.Decode(&result); err != nil {
		return zero, fmt.Errorf("hydrate: decode key %q: %w", ctx.Key, err)
	}

	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &result); err != nil {
			return zero, fmt.Errorf("hydrate: post-hook for key %q failed: %w", ctx.Key, err)
		}
	}

	return result, nil
}

func clonePayload(payload map[string]any) (map[string]any, error) {
	buffer, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(buffer, &out); err != nil {
		return nil, err
	}
	return out, nil
}

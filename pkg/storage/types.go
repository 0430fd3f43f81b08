package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidKey is returned for keys a store cannot address safely.
var ErrInvalidKey = errors.New("storage: invalid key")

// Meta is storage-owned metadata kept alongside each record for audit and
// provenance. It never influences decoding.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store moves opaque document bytes for a single key.
type Store interface {
	Load(ctx context.Context, key string) (data []byte, meta Meta, ok bool, err error)
	Save(ctx context.Context, key string, data []byte, meta Meta) (Meta, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// stampMeta fills SnapshotID and UpdatedAt when the caller left them empty.
func stampMeta(meta Meta, now func() time.Time) Meta {
	if meta.SnapshotID == "" {
		meta.SnapshotID = uuid.NewString()
	}
	if meta.UpdatedAt.IsZero() {
		if now == nil {
			now = time.Now
		}
		meta.UpdatedAt = now()
	}
	return meta
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-' || r == ':' || r == '/':
		default:
			return false
		}
	}
	return true
}

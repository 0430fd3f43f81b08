package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileStore persists one JSON envelope file per key under a directory. The
// envelope carries the record metadata next to the raw document bytes so a
// record survives round-trips without a database.
type FileStore struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

type fileEnvelope struct {
	Meta     Meta            `json:"meta"`
	Document json.RawMessage `json:"document"`
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// FileWithClock overrides the timestamp source used for Meta stamping.
func FileWithClock(now func() time.Time) FileStoreOption {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewFileStore creates dir when missing and returns a store rooted there.
func NewFileStore(dir string, opts ...FileStoreOption) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory %q: %w", dir, err)
	}
	s := &FileStore{dir: dir, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *FileStore) Load(_ context.Context, key string) ([]byte, Meta, bool, error) {
	if !validKey(key) {
		return nil, Meta{}, false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, Meta{}, false, nil
	}
	if err != nil {
		return nil, Meta{}, false, fmt.Errorf("storage: read %q: %w", key, err)
	}

	var envelope fileEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		// A mangled envelope is treated like a corrupt record: the caller's
		// decode-failure fallback applies, so surface the bytes as-is.
		return raw, Meta{}, true, nil
	}
	return []byte(envelope.Document), cloneMeta(envelope.Meta), true, nil
}

func (s *FileStore) Save(_ context.Context, key string, data []byte, meta Meta) (Meta, error) {
	if !validKey(key) {
		return Meta{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	stamped := stampMeta(cloneMeta(meta), s.now)
	document := json.RawMessage(data)
	if !json.Valid(data) {
		// Store non-JSON payloads as a JSON string so the envelope stays
		// decodable; Load returns the document bytes either way.
		encoded, err := json.Marshal(string(data))
		if err != nil {
			return Meta{}, fmt.Errorf("storage: encode document for %q: %w", key, err)
		}
		document = encoded
	}

	payload, err := json.MarshalIndent(fileEnvelope{Meta: stamped, Document: document}, "", "  ")
	if err != nil {
		return Meta{}, fmt.Errorf("storage: encode envelope for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return Meta{}, fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return Meta{}, fmt.Errorf("storage: write %q: %w", key, err)
	}
	return cloneMeta(stamped), nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, decodeFileName(strings.TrimSuffix(name, ".json")))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, encodeFileName(key)+".json")
}

// Keys may contain '/' (asset-style keys); '~' is outside the valid key
// alphabet, so the mapping is collision-free.
func encodeFileName(key string) string {
	return strings.ReplaceAll(key, "/", "~")
}

func decodeFileName(name string) string {
	return strings.ReplaceAll(name, "~", "/")
}

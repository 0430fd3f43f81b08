package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a minimal in-memory Store implementation intended for tests
// and examples. It makes no persistence assumptions beyond whole-record
// overwrite per key.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time
}

type memoryRecord struct {
	data []byte
	meta Meta
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// MemoryWithClock overrides the timestamp source used for Meta stamping.
func MemoryWithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		records: map[string]memoryRecord{},
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, Meta, bool, error) {
	if !validKey(key) {
		return nil, Meta{}, false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, Meta{}, false, nil
	}
	data := make([]byte, len(record.data))
	copy(data, record.data)
	return data, cloneMeta(record.meta), true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, data []byte, meta Meta) (Meta, error) {
	if !validKey(key) {
		return Meta{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	stamped := stampMeta(cloneMeta(meta), s.now)
	stored := make([]byte, len(data))
	copy(stored, data)

	s.mu.Lock()
	s.records[key] = memoryRecord{data: stored, meta: stamped}
	s.mu.Unlock()
	return cloneMeta(stamped), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.Lock()
	delete(s.records, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

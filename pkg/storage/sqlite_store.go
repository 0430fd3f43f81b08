package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every record in a single documents table. One database
// file holds the whole persistence namespace.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
    key TEXT PRIMARY KEY,
    data BLOB NOT NULL,
    snapshot_id TEXT NOT NULL,
    updated_at INTEGER NOT NULL,
    extra TEXT
);
`

// SQLiteStoreOption configures a SQLiteStore.
type SQLiteStoreOption func(*SQLiteStore)

// SQLiteWithClock overrides the timestamp source used for Meta stamping.
func SQLiteWithClock(now func() time.Time) SQLiteStoreOption {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSQLiteStore opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string, opts ...SQLiteStoreOption) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("storage: database path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: set journal_mode: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, Meta, bool, error) {
	if !validKey(key) {
		return nil, Meta{}, false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		data       []byte
		snapshotID string
		updatedAt  int64
		extra      sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT data, snapshot_id, updated_at, extra FROM documents WHERE key = ?", key,
	).Scan(&data, &snapshotID, &updatedAt, &extra)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, Meta{}, false, nil
	}
	if err != nil {
		return nil, Meta{}, false, fmt.Errorf("storage: load %q: %w", key, err)
	}

	meta := Meta{
		SnapshotID: snapshotID,
		UpdatedAt:  time.UnixMilli(updatedAt).UTC(),
	}
	if extra.Valid && extra.String != "" {
		// Extra is best-effort audit data; unreadable values are dropped
		// rather than failing the load.
		_ = json.Unmarshal([]byte(extra.String), &meta.Extra)
	}
	return data, meta, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, data []byte, meta Meta) (Meta, error) {
	if !validKey(key) {
		return Meta{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	stamped := stampMeta(cloneMeta(meta), s.now)
	var extra any
	if len(stamped.Extra) > 0 {
		encoded, err := json.Marshal(stamped.Extra)
		if err != nil {
			return Meta{}, fmt.Errorf("storage: encode extra for %q: %w", key, err)
		}
		extra = string(encoded)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents (key, data, snapshot_id, updated_at, extra)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
    data = excluded.data,
    snapshot_id = excluded.snapshot_id,
    updated_at = excluded.updated_at,
    extra = excluded.extra`,
		key, data, stamped.SnapshotID, stamped.UpdatedAt.UnixMilli(), extra,
	)
	if err != nil {
		return Meta{}, fmt.Errorf("storage: save %q: %w", key, err)
	}
	return cloneMeta(stamped), nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT key FROM documents ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("storage: list keys: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	return keys, nil
}

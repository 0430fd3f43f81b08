// Package storage defines the key/value persistence contract backing
// document bindings, plus the bundled implementations.
//
// Responsibilities:
//   - Store only moves opaque bytes for a single key; decoding, migration,
//     and validation stay in the docstate package.
//   - Every Save replaces the whole record for its key. There are no partial
//     patches and no cross-key transactions: keys are independent documents.
//   - Meta is storage-owned audit metadata. Implementations mint a fresh
//     SnapshotID (UUID) and stamp UpdatedAt when the caller leaves them empty.
//
// Implementations:
//   - MemoryStore: for tests and examples; defensive copies, no durability.
//   - FileStore: one JSON envelope file per key under a directory.
//   - SQLiteStore: a single documents table via modernc.org/sqlite.
//
// Concurrency: one writer per key is the intended model (a single binding
// owns a key), but all bundled stores are safe for concurrent use because
// debounce timers fire on their own goroutines.
package storage

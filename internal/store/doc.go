// Package store provides local key-value persistence for statekeep's state
// containers.
//
// It contains concrete implementations of domain.KVStore. All methods are
// concurrency-safe via internal locking. Stored data typically lives under
// the user's configured home directory.
//
// The package includes:
//   - One JSON file per key (FileStore)
//   - A single SQLite table (SQLiteStore)
//   - An in-process map (MemoryStore)
//   - A passphrase-sealed wrapper around any of the above (EncryptedStore)
//   - A change watcher for FileStore directories (Watch)
package store

package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"statekeep/internal/domain"
)

// FileStore persists each key as <dir>/<key>.json.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir. The directory must exist.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// Read returns the stored bytes for key, or nil if the key was never written.
func (s *FileStore) Read(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(s.Path(key))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return b, nil
}

// Write replaces the stored bytes for key.
func (s *FileStore) Write(key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(s.Path(key), data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := removeFile(s.Path(key)); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Compile-time assertion that FileStore implements domain.KVStore.
var _ domain.KVStore = (*FileStore)(nil)

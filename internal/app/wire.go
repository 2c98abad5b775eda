package app

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"statekeep/internal/domain"
	"statekeep/internal/services/counter"
	"statekeep/internal/services/user"
	"statekeep/internal/store"
)

// ErrWatchUnsupported is returned by WatchDir for backends without a
// watchable directory.
var ErrWatchUnsupported = errors.New("watch requires the file backend")

// Wire bundles the store and state containers for the CLI.
type Wire struct {
	Config  Config
	Log     *zap.Logger
	Store   domain.KVStore
	Counter *counter.Service
	User    *user.Service

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. The caller must Close it.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	w := &Wire{Config: cfg, Log: log}

	var kv domain.KVStore
	switch cfg.Backend {
	case BackendFile:
		kv = store.NewFileStore(cfg.Home)
	case BackendSQLite:
		s, err := store.NewSQLiteStore(filepath.Join(cfg.Home, store.SQLiteFilename))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		w.closers = append(w.closers, s.Close)
		kv = s
	case BackendMemory:
		kv = store.NewMemoryStore()
	}
	if cfg.Passphrase != "" {
		kv = store.NewEncryptedStore(kv, cfg.Passphrase)
	}
	w.Store = kv

	log.Debug("storage ready", zap.String("backend", cfg.Backend), zap.Bool("encrypted", cfg.Passphrase != ""))

	// State containers hydrate on construction.
	w.Counter = counter.New(kv, log.Named("counter"))
	w.User = user.New(kv, log.Named("user"))
	return w, nil
}

// WatchDir returns the directory holding the file backend's state files.
func (w *Wire) WatchDir() (string, error) {
	if w.Config.Backend != BackendFile {
		return "", ErrWatchUnsupported
	}
	return w.Config.Home, nil
}

// ClearStorage removes both containers' stored snapshots.
func (w *Wire) ClearStorage() error {
	return errors.Join(
		w.Counter.Container().ClearStorage(),
		w.User.Container().ClearStorage(),
	)
}

// Close releases backend resources and flushes the logger.
func (w *Wire) Close() error {
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c())
	}
	_ = w.Log.Sync()
	return errors.Join(errs...)
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Rapid writes to the same key are reported once they settle.
const (
	watchDebounce = 100 * time.Millisecond
	watchTick     = 25 * time.Millisecond
)

// Watch reports keys whose files in dir are created, replaced or removed,
// until ctx is cancelled. fn runs on the watching goroutine. Temp files
// written by FileStore are ignored.
func Watch(ctx context.Context, dir string, log *zap.Logger, fn func(key string)) error {
	if log == nil {
		log = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn("close watcher", zap.Error(err))
		}
	}()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Debug("watching directory", zap.String("dir", dir))

	ticker := time.NewTicker(watchTick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			key, ok := keyFromFile(event.Name)
			if !ok {
				continue
			}
			log.Debug("storage event", zap.String("key", key), zap.String("op", event.Op.String()))
			pending[key] = time.Now()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", zap.Error(err))

		case now := <-ticker.C:
			for key, at := range pending {
				if now.Sub(at) < watchDebounce {
					continue
				}
				delete(pending, key)
				fn(key)
			}
		}
	}
}

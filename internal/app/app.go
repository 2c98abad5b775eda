package app

import (
	"fmt"
	"os"

	"statekeep/internal/logging"
)

// Open resolves cfg against the home directory and its config file, builds
// the logger and returns the wired application.
func Open(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		home, err := DefaultHome()
		if err != nil {
			return nil, err
		}
		cfg.Home = home
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	fc, err := LoadFileConfig(cfg.Home)
	if err != nil {
		return nil, err
	}
	cfg = cfg.Merge(fc)

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return NewWire(cfg, log)
}

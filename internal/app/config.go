package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backends selectable with --backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ConfigFilename is the optional config file read from the home directory.
const ConfigFilename = "config.yaml"

// ErrUnknownBackend is returned for a backend name outside the supported set.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // state directory, e.g. $HOME/.statekeep
	Backend    string // file, sqlite or memory; defaults to file
	Passphrase string // optional; seals stored values when set
	LogLevel   string // debug, info, warn or error
}

// FileConfig mirrors config.yaml. Every field is optional.
type FileConfig struct {
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
}

// DefaultHome returns ~/.statekeep.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".statekeep"), nil
}

// LoadFileConfig reads home/config.yaml. A missing file yields a zero FileConfig.
func LoadFileConfig(home string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(filepath.Join(home, ConfigFilename))
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", ConfigFilename, err)
	}
	return fc, nil
}

// Merge fills fields left empty in c from fc, then applies built-in defaults.
func (c Config) Merge(fc FileConfig) Config {
	if c.Backend == "" {
		c.Backend = fc.Backend
	}
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.LogLevel == "" {
		c.LogLevel = fc.LogLevel
	}
	return c
}

// Validate checks the fields that NewWire depends on.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.Backend != BackendMemory && c.Home == "" {
		return errors.New("home directory required")
	}
	return nil
}

// Package storage persists small string values across runs. It plays the
// role a browser's local storage plays for a web editor: one flat
// namespace of keys, read at startup and written after user actions.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors.
var (
	ErrNotFound      = errors.New("key not found")
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrClosed        = errors.New("store is closed")
)

// Supported drivers.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Store is a persistent key/value namespace.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	Close() error
}

// Open opens the store for driver at path. The parent directory of path is
// created when missing. The memory driver ignores path.
func Open(driver, path string) (Store, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		driver = DriverBolt
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverBolt, DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	if path == "" {
		return nil, fmt.Errorf("storage path is required for driver %q", driver)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	if driver == DriverSQLite {
		return OpenSQLite(path)
	}
	return OpenBolt(path)
}

// DefaultPath returns the per-user location of the store file for driver.
func DefaultPath(driver string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	name := "mdark.db"
	if strings.EqualFold(driver, DriverSQLite) {
		name = "mdark.sqlite"
	}
	return filepath.Join(dir, "mdark", name), nil
}

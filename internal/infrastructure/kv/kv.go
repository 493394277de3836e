// Package kv provides the durable key-value storage the catalog lives in.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrops-br/storefront/internal/infrastructure/kv/boltkv"
	"github.com/mrops-br/storefront/internal/infrastructure/kv/memkv"
	"github.com/mrops-br/storefront/internal/infrastructure/kv/sqlitekv"
)

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Store is a synchronous string key-value store with no expiry
type Store interface {
	// Get reports ok=false when the key was never set
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

var (
	_ Store = (*boltkv.Store)(nil)
	_ Store = (*sqlitekv.Store)(nil)
	_ Store = (*memkv.Store)(nil)
)

// Open opens the store for the given driver. path is ignored by the memory driver.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return memkv.New(), nil
	case DriverBolt, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	if driver == DriverSQLite {
		return sqlitekv.Open(path)
	}
	return boltkv.Open(path)
}

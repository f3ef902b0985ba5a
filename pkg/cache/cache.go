// Package cache stores rendered artifacts keyed by a hash of the layout they
// were rendered from.
//
// Layouts are cheap and always recomputed; only the serialized output (SVG,
// PNG, PDF, JSON) is cached. Backends:
//
//   - [FileCache]: one JSON envelope per key under a directory (CLI default)
//   - [RedisCache]: shared cache for several serve instances
//   - [MongoCache]: TTL collection for deployments that already run MongoDB
//   - [NullCache]: disables caching
//
// Use [Open] to pick a backend from configuration.
package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// DefaultTTL is how long artifacts live when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. Misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string        `toml:"backend"`
	URL     string        `toml:"url"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// Open connects the configured backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		c, err := NewFileCache(filepath.Join(dir, "artifacts"))
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (valid: file, redis, mongo, none)", cfg.Backend)
}

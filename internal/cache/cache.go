// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores generated summaries between requests. Two backends
// are provided: a local SQLite file and a shared Redis server.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/paper-brief/pkg/types"
)

// DefaultTTL is how long an entry stays valid when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Store is a string key/value cache with expiry.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Close() error
}

// Open builds the backend selected by cfg.Backend. It returns a nil Store
// and no error when caching is disabled.
func Open(ctx context.Context, cfg types.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case types.CacheNone, "":
		return nil, nil
	case types.CacheSQLite:
		s, err := NewSQLite(cfg.SQLitePath, cfg.TTL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.CacheRedis:
		r, err := NewRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q: use none, sqlite, or redis", cfg.Backend)
	}
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

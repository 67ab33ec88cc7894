package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the port for the session-scoped caches (student pages, the
// missing-quizzes advisory and finished reports). Every entry carries a TTL;
// nothing outlives an operator session.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete removes every listed key and does not fail when one is absent.
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

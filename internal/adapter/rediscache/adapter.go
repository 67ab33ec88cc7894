// Package rediscache implements domain.Cache on Redis.
package rediscache

import (
	"context"
	"errors"
	"time"

	"quiz-extensions/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Adapter implements the domain.Cache interface using a Redis client.
type Adapter struct {
	client *redis.Client
}

// New wraps a connected *redis.Client.
func New(client *redis.Client) domain.Cache {
	return &Adapter{client: client}
}

// Get translates redis.Nil to domain.ErrCacheMiss.
func (a *Adapter) Get(ctx context.Context, key string) (string, error) {
	val, err := a.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrCacheMiss
		}
		return "", err
	}
	return val, nil
}

// Set stores value under key. A zero expiration is rejected so nothing
// outlives the session it belongs to.
func (a *Adapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if expiration <= 0 {
		return domain.CacheError("cache: expiration must be positive")
	}
	return a.client.Set(ctx, key, value, expiration).Err()
}

func (a *Adapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return a.client.Del(ctx, keys...).Err()
}

// Ping checks the health of the Redis server.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

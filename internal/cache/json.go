package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-extensions/internal/domain"
)

// GetJSON decodes the entry at key into dst. It reports false on a miss.
func GetJSON(ctx context.Context, c domain.Cache, key string, dst interface{}) (bool, error) {
	raw, err := c.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v at key as JSON.
func SetJSON(ctx context.Context, c domain.Cache, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

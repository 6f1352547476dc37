package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"route-planner-service/internal/ports"
)

const trafficKeyPrefix = "traffic:"

// Redis backed, TTL-bounded cache for traffic conditions keyed by
// bounding box. Keys are expected to be consistent (already normalized)
// by the caller.
type RedisTrafficCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTrafficCache(client *redis.Client, ttl time.Duration) *RedisTrafficCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisTrafficCache{client: client, ttl: ttl}
}

// Get fetches cached conditions. A miss returns (nil, nil).
func (c *RedisTrafficCache) Get(ctx context.Context, key string) (*ports.TrafficConditions, error) {
	if c.client == nil {
		return nil, errors.New("traffic cache: client is nil")
	}

	if key == "" {
		return nil, errors.New("get traffic cache: key must not be empty")
	}

	raw, err := c.client.Get(ctx, trafficKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get traffic cache: %w", err)
	}

	var conditions ports.TrafficConditions
	if err := json.Unmarshal(raw, &conditions); err != nil {
		return nil, fmt.Errorf("get traffic cache: decode cached value: %w", err)
	}

	return &conditions, nil
}

// Put stores conditions under the cache TTL.
func (c *RedisTrafficCache) Put(ctx context.Context, key string, conditions ports.TrafficConditions) error {
	if c.client == nil {
		return errors.New("traffic cache: client is nil")
	}

	if key == "" {
		return errors.New("put traffic cache: key must not be empty")
	}

	raw, err := json.Marshal(conditions)
	if err != nil {
		return fmt.Errorf("put traffic cache: encode value: %w", err)
	}

	if err := c.client.Set(ctx, trafficKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put traffic cache: %w", err)
	}

	return nil
}

package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error matching
	"strings"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// DefaultTTL is how long cached feeds and listings live
const DefaultTTL = 60 * time.Second

// Cache stores JSON values in Redis. A Cache with a nil client is disabled:
// reads miss and writes are dropped.
type Cache struct {
	rdb *redis.Client // Redis client, nil when caching is off
	ttl time.Duration // Expiry applied by Set
}

// NewCache returns a cache backed by rdb
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL // Fall back to the default expiry
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Enabled reports whether a Redis client is configured
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil // Caching disabled
	}
	val, err := c.rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// Set stores value in Redis with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// Delete removes keys from Redis
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil // Nothing to do
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// DeletePrefix removes every key starting with prefix
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if !c.Enabled() {
		return nil // Caching disabled
	}
	var keys []string                                      // Keys matching the prefix
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator() // Walk matching keys
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err // Scan failed
	}
	return c.Delete(ctx, keys...)
}

// FeedKey is the cache key of a user's rendered feed
func FeedKey(username string) string {
	return "feed:user:" + strings.ToLower(username)
}

// PaymentsPrefix is shared by every cached payment listing
const PaymentsPrefix = "admin:payments:"

// PaymentsKey is the cache key of a payment listing built from its query parameters
func PaymentsKey(params ...string) string {
	return PaymentsPrefix + strings.Join(params, ":")
}

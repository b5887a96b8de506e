// Package cache stores extracted profiles and gap reports in Redis, keyed by
// the hash of the normalized résumé text.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jonathan/career-navigator/internal/types"
)

const keyPrefix = "career-navigator"

// Cache wraps a Redis client with typed get/set helpers
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the Redis instance at url and verifies it responds.
func New(ctx context.Context, url string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Close closes the underlying client
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks if Redis connection is alive
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// ProfileKey is the key under which the profile for a text hash is stored.
func ProfileKey(textHash string) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, textHash)
}

// GapKey is the key for a gap report of a text hash against a target.
func GapKey(textHash string, target types.Target) string {
	return fmt.Sprintf("%s:gap:%s:%s", keyPrefix, textHash, target.String())
}

// GetProfile returns the cached profile, or nil on a miss.
func (c *Cache) GetProfile(ctx context.Context, textHash string) (*types.Profile, error) {
	var p types.Profile
	ok, err := c.get(ctx, ProfileKey(textHash), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

// SetProfile caches a profile
func (c *Cache) SetProfile(ctx context.Context, textHash string, p *types.Profile) error {
	return c.set(ctx, ProfileKey(textHash), p)
}

// GetGapReport returns the cached report, or nil on a miss.
func (c *Cache) GetGapReport(ctx context.Context, textHash string, target types.Target) (*types.GapReport, error) {
	var r types.GapReport
	ok, err := c.get(ctx, GapKey(textHash, target), &r)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

// SetGapReport caches a gap report
func (c *Cache) SetGapReport(ctx context.Context, textHash string, r *types.GapReport) error {
	return c.set(ctx, GapKey(textHash, r.Target), r)
}

// Invalidate drops every entry for a text hash
func (c *Cache) Invalidate(ctx context.Context, textHash string) error {
	keys, err := c.client.Keys(ctx, fmt.Sprintf("%s:*:%s*", keyPrefix, textHash)).Result()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}

func (c *Cache) get(ctx context.Context, key string, v any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil is returned for a missing key
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

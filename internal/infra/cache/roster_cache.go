// Package cache keeps the last roster snapshot in Redis so board refreshes do
// not each hit the caller store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/call-screener/internal/entity"
)

const DefaultKey = "screener:roster"

type RosterCache struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

// NewRosterCache stores the whole roster under one key. A zero ttl keeps the
// snapshot until the next Store or Invalidate.
func NewRosterCache(client *redis.Client, ttl time.Duration) *RosterCache {
	if client == nil {
		panic("cache: redis client cannot be nil")
	}
	return &RosterCache{redis: client, key: DefaultKey, ttl: ttl}
}

// WithKey namespaces the snapshot, e.g. per show.
func (c *RosterCache) WithKey(key string) *RosterCache {
	c.key = key
	return c
}

// Load returns the cached roster, or ok=false when there is none.
func (c *RosterCache) Load(ctx context.Context) ([]*entity.Caller, bool, error) {
	data, err := c.redis.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: load roster: %w", err)
	}

	var roster []*entity.Caller
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, false, fmt.Errorf("cache: decode roster: %w", err)
	}
	return roster, true, nil
}

// Store replaces the snapshot in one SET, so readers never see a partial roster.
func (c *RosterCache) Store(ctx context.Context, roster []*entity.Caller) error {
	if roster == nil {
		roster = []*entity.Caller{}
	}
	data, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("cache: encode roster: %w", err)
	}
	if err := c.redis.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: store roster: %w", err)
	}
	return nil
}

func (c *RosterCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("cache: invalidate roster: %w", err)
	}
	return nil
}

func (c *RosterCache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

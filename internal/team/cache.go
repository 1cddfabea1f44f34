package team

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Kunal9797/artissales-sub001/internal/users"
)

const defaultRosterKey = "team:roster:active-reps"

// RosterCache caches the active-rep roster with an injected TTL and explicit
// invalidation. Each instance owns its key, so tests and parallel deployments
// can construct isolated caches instead of sharing process-global state.
type RosterCache struct {
	directory users.Directory
	client    *redis.Client
	ttl       time.Duration
	key       string
	group     singleflight.Group
}

// Option customises a RosterCache.
type Option func(*RosterCache)

// WithKey overrides the redis key the roster is stored under.
func WithKey(key string) Option {
	return func(c *RosterCache) {
		if key != "" {
			c.key = key
		}
	}
}

// NewRosterCache wires the directory with a redis-backed cache. A nil client
// degrades to pass-through loads.
func NewRosterCache(directory users.Directory, client *redis.Client, ttl time.Duration, opts ...Option) *RosterCache {
	cache := &RosterCache{
		directory: directory,
		client:    client,
		ttl:       ttl,
		key:       defaultRosterKey,
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// ActiveRepIDs returns the cached roster, loading it from the directory on a
// miss. Concurrent misses collapse into one directory call.
func (c *RosterCache) ActiveRepIDs(ctx context.Context) ([]string, error) {
	if c == nil || c.directory == nil {
		return nil, errors.New("team: roster cache not configured")
	}
	if c.client == nil {
		return c.directory.ListActiveRepIDs(ctx)
	}

	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err == nil {
		var ids []string
		if err := json.Unmarshal(payload, &ids); err == nil {
			return ids, nil
		}
		// Corrupt entry: fall through and reload.
	} else if !errors.Is(err, redis.Nil) {
		return nil, err
	}

	result, err, _ := c.group.Do(c.key, func() (interface{}, error) {
		ids, err := c.directory.ListActiveRepIDs(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
			return nil, err
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Invalidate drops the cached roster so the next read reloads it.
func (c *RosterCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}

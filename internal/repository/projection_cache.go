package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kaufy/projection-engine/internal/domain"
)

const projectionKeyPrefix = "projection:"

// ProjectionCacheKey derives the cache key of an input. Decimals marshal without
// trailing zeros, so equal inputs written differently share a key.
func ProjectionCacheKey(input domain.ProjectionInput) (string, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encode projection input: %w", err)
	}
	return fmt.Sprintf("%s%016x", projectionKeyPrefix, xxhash.Sum64(payload)), nil
}

type redisProjectionCache struct {
	client *redis.Client
}

func NewRedisProjectionCache(client *redis.Client) ProjectionCache {
	return &redisProjectionCache{client: client}
}

func (c *redisProjectionCache) Get(ctx context.Context, key string) ([]domain.YearlySnapshot, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snapshots []domain.YearlySnapshot
	if err := json.Unmarshal(val, &snapshots); err != nil {
		return nil, false, fmt.Errorf("decode cached projection %s: %w", key, err)
	}

	return snapshots, true, nil
}

func (c *redisProjectionCache) Set(ctx context.Context, key string, snapshots []domain.YearlySnapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("encode projection %s: %w", key, err)
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

type memoryEntry struct {
	snapshots []domain.YearlySnapshot
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryProjectionCache keeps projections in process, for the CLI and tests.
type MemoryProjectionCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryProjectionCache() *MemoryProjectionCache {
	return &MemoryProjectionCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryProjectionCache) Get(_ context.Context, key string) ([]domain.YearlySnapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return nil, false, nil
	}

	return append([]domain.YearlySnapshot(nil), entry.snapshots...), true, nil
}

func (c *MemoryProjectionCache) Set(_ context.Context, key string, snapshots []domain.YearlySnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}

	entry := memoryEntry{snapshots: append([]domain.YearlySnapshot(nil), snapshots...)}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	c.entries[key] = entry

	return nil
}

// Len reports how many entries are stored. Expired entries linger until the next Get or Set touches them.
func (c *MemoryProjectionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package enrich

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores AI responses by content hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CacheKey hashes the kind of request together with its input text.
func CacheKey(kind, text string) string {
	sum := sha256.Sum256([]byte(kind + ":" + text))
	return hex.EncodeToString(sum[:])
}

const defaultCacheTTL = 30 * 24 * time.Hour

type cacheEntry struct {
	Value string    `json:"value"`
	At    time.Time `json:"at"`
}

type RedisCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{Client: client, Prefix: "lightcat:ai:", TTL: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}

	var e cacheEntry
	if err := json.Unmarshal(val, &e); err != nil {
		return "", false, fmt.Errorf("cache decode: %w", err)
	}
	return e.Value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	b, err := json.Marshal(cacheEntry{Value: value, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	if err := c.Client.Set(ctx, c.Prefix+key, b, c.TTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// MemoryCache is a process-local Cache for runs without Redis.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: map[string]string{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zaheerkhan4077/YTBNICHES/pkg/cachekey"
)

// CacheService memoizes upstream API responses in Redis, keyed by
// (operation, argument tuple) with a fixed TTL. If Redis is unavailable the
// service degrades to a no-op and every lookup is a miss.
type CacheService struct {
	rdb    *redis.Client
	ttl    time.Duration
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService connects to Redis. If redisURL is empty or the connection
// fails, caching is disabled rather than failing startup.
func NewCacheService(redisURL string, ttl time.Duration) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, response caching disabled")
		return &CacheService{ttl: ttl}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, response caching disabled: %v", redisURL, err)
		return &CacheService{ttl: ttl}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, response caching disabled: %v", err)
		return &CacheService{ttl: ttl}
	}

	log.Println("redis: connected, response caching enabled")
	return &CacheService{rdb: rdb, ttl: ttl}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Get unmarshals a cached value into out, reporting whether the key was
// present. Cache errors are treated as misses.
func (c *CacheService) Get(ctx context.Context, key string, out any) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s: %v", key, err)
		}
		c.misses.Add(1)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("cache: corrupt entry %s: %v", key, err)
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	return true
}

// Set stores a value under key for the configured TTL. Failures are logged,
// never propagated; the pipeline works without the cache.
func (c *CacheService) Set(ctx context.Context, key string, value any) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}

// InvalidateAll deletes every cached response (force-refresh). Returns the
// number of keys removed.
func (c *CacheService) InvalidateAll(ctx context.Context) (int, error) {
	if c.rdb == nil {
		return 0, nil
	}

	var removed int
	iter := c.rdb.Scan(ctx, 0, cachekey.Prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, nil
}

// Hits returns the total cache hits since startup.
func (c *CacheService) Hits() int64 { return c.hits.Load() }

// Misses returns the total cache misses since startup.
func (c *CacheService) Misses() int64 { return c.misses.Load() }

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores encoded browse results in Redis under a key prefix.
// A nil client disables it; lookups then always miss.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a cache writing keys as "<prefix>:<key>" that expire
// after ttl.  A non-positive ttl falls back to five minutes.
func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(k string) string { return c.prefix + ":" + k }

// Get returns the cached value for k.  Misses and Redis errors both report
// false; errors other than a miss are logged.
func (c *RedisCache) Get(ctx context.Context, k string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("ticketdesk: cache get %s: %v", k, err)
		}
		return nil, false
	}
	return bs, true
}

// Set stores val under k.  Failures are logged and otherwise ignored.
func (c *RedisCache) Set(ctx context.Context, k string, val []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.SetEx(ctx, c.key(k), val, c.ttl).Err(); err != nil {
		log.Printf("ticketdesk: cache set %s: %v", k, err)
	}
}

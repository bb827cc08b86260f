// README: Rate lookup cache with Redis and in-process backends.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	rateKeyPrefix = "farely:toll_rate:"
	// memoryCacheMaxEntries bounds the in-process cache; sets beyond it are dropped.
	memoryCacheMaxEntries = 50000
)

// CacheEntry records a hit or a confirmed miss for one (from, to) pair.
type CacheEntry struct {
	Found bool `json:"found"`
	Rate  Rate `json:"rate"`
}

type RateCache interface {
	Get(ctx context.Context, key string) (CacheEntry, bool, error)
	Set(ctx context.Context, key string, e CacheEntry, ttl time.Duration) error
}

// CachedLookup serves rows and confirmed misses from cache. Lookup errors are not cached,
// and a failing cache falls through to the underlying lookup.
type CachedLookup struct {
	next  RateLookup
	cache RateCache
	ttl   time.Duration
}

func NewCachedLookup(next RateLookup, cache RateCache, ttl time.Duration) *CachedLookup {
	return &CachedLookup{next: next, cache: cache, ttl: ttl}
}

func (c *CachedLookup) Lookup(ctx context.Context, from, to string) (Rate, error) {
	key := rateKey(from, to)
	e, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Printf("pricing: rate cache get %s: %v", key, err)
	} else if ok {
		if !e.Found {
			return Rate{}, ErrRateNotFound
		}
		return e.Rate, nil
	}

	r, err := c.next.Lookup(ctx, from, to)
	switch {
	case errors.Is(err, ErrRateNotFound):
		c.store(ctx, key, CacheEntry{})
		return Rate{}, err
	case err != nil:
		return Rate{}, err
	}
	c.store(ctx, key, CacheEntry{Found: true, Rate: r})
	return r, nil
}

func (c *CachedLookup) store(ctx context.Context, key string, e CacheEntry) {
	if err := c.cache.Set(ctx, key, e, c.ttl); err != nil {
		log.Printf("pricing: rate cache set %s: %v", key, err)
	}
}

func rateKey(from, to string) string {
	return rateKeyPrefix + url.QueryEscape(from) + ":" + url.QueryEscape(to)
}

type RedisCache struct {
	redis *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{redis: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (CacheEntry, bool, error) {
	val, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return CacheEntry{}, false, nil
	}
	if err != nil {
		return CacheEntry{}, false, err
	}
	var e CacheEntry
	if err := json.Unmarshal(val, &e); err != nil {
		return CacheEntry{}, false, err
	}
	return e, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, e CacheEntry, ttl time.Duration) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, key, b, ttl).Err()
}

type memoryEntry struct {
	entry   CacheEntry
	expires time.Time
}

type MemoryCache struct {
	mu  sync.RWMutex
	m   map[string]memoryEntry
	now func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (CacheEntry, bool, error) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(v.expires) {
		return CacheEntry{}, false, nil
	}
	return v.entry, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, e CacheEntry, ttl time.Duration) error {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.m[key]; !exists && len(c.m) >= memoryCacheMaxEntries {
		for k, v := range c.m {
			if !now.Before(v.expires) {
				delete(c.m, k)
			}
		}
		if len(c.m) >= memoryCacheMaxEntries {
			return nil
		}
	}
	c.m[key] = memoryEntry{entry: e, expires: now.Add(ttl)}
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

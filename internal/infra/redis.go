// README: Redis client initialization for the rate cache.
package infra

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis keeps timeouts short; a slow cache is bypassed rather than waited on.
func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

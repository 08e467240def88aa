package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyIdemOrderCreate maps an Idempotency-Key header to the stored
	// create-order response.
	KeyIdemOrderCreate = "idem:order:create:%s"

	TTLIdempotency = 24 * time.Hour
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// Ping reports whether the server answers within timeout.
func Ping(ctx context.Context, rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs Cache with a Redis instance so averages survive restarts and
// are shared across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	obs    Observer
}

func NewRedis(ctx context.Context, addr string, db int, ttl time.Duration, obs Observer) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client, ttl: ttl, obs: obs}, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors both read as a miss; the caller
		// recomputes either way.
		if c.obs != nil {
			c.obs.CacheMiss()
		}
		return nil, false
	}
	if c.obs != nil {
		c.obs.CacheHit()
	}
	return val, true
}

func (c *Redis) Set(ctx context.Context, key string, value []byte) {
	_ = c.client.Set(ctx, key, value, c.ttl).Err()
}

func (c *Redis) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, key).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores values as plain redis strings under a key prefix
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis creates a redis backend. The connection is verified with PING.
func NewRedis(ctx context.Context, opts *redis.Options, prefix string) (*RedisKV, error) {
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return &RedisKV{rdb: rdb, prefix: prefix}, nil
}

// Name returns the backend identifier
func (r *RedisKV) Name() string {
	return "redis"
}

// Get returns the value stored under key
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the value stored under key
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close closes the redis connection
func (r *RedisKV) Close() error {
	return r.rdb.Close()
}

func init() {
	Register("redis", func(opts Options) (KV, error) {
		return NewRedis(context.Background(), &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}, opts.RedisPrefix)
	})
}

package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
)

// RedisKV stores each key as a plain Redis string under an optional prefix.
type RedisKV struct {
	client *redis.Client
	prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.WithContext(ctx).Ping().Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.WithContext(ctx).Get(r.prefix + key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.WithContext(ctx).Set(r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.WithContext(ctx).Del(r.prefix + key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Atomic buffers writes and sends them in a single MULTI/EXEC. Reads inside
// fn are not isolated from other writers.
func (r *RedisKV) Atomic(ctx context.Context, fn func(KV) error) error {
	staged := newStagedKV(r.Get)
	if err := fn(staged); err != nil {
		return err
	}
	if len(staged.order) == 0 {
		return nil
	}
	_, err := r.client.WithContext(ctx).TxPipelined(func(pipe redis.Pipeliner) error {
		staged.each(func(key string, w stagedWrite) {
			if w.deleted {
				pipe.Del(r.prefix + key)
				return
			}
			pipe.Set(r.prefix+key, w.value, 0)
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis commit: %w", err)
	}
	return nil
}

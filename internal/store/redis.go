package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseLock deletes the lock key only if it still holds our token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0`)

// renewLock extends the lock lease only if it still holds our token.
var renewLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)

// RedisBackend keeps the document under a single key. Writers serialize on a
// lease lock stored next to it.
type RedisBackend struct {
	rdb      *redis.Client
	key      string
	lockTTL  time.Duration
	retryGap time.Duration
}

// NewRedisBackend returns a backend for key. The lock lease expires after
// lockTTL so a crashed writer cannot block others forever; a live writer
// renews it every lockTTL/3 until it unlocks.
func NewRedisBackend(rdb *redis.Client, key string, lockTTL time.Duration) *RedisBackend {
	return &RedisBackend{rdb: rdb, key: key, lockTTL: lockTTL, retryGap: 50 * time.Millisecond}
}

func (b *RedisBackend) Name() string { return "redis:" + b.key }

func (b *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", b.key, err)
	}
	return data, nil
}

func (b *RedisBackend) Write(ctx context.Context, data []byte) error {
	if err := b.rdb.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("SET %s: %w", b.key, err)
	}
	return nil
}

func (b *RedisBackend) Lock(ctx context.Context) (func(), error) {
	lockKey := b.key + ":lock"
	token := uuid.NewString()
	for {
		ok, err := b.rdb.SetNX(ctx, lockKey, token, b.lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("SETNX %s: %w", lockKey, err)
		}
		if ok {
			stop := keepAlive(b.lockTTL/3, func(ctx context.Context) error {
				return renewLock.Run(ctx, b.rdb, []string{lockKey}, token, b.lockTTL.Milliseconds()).Err()
			})
			return func() {
				stop()
				releaseLock.Run(context.Background(), b.rdb, []string{lockKey}, token)
			}, nil
		}
		if err := waitRetry(ctx, b.retryGap); err != nil {
			return nil, err
		}
	}
}

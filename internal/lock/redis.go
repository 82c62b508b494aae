package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	defaultRetryInterval = 25 * time.Millisecond
	redisKeyPrefix       = "courtbook:lock:"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease taken over by another instance is left alone.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker takes SET NX PX leases so several server instances sharing one
// database serialise on the same keys. A lease expires after ttl even if the
// holder dies without releasing it.
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	newToken      func() string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		newToken:      uuid.NewString,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, keys []string) (func(), error) {
	keys = normalize(keys)
	token := l.newToken()
	held := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := l.lock(ctx, redisKeyPrefix+key, token); err != nil {
			l.unlockAll(held, token)
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		held = append(held, redisKeyPrefix+key)
	}
	return func() { l.unlockAll(held, token) }, nil
}

func (l *RedisLocker) lock(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		timer := time.NewTimer(l.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) unlockAll(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		err := l.client.Eval(ctx, releaseScript, []string{keys[i]}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", keys[i]).Msg("Failed to release lock lease")
		}
	}
}

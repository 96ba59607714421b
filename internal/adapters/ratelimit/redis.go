package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/versus/api/internal/core/ports"
)

const redisKeyPrefix = "ratelimit:"

// allowScript increments the window counter and sets its expiry in one
// atomic step. Running both in the script means a counter can never be left
// behind without a TTL if the process dies between the two commands.
var allowScript = redis.NewScript(`
	local count = redis.call("INCR", KEYS[1])
	if count == 1 then
		redis.call("PEXPIRE", KEYS[1], ARGV[1])
	end
	return count
`)

// RedisStore keeps the fixed-window counters in Redis with a TTL, so the
// limit holds across multiple server instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ ports.RateLimiter = (*RedisStore)(nil)

func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := redisKeyPrefix + key

	count, err := allowScript.Run(ctx, s.client, []string{redisKey}, window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return count <= int64(limit), nil
}

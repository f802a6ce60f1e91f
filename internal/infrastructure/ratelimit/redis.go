package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrScript bumps the counter and starts the window expiry in one round
// trip, so a crash between INCR and EXPIRE can never leave a key that
// counts forever.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisStore is a Redis-backed CounterStore. Counters are shared across
// instances, so the limit holds for the whole deployment.
type RedisStore struct {
	scripter  redis.Scripter
	keyPrefix string
}

// NewRedisStore creates a counter store on an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		scripter:  client,
		keyPrefix: "ratelimit:",
	}
}

// Incr implements CounterStore. The increment and the window expiry run
// as a single Lua script on the server.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := s.keyPrefix + key

	count, err := incrScript.Run(ctx, s.scripter, []string{redisKey}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	return count, nil
}

// Ensure RedisStore implements CounterStore
var _ CounterStore = (*RedisStore)(nil)

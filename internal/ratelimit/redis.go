package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript atomically checks the counter and only increments
// when the budget allows. GET → check → INCR as separate commands would
// race between gateway instances.
const fixedWindowScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local windowSec = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", key) or "0")
if current >= limit then
    local ttl = redis.call("TTL", key)
    if ttl < 0 then
        ttl = windowSec
    end
    return {0, current, ttl}
end

local newVal = redis.call("INCR", key)
if newVal == 1 then
    redis.call("EXPIRE", key, windowSec)
end
local ttl = redis.call("TTL", key)
return {1, newVal, ttl}
`

// RedisLimiter is a fixed-window counter shared across gateway instances.
type RedisLimiter struct {
	client *redis.Client
	policy Policy
	script *redis.Script
}

// NewRedisLimiter creates a Redis-backed limiter for the given policy.
func NewRedisLimiter(client *redis.Client, policy Policy) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		policy: policy,
		script: redis.NewScript(fixedWindowScript),
	}
}

// Policy returns the enforced policy.
func (r *RedisLimiter) Policy() Policy { return r.policy }

// Allow counts the request against the key's current window.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", r.policy.Name, key)
	windowSec := int(r.policy.Window.Seconds())

	res, err := r.script.Run(ctx, r.client,
		[]string{redisKey}, r.policy.Max, windowSec).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}

	allowed := toInt64(res[0]) == 1
	count := toInt64(res[1])
	ttl := time.Duration(toInt64(res[2])) * time.Second

	if !allowed {
		return Decision{Allowed: false, RetryAfter: ttl}, nil
	}
	remaining := r.policy.Max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: true, Remaining: remaining}, nil
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

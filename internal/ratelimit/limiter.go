// Package ratelimit caps outbound send rates with Redis-backed counters.
// The check-and-increment runs as a Lua script so concurrent dispatch
// workers never race between the read and the increment.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limits defines the per-second and per-minute send caps for a transport.
type Limits struct {
	PerSecond int
	PerMinute int
}

// Limiter provides atomic rate limiting using Redis Lua scripts.
type Limiter struct {
	redis  *redis.Client
	limits Limits
	script *redis.Script
	now    func() time.Time
}

// The script checks both windows before incrementing, so a denied request
// consumes no quota.
const checkAndIncrementScript = `
local secondKey = KEYS[1]
local minuteKey = KEYS[2]
local increment = tonumber(ARGV[1])
local secondLimit = tonumber(ARGV[2])
local minuteLimit = tonumber(ARGV[3])

local secCurrent = tonumber(redis.call("GET", secondKey) or "0")
local minCurrent = tonumber(redis.call("GET", minuteKey) or "0")

if secCurrent + increment > secondLimit then
    return {0, 1}
end
if minCurrent + increment > minuteLimit then
    return {0, 2}
end

local newSec = redis.call("INCRBY", secondKey, increment)
if newSec == increment then
    redis.call("EXPIRE", secondKey, 2)
end

local newMin = redis.call("INCRBY", minuteKey, increment)
if newMin == increment then
    redis.call("EXPIRE", minuteKey, 120)
end

return {1, 0}
`

// NewLimiter creates a limiter over an existing Redis client.
func NewLimiter(client *redis.Client, limits Limits) *Limiter {
	return &Limiter{
		redis:  client,
		limits: limits,
		script: redis.NewScript(checkAndIncrementScript),
		now:    time.Now,
	}
}

// NewLimiterFromURL connects to Redis and creates a limiter.
func NewLimiterFromURL(redisURL string, limits Limits) (*Limiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewLimiter(client, limits), nil
}

// CheckAndIncrement atomically reserves count sends. When denied, waitTime
// tells the caller how long to back off before retrying.
func (l *Limiter) CheckAndIncrement(ctx context.Context, count int) (allowed bool, waitTime time.Duration, err error) {
	now := l.now()

	secondKey := fmt.Sprintf("sendrate:sec:%d", now.Unix())
	minuteKey := fmt.Sprintf("sendrate:min:%d", now.Unix()/60)

	result, err := l.script.Run(ctx, l.redis,
		[]string{secondKey, minuteKey},
		count,
		l.limits.PerSecond,
		l.limits.PerMinute,
	).Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check failed: %w", err)
	}

	if result[0].(int64) == 1 {
		return true, 0, nil
	}

	switch result[1].(int64) {
	case 1:
		waitTime = time.Second
	case 2:
		waitTime = time.Duration(60-now.Second()) * time.Second
	}
	return false, waitTime, nil
}

// Wait blocks until count sends are allowed or the context is done.
func (l *Limiter) Wait(ctx context.Context, count int) error {
	for {
		allowed, waitTime, err := l.CheckAndIncrement(ctx, count)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// Client exposes the underlying Redis connection so callers can reuse it
// instead of dialing a second one.
func (l *Limiter) Client() *redis.Client {
	return l.redis
}

// Close releases the underlying Redis connection.
func (l *Limiter) Close() error {
	return l.redis.Close()
}

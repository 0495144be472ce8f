package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills a per-subject bucket by elapsed time and takes
// one token if available, atomically. Returns {allowed, remaining, retry_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_per_ms = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local ttl_ms = tonumber(ARGV[5])

local data = redis.call("HMGET", key, "tokens", "timestamp")
local tokens = tonumber(data[1])
local timestamp = tonumber(data[2])

if tokens == nil then
  tokens = capacity
end
if timestamp == nil then
  timestamp = now_ms
end

local elapsed = math.max(0, now_ms - timestamp)
tokens = math.min(capacity, tokens + (elapsed * refill_per_ms))

local allowed = 0
local retry_after_ms = 0
if tokens >= requested then
  tokens = tokens - requested
  allowed = 1
else
  retry_after_ms = math.ceil((requested - tokens) / refill_per_ms)
end

redis.call("HMSET", key, "tokens", tokens, "timestamp", now_ms)
redis.call("PEXPIRE", key, ttl_ms)

return {allowed, math.floor(tokens), retry_after_ms}
`)

type Config struct {
	// Capacity is the bucket size: how many render submissions a subject
	// may burst before refill pacing kicks in.
	Capacity int
	// Window is the time it takes an empty bucket to refill completely.
	Window    time.Duration
	KeyPrefix string
}

type Decision struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	RetryAfter time.Duration
}

// RedisTokenBucket rate-limits render submissions per subject. The bucket
// state lives in Redis so all API replicas share one budget.
type RedisTokenBucket struct {
	client      redis.UniversalClient
	capacity    int64
	refillPerMS float64
	ttl         time.Duration
	keyPrefix   string
	now         func() time.Time
}

func NewRedisTokenBucket(client redis.UniversalClient, cfg Config) (*RedisTokenBucket, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive")
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("window must be positive")
	}

	keyPrefix := strings.TrimSpace(cfg.KeyPrefix)
	if keyPrefix == "" {
		keyPrefix = "cardframe:ratelimit"
	}

	windowMS := cfg.Window.Milliseconds()
	if windowMS < 1 {
		windowMS = 1
	}

	return &RedisTokenBucket{
		client:      client,
		capacity:    int64(cfg.Capacity),
		refillPerMS: float64(cfg.Capacity) / float64(windowMS),
		ttl:         2 * cfg.Window,
		keyPrefix:   keyPrefix,
		now:         time.Now,
	}, nil
}

// Allow takes one token from subject's bucket. Blank subjects share the
// anonymous budget.
func (l *RedisTokenBucket) Allow(ctx context.Context, subject string) (Decision, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "anonymous"
	}

	raw, err := tokenBucketScript.Run(
		ctx,
		l.client,
		[]string{l.keyPrefix + ":" + subject},
		l.capacity,
		l.refillPerMS,
		l.now().UTC().UnixMilli(),
		1,
		l.ttl.Milliseconds(),
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("run token bucket script: %w", err)
	}

	return l.parseDecision(raw)
}

func (l *RedisTokenBucket) parseDecision(raw any) (Decision, error) {
	values, ok := raw.([]any)
	if !ok || len(values) != 3 {
		return Decision{}, fmt.Errorf("invalid token bucket response")
	}

	fields := make([]int64, len(values))
	for i, value := range values {
		n, err := toInt64(value)
		if err != nil {
			return Decision{}, fmt.Errorf("parse token bucket field %d: %w", i, err)
		}
		fields[i] = n
	}

	return Decision{
		Allowed:    fields[0] == 1,
		Limit:      l.capacity,
		Remaining:  fields[1],
		RetryAfter: time.Duration(fields[2]) * time.Millisecond,
	}, nil
}

func toInt64(in any) (int64, error) {
	switch v := in.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", in)
	}
}

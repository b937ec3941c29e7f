package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ministry/config"
	"ministry/internal/domain/service"

	goredis "github.com/redis/go-redis/v9"
)

const limiterTimeout = 2 * time.Second

var fixedWindowScript = goredis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// fixedWindowLimiter limits requests per key in a fixed time window shared by all replicas.
type fixedWindowLimiter struct {
	client *goredis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewRateLimiter returns the Redis limiter when rate limiting is enabled and Redis is
// configured, and nil otherwise. A nil limiter disables the middleware.
func NewRateLimiter(client *goredis.Client, cfg *config.Config, logger *slog.Logger) service.RateLimiter {
	if client == nil || !cfg.RateLimit.Enabled {
		return nil
	}

	return newFixedWindowLimiter(client, keyPrefix(cfg.Redis)+":ratelimit", cfg.RateLimit.PerMinute, time.Minute, logger)
}

func newFixedWindowLimiter(client *goredis.Client, prefix string, limit int, window time.Duration, logger *slog.Logger) *fixedWindowLimiter {
	return &fixedWindowLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// Allow returns true when key is within quota. Redis failures fail closed.
func (l *fixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}

	windowMs := l.window.Milliseconds()
	if windowMs <= 0 || l.limit <= 0 {
		return true
	}

	slot := l.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(ctx, limiterTimeout)
	defer cancel()

	count, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		l.logger.WarnContext(ctx, "Rate limiter unavailable, rejecting request", slog.Any("error", err))

		return false
	}

	return count <= int64(l.limit)
}

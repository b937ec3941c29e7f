// Package redis provides the Redis-backed token denylist and rate limiter.
package redis

import (
	"context"
	"log/slog"
	"strings"

	"ministry/config"
	"ministry/internal/domain/lifecycle"
	"ministry/internal/errors"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewClient returns a Redis client, or nil when redis.addr is empty.
// Consumers fall back to no-op behavior on a nil client.
func NewClient(params Params) (*goredis.Client, error) {
	addr := strings.TrimSpace(params.Config.Redis.Addr)
	if addr == "" {
		params.Logger.Info("Redis not configured, token denylist and rate limiting disabled")

		return nil, nil //nolint:nilnil
	}

	opts, err := clientOptions(params.Config.Redis)
	if err != nil {
		return nil, err
	}

	client := goredis.NewClient(opts)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}

// clientOptions accepts either host:port or a redis:// URL.
func clientOptions(cfg config.RedisConfig) (*goredis.Options, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := goredis.ParseURL(addr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid redis url")
		}
		if cfg.Password != "" {
			opts.Password = cfg.Password
		}

		return opts, nil
	}

	return &goredis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

func keyPrefix(cfg config.RedisConfig) string {
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		return "ministry"
	}

	return prefix
}

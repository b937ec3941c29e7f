package redis

import (
	"context"
	"time"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

const dedupTimeout = 2 * time.Second

type deduplicator struct {
	client *goredis.Client
	prefix string
}

// NewDeduplicator returns a Redis SETNX deduplicator, or one that claims
// every key when Redis is not configured.
func NewDeduplicator(client *goredis.Client, cfg *config.Config) service.Deduplicator {
	if client == nil {
		return noopDeduplicator{}
	}

	return &deduplicator{client: client, prefix: keyPrefix(cfg.Redis) + ":dedup:"}
}

func (d *deduplicator) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, dedupTimeout)
	defer cancel()

	claimed, err := d.client.SetNX(ctx, d.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to claim message")
	}

	return claimed, nil
}

func (d *deduplicator) Release(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, dedupTimeout)
	defer cancel()

	return errors.Wrap(d.client.Del(ctx, d.prefix+key).Err(), "failed to release message")
}

type noopDeduplicator struct{}

func (noopDeduplicator) Claim(context.Context, string, time.Duration) (bool, error) { return true, nil }

func (noopDeduplicator) Release(context.Context, string) error { return nil }

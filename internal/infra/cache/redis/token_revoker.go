package redis

import (
	"context"
	"time"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

const revokerTimeout = 3 * time.Second

// tokenRevoker stores revoked token ids in Redis until they would have expired anyway.
type tokenRevoker struct {
	client *goredis.Client
	prefix string
}

// NewTokenRevoker builds a Redis-backed denylist, or a no-op one without Redis.
func NewTokenRevoker(client *goredis.Client, cfg *config.Config) service.TokenRevoker {
	if client == nil {
		return noopRevoker{}
	}

	return &tokenRevoker{client: client, prefix: keyPrefix(cfg.Redis)}
}

// Revoke marks a token id as revoked for ttl.
func (r *tokenRevoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 || tokenID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, revokerTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	return nil
}

// IsRevoked checks if the token id is revoked.
func (r *tokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, revokerTimeout)
	defer cancel()

	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check token revocation")
	}

	return n > 0, nil
}

func (r *tokenRevoker) key(tokenID string) string {
	return r.prefix + ":revoked:" + tokenID
}

type noopRevoker struct{}

func (noopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }

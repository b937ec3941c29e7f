package service

import (
	"context"
	"time"
)

// Deduplicator remembers message ids so an at-least-once queue does not
// trigger the same side effect twice.
type Deduplicator interface {
	// Claim records key for ttl and reports whether it was not already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so that a redelivery is processed again.
	Release(ctx context.Context, key string) error
}

package service

import (
	"context"
	"io"
)

// BlobStorage stores uploaded files and returns their public URL.
type BlobStorage interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// HealthProbe reports whether the primary store is reachable.
type HealthProbe interface {
	Ping(ctx context.Context) error
}

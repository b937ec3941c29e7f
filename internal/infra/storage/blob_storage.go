// Package storage writes uploaded resource files to a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"ministry/config"
	"ministry/internal/domain/service"
	"ministry/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	// Bucket drivers selected by the storage.bucketUrl scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultBucketURL = "mem://"

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the bucket named by storage.bucketUrl and closes it on shutdown.
func New(params Params) (service.BlobStorage, error) {
	bucketURL := strings.TrimSpace(params.Config.Storage.BucketURL)
	if bucketURL == "" {
		params.Logger.Warn("storage.bucketUrl not set, uploads are kept in memory")
		bucketURL = defaultBucketURL
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStorage(bucket, params.Config.Storage.PublicBaseURL), nil
}

// NewBlobStorage wraps an open bucket. Returned URLs are publicBaseURL joined with the object key.
func NewBlobStorage(bucket *blob.Bucket, publicBaseURL string) service.BlobStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload streams r into the bucket under key.
func (s *blobStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return "", errors.New("storage key must not be empty")
	}

	// Cancelling the writer's context before Close discards a partial object.
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(writeCtx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrapf(err, "failed to open writer for %s", key)
	}
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()

		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to commit %s", key)
	}

	return s.publicURL(key), nil
}

func (s *blobStorage) publicURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	if s.publicBaseURL == "" {
		return "/" + escaped
	}

	return s.publicBaseURL + "/" + escaped
}

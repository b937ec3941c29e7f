package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_Upload(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStorage(bucket, "https://cdn.example.org/uploads/")
	ctx := context.Background()

	fileURL, err := store.Upload(ctx, "resources/2026/study guide.pdf", "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/uploads/resources/2026/study%20guide.pdf", fileURL)

	data, err := bucket.ReadAll(ctx, "resources/2026/study guide.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	attrs, err := bucket.Attributes(ctx, "resources/2026/study guide.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", attrs.ContentType)
}

func TestBlobStorage_UploadNormalizesKey(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := NewBlobStorage(bucket, "")

	fileURL, err := store.Upload(context.Background(), "../../etc/passwd", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/etc/passwd", fileURL)

	_, err = store.Upload(context.Background(), "", "text/plain", strings.NewReader("x"))
	assert.Error(t, err)
}

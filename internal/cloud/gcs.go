package cloud

import (
	"context"
	"fmt"
	"io"
	"time"

	gstorage "cloud.google.com/go/storage"
)

type gcsBackend struct {
	bucket    string
	newWriter func(ctx context.Context, key string) io.WriteCloser
	signURL   func(key string, expiry time.Duration) (string, error)
}

func newGCSBackend(ctx context.Context, bucket string) (*gcsBackend, error) {
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	handle := client.Bucket(bucket)
	return &gcsBackend{
		bucket: bucket,
		newWriter: func(ctx context.Context, key string) io.WriteCloser {
			return handle.Object(key).NewWriter(ctx)
		},
		signURL: func(key string, expiry time.Duration) (string, error) {
			return handle.SignedURL(key, &gstorage.SignedURLOptions{
				Method:  "GET",
				Expires: time.Now().Add(expiry),
			})
		},
	}, nil
}

func (b *gcsBackend) Upload(ctx context.Context, key string, r io.Reader, _ int64) error {
	w := b.newWriter(ctx, key)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs upload %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs finalize %s: %w", key, err)
	}
	return nil
}

func (b *gcsBackend) ShareURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	url, err := b.signURL(key, expiry)
	if err != nil {
		return "", fmt.Errorf("gcs sign %s: %w", key, err)
	}
	return url, nil
}

// Package cloud uploads captured artifacts (screenshots, recordings, log
// captures) to object storage. Supported targets: s3:// and gs:// URLs.
package cloud

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Backend abstracts one object storage provider.
type Backend interface {
	// Upload writes the content from r to the given key.
	Upload(ctx context.Context, key string, r io.Reader, size int64) error

	// ShareURL generates a time-limited download URL for the given key.
	// Backends without presigning support return an error.
	ShareURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// Target is a parsed upload destination.
type Target struct {
	Scheme string // "s3" or "gs"
	Bucket string
	Prefix string
}

// ParseURL extracts scheme, bucket, and prefix from an upload URL.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("empty upload URL")
	}

	var t Target
	var rest string
	switch {
	case strings.HasPrefix(raw, "s3://"):
		t.Scheme = "s3"
		rest = strings.TrimPrefix(raw, "s3://")
	case strings.HasPrefix(raw, "gs://"):
		t.Scheme = "gs"
		rest = strings.TrimPrefix(raw, "gs://")
	default:
		return Target{}, fmt.Errorf("unsupported scheme in %q: expected s3:// or gs://", raw)
	}

	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		t.Bucket = rest
	} else {
		t.Bucket = rest[:idx]
		t.Prefix = strings.TrimSuffix(rest[idx+1:], "/")
	}
	if t.Bucket == "" {
		return Target{}, fmt.Errorf("empty bucket in %q", raw)
	}
	return t, nil
}

// NewBackend creates a Backend for the target.
func NewBackend(ctx context.Context, t Target) (Backend, error) {
	switch t.Scheme {
	case "s3":
		return newS3Backend(ctx, t.Bucket)
	case "gs":
		return newGCSBackend(ctx, t.Bucket)
	default:
		return nil, fmt.Errorf("unsupported scheme %q", t.Scheme)
	}
}

// Key joins the target prefix with a local file's base name.
func (t Target) Key(localPath string) string {
	return path.Join(t.Prefix, filepath.Base(localPath))
}

// UploadFile uploads one local file under its base name.
func UploadFile(ctx context.Context, b Backend, t Target, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", localPath)
	}

	key := t.Key(localPath)
	if err := b.Upload(ctx, key, f, info.Size()); err != nil {
		return "", err
	}
	return key, nil
}

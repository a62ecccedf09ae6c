package cloud

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{"s3://bucket/prefix/captures", Target{"s3", "bucket", "prefix/captures"}, false},
		{"s3://bucket", Target{"s3", "bucket", ""}, false},
		{"gs://qa-artifacts/screens/", Target{"gs", "qa-artifacts", "screens"}, false},
		{" s3://bucket/p ", Target{"s3", "bucket", "p"}, false},
		{"http://bucket/p", Target{}, true},
		{"s3://", Target{}, true},
		{"", Target{}, true},
	}

	for _, tt := range tests {
		got, err := ParseURL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseURL(%q) should fail, got %+v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseURL(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseURL(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestTargetKey(t *testing.T) {
	tgt := Target{Scheme: "s3", Bucket: "b", Prefix: "captures"}
	if key := tgt.Key("/tmp/out/device_20240601.png"); key != "captures/device_20240601.png" {
		t.Errorf("Key = %q", key)
	}

	flat := Target{Scheme: "s3", Bucket: "b"}
	if key := flat.Key("shot.png"); key != "shot.png" {
		t.Errorf("Key without prefix = %q", key)
	}
}

// memBackend records uploads in memory.
type memBackend struct {
	objects map[string][]byte
}

func (m *memBackend) Upload(_ context.Context, key string, r io.Reader, _ int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if m.objects == nil {
		m.objects = make(map[string][]byte)
	}
	m.objects[key] = data
	return nil
}

func (m *memBackend) ShareURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://example.invalid/" + key, nil
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	payload := []byte{0x89, 'P', 'N', 'G'}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	b := &memBackend{}
	tgt := Target{Scheme: "s3", Bucket: "bucket", Prefix: "screens"}
	key, err := UploadFile(context.Background(), b, tgt, path)
	if err != nil {
		t.Fatal(err)
	}
	if key != "screens/shot.png" {
		t.Errorf("key = %q", key)
	}
	if !bytes.Equal(b.objects[key], payload) {
		t.Errorf("uploaded content = %v", b.objects[key])
	}
}

func TestUploadFileMissing(t *testing.T) {
	b := &memBackend{}
	if _, err := UploadFile(context.Background(), b, Target{Bucket: "b"}, "/nonexistent/a.png"); err == nil {
		t.Error("expected error")
	}
}

func TestUploadFileDirectory(t *testing.T) {
	b := &memBackend{}
	if _, err := UploadFile(context.Background(), b, Target{Bucket: "b"}, t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

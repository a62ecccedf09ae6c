package logcat

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func TestOpenReaderPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleLog {
		t.Errorf("content = %q", data)
	}
}

func TestOpenReaderZstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log.zst")
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	compressed := enc.EncodeAll([]byte(sampleLog), nil)
	_ = enc.Close()
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleLog {
		t.Errorf("decompressed = %q", data)
	}

	// summary of compressed and plain input must agree
	s, err := AnalyzeFile(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalLines != 3 || s.Unstructured != 1 {
		t.Errorf("summary = %+v", s)
	}
}

func TestOpenReaderGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(sampleLog)); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleLog {
		t.Errorf("decompressed = %q", data)
	}
}

func TestOpenReaderMissing(t *testing.T) {
	if _, err := OpenReader("/nonexistent/capture.log"); err == nil {
		t.Error("expected error")
	}
}

package rotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Config controls rotation behavior.
type Config struct {
	Path     string // active log file path
	MaxSize  int64  // max bytes per file before rotation
	MaxFiles int    // rotated files kept beyond the active one
	Compress bool   // zstd compress rotated files
}

// Rotator is an io.Writer that appends to a single log file and rotates it
// into numbered backups (<path>.1, <path>.2, ...) once it exceeds MaxSize.
// The oldest backup beyond MaxFiles is removed.
type Rotator struct {
	cfg Config

	mu     sync.Mutex
	active *os.File
	size   int64
}

// New creates a Rotator, appending to the file at cfg.Path.
func New(cfg Config) (*Rotator, error) {
	if cfg.MaxSize <= 0 {
		return nil, fmt.Errorf("rotate: MaxSize must be positive")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}
	r := &Rotator{cfg: cfg}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Write appends data to the active file, rotating first if the write would
// push it over MaxSize.
func (r *Rotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size+int64(len(p)) > r.cfg.MaxSize && r.size > 0 {
		if err := r.rotate(); err != nil {
			return 0, fmt.Errorf("rotate: %w", err)
		}
	}
	n, err := r.active.Write(p)
	r.size += int64(n)
	return n, err
}

// Close flushes and closes the active file.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return nil
	}
	err := r.active.Close()
	r.active = nil
	return err
}

func (r *Rotator) open() error {
	f, err := os.OpenFile(r.cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	r.active = f
	r.size = info.Size()
	return nil
}

// rotate closes the active file, shifts existing backups up by one slot,
// moves the active file into slot 1, and reopens a fresh active file.
func (r *Rotator) rotate() error {
	if err := r.active.Close(); err != nil {
		return err
	}

	// drop the oldest backup
	if r.cfg.MaxFiles > 0 {
		oldest := r.backupName(r.cfg.MaxFiles)
		if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	// shift remaining backups: .N-1 -> .N
	for i := r.cfg.MaxFiles - 1; i >= 1; i-- {
		src := r.backupName(i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, r.backupName(i+1)); err != nil {
			return err
		}
	}

	if r.cfg.MaxFiles > 0 {
		if r.cfg.Compress {
			if err := r.compressInto(r.cfg.Path, r.backupName(1)); err != nil {
				return err
			}
		} else if err := os.Rename(r.cfg.Path, r.backupName(1)); err != nil {
			return err
		}
	} else if err := os.Remove(r.cfg.Path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return r.open()
}

// backupName returns the path of backup slot n, with the compression suffix
// when enabled.
func (r *Rotator) backupName(n int) string {
	name := fmt.Sprintf("%s.%d", r.cfg.Path, n)
	if r.cfg.Compress {
		name += ".zst"
	}
	return name
}

func (r *Rotator) compressInto(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	compressed := enc.EncodeAll(data, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	if err := os.WriteFile(dst, compressed, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}

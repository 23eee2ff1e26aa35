package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"emotree/internal/logging"
)

// FileBackend stores the blob as a single JSON file.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend returns a backend writing to path, creating its directory.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, fmt.Errorf("file backend requires a path")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	logging.Store("Opening file backend at %s", path)
	return &FileBackend{path: path}, nil
}

// Load returns the file contents, or nil when the file does not exist.
func (b *FileBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read()
}

// Update reads the file, applies fn and replaces the file atomically.
func (b *FileBackend) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	current, err := b.read()
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := atomicWriteFile(b.path, next); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.path, err)
	}
	logging.StoreDebug("Wrote %d bytes to %s", len(next), b.path)
	return nil
}

func (b *FileBackend) read() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	return data, nil
}

// Path returns the file path.
func (b *FileBackend) Path() string { return b.path }

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }

func atomicWriteFile(path string, data []byte) error {
	tempFile := path + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, path)
}

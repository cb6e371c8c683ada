package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.ErrNotFound

// Store is a minimal key-value store.
type Store interface {
	// Save stores data under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error
	// Load returns the value for key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting an absent key returns ErrNotFound.
	Delete(ctx context.Context, key string) error
	// Close releases the store's resources.
	Close() error
}

// FileStore keeps one file per key inside a base directory. Writes are
// atomic: data goes to a temp file that is then renamed over the target.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStore creates a FileStore rooted at baseDir, creating it if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save persists data with the given key using an atomic write.
func (fs *FileStore) Save(_ context.Context, key string, data []byte) error {
	path, err := fs.keyToPath(key)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	return atomicWriteFile(path, data, 0o644)
}

// Load retrieves data for the given key.
func (fs *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	path, err := fs.keyToPath(key)
	if err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete removes the file for key.
func (fs *FileStore) Delete(_ context.Context, key string) error {
	path, err := fs.keyToPath(key)
	if err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Close is a no-op for FileStore.
func (fs *FileStore) Close() error { return nil }

// Path returns the file that holds key.
func (fs *FileStore) Path(key string) string {
	return filepath.Join(fs.baseDir, key+".json")
}

// keyToPath maps a key to its file, rejecting keys that would escape baseDir.
func (fs *FileStore) keyToPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", errors.NewValidationError("invalid storage key").WithField("key").WithValue(key)
	}
	return fs.Path(key), nil
}

// atomicWriteFile writes data to a temp file in the same directory and
// renames it over path, so readers never see a partial file.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

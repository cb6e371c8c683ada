package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

func TestAcquireLock(t *testing.T) {
	dir := t.TempDir()

	lock, err := AcquireLock(dir, nil)
	if err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	if lock.PID != os.Getpid() {
		t.Errorf("PID = %d, want %d", lock.PID, os.Getpid())
	}

	if _, err := AcquireLock(dir, nil); !errors.Is(err, errors.ErrStateLocked) {
		t.Errorf("second AcquireLock error = %v, want ErrStateLocked", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, LockFileName)); !os.IsNotExist(err) {
		t.Error("lock file still present after Release")
	}
}

func TestAcquireLock_ReclaimsStale(t *testing.T) {
	dir := t.TempDir()
	// PIDs this large are not assigned on any supported platform.
	stale := `{"pid": 2147483646, "hostname": "ghost", "started_at": "2020-01-01T00:00:00Z"}`
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte(stale), 0o644); err != nil {
		t.Fatal(err)
	}

	lock, err := AcquireLock(dir, nil)
	if err != nil {
		t.Fatalf("AcquireLock over stale lock failed: %v", err)
	}
	defer lock.Release()
}

func TestAcquireLock_ReclaimsCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LockFileName), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	lock, err := AcquireLock(dir, nil)
	if err != nil {
		t.Fatalf("AcquireLock over corrupt lock failed: %v", err)
	}
	defer lock.Release()
}

func TestRelease_NilLock(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("nil Release() = %v", err)
	}
}

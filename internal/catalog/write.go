package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"contentcatalog/internal/fileutil"
)

// ErrLocked indicates another process holds the write lock for the destination.
var ErrLocked = errors.New("catalog destination is locked by another run")

// LockPath returns the advisory lock file guarding writes to dest.
func LockPath(dest string) string {
	return filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".lock")
}

// WriteFile atomically replaces dest with data, creating parent directories.
// Overlapping runs are serialised with an advisory lock; a run that cannot
// take the lock fails with ErrLocked instead of waiting.
func WriteFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(LockPath(dest))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, dest)
	}
	defer func() { _ = lock.Unlock() }()

	if err := fileutil.WriteFileAtomic(dest, data, 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", dest, err)
	}
	return nil
}

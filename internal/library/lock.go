package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another amutils process is writing to the library.
var ErrLocked = errors.New("library is locked by another amutils process")

// WriterLock is an exclusive advisory lock held while a command mutates the
// library.
type WriterLock struct {
	path string
	lock *flock.Flock
}

// AcquireWriter takes the writer lock at path without blocking.
func AcquireWriter(path string) (*WriterLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
	}
	return &WriterLock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *WriterLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks. It is safe to call on a nil lock.
func (l *WriterLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

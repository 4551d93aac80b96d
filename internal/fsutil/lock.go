package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned by AcquireRunLock when another run holds the tree.
var ErrLocked = errors.New("another resub run is using this tree")

// RunLock is an exclusive, non-blocking lock on a directory tree.
// The lock file lives in the OS temp directory, never inside the tree.
type RunLock struct {
	flock *flock.Flock
	root  string
}

// LockPath returns the lock file used for root.
func LockPath(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "resub-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// AcquireRunLock locks root for the current process without blocking.
func AcquireRunLock(root string) (*RunLock, error) {
	path, err := LockPath(root)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%s: %w", root, ErrLocked)
	}
	return &RunLock{flock: fl, root: root}, nil
}

// Release unlocks the tree.
func (l *RunLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.root, err)
	}
	return nil
}

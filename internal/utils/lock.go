package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileSuffix = ".lock"

// CatalogLock manages a file-based lock for the catalog file, so that at
// most one ingestion writes to it at a time.
type CatalogLock struct {
	lock *flock.Flock
	path string
}

// NewCatalogLock creates a new lock for the given catalog path.
func NewCatalogLock(catalogPath string) (*CatalogLock, error) {
	absPath, err := filepath.Abs(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("could not resolve catalog path: %w", err)
	}
	lockPath := absPath + lockFileSuffix
	return &CatalogLock{
		lock: flock.New(lockPath),
		path: lockPath,
	}, nil
}

// Lock acquires the catalog lock, waiting if necessary.
// It will print a message if it has to wait.
func (l *CatalogLock) Lock() error {
	locked, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", l.path, err)
	}

	if !locked {
		fmt.Fprintf(os.Stderr, "Another regcat process is writing to the catalog, waiting for it to finish...\n")
		if err := l.lock.Lock(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s after waiting: %w", l.path, err)
		}
	}
	return nil
}

// Unlock releases the catalog lock.
func (l *CatalogLock) Unlock() error {
	if err := l.lock.Unlock(); err != nil {
		// Suppress error if the lock file doesn't exist, as it means we
		// don't hold the lock.
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}
	return nil
}

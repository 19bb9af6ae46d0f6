package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the database lock.
var ErrLocked = errors.New("database is locked by another stepwise process")

// Lock is an exclusive cross-process lock on a database file, held in a
// sibling "<db>.lock" file.
type Lock struct {
	flock *flock.Flock
}

// AcquireLock takes the lock for dbPath, retrying every retryInterval until
// ctx is done. Running out of time reports ErrLocked; cancellation is returned
// as is. In-memory databases need no lock and get a no-op Lock.
func AcquireLock(ctx context.Context, dbPath string, retryInterval time.Duration) (*Lock, error) {
	if dbPath == MemoryPath {
		return &Lock{}, nil
	}

	lockPath := dbPath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	fl := flock.New(lockPath)
	ok, err := fl.TryLockContext(ctx, retryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
		}
		return nil, fmt.Errorf("locking %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}

	return &Lock{flock: fl}, nil
}

// Release unlocks the database. It is safe to call on a no-op Lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}

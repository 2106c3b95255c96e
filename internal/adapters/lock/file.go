package lock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

// errWouldBlock is returned by tryLockFile when another process holds the lock
var errWouldBlock = errors.New("lock held by another process")

const (
	minRetryDelay = 5 * time.Millisecond
	maxRetryDelay = 100 * time.Millisecond
)

// FileLocker implements ports.UserLocker across processes. Goroutines in this
// process queue on a KeyedMutex first; the holder then takes an exclusive OS
// lock on a per-user file so concurrent CLI invocations serialize too.
type FileLocker struct {
	dir   string
	local *KeyedMutex
}

var _ ports.UserLocker = (*FileLocker)(nil)

// NewFileLocker creates a FileLocker storing lock files in dir
func NewFileLocker(dir string) (*FileLocker, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	return &FileLocker{dir: dir, local: NewKeyedMutex()}, nil
}

// Lock acquires the in-process and OS locks for userID
func (l *FileLocker) Lock(ctx context.Context, userID string) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := l.path(userID)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		unlockLocal()
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	delay := minRetryDelay
	for {
		err := tryLockFile(file)
		if err == nil {
			break
		}
		if !errors.Is(err, errWouldBlock) {
			file.Close()
			unlockLocal()
			return nil, fmt.Errorf("failed to lock %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			file.Close()
			unlockLocal()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}

	logging.Logger.Debug("User lock acquired", "user", userID)

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := unlockFile(file); err != nil {
				logging.Logger.Warn("Failed to release user lock", "user", userID, "error", err)
			}
			file.Close()
			unlockLocal()
			logging.Logger.Debug("User lock released", "user", userID)
		})
	}, nil
}

// path hashes the user id so any identifier maps to a safe file name
func (l *FileLocker) path(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return filepath.Join(l.dir, hex.EncodeToString(sum[:8])+".lock")
}

package ports

import "context"

// UserLocker serializes read-modify-write sequences for one user
type UserLocker interface {
	// Lock blocks until the user's lock is held or ctx is done.
	// The returned function releases the lock.
	Lock(ctx context.Context, userID string) (func(), error)
}

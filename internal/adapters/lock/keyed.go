package lock

import (
	"context"
	"sync"

	"github.com/renato0307/pomar/internal/ports"
)

// KeyedMutex implements ports.UserLocker inside one process.
// Each user gets a one-slot channel; holding the slot holds the lock.
type KeyedMutex struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

var _ ports.UserLocker = (*KeyedMutex)(nil)

// NewKeyedMutex creates an empty KeyedMutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{slots: make(map[string]chan struct{})}
}

// Lock acquires userID's slot or returns ctx.Err()
func (k *KeyedMutex) Lock(ctx context.Context, userID string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slot := k.slot(userID)
	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-slot })
	}, nil
}

func (k *KeyedMutex) slot(userID string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	slot, ok := k.slots[userID]
	if !ok {
		slot = make(chan struct{}, 1)
		k.slots[userID] = slot
	}
	return slot
}

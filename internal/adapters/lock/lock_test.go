package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/ports"
)

func lockers(t *testing.T) map[string]ports.UserLocker {
	fileLocker, err := NewFileLocker(t.TempDir())
	require.NoError(t, err)
	return map[string]ports.UserLocker{
		"keyed": NewKeyedMutex(),
		"file":  fileLocker,
	}
}

func TestLock_SerializesSameUser(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			var inside, maxInside atomic.Int32
			var wg sync.WaitGroup

			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					unlock, err := locker.Lock(context.Background(), "alice")
					if !assert.NoError(t, err) {
						return
					}
					n := inside.Add(1)
					for {
						m := maxInside.Load()
						if n <= m || maxInside.CompareAndSwap(m, n) {
							break
						}
					}
					time.Sleep(time.Millisecond)
					inside.Add(-1)
					unlock()
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), maxInside.Load())
		})
	}
}

func TestLock_DifferentUsersDoNotBlock(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			unlockA, err := locker.Lock(context.Background(), "alice")
			require.NoError(t, err)
			defer unlockA()

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			unlockB, err := locker.Lock(ctx, "bob")
			require.NoError(t, err)
			unlockB()
		})
	}
}

func TestLock_ContextCancelledWhileWaiting(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			unlock, err := locker.Lock(context.Background(), "alice")
			require.NoError(t, err)
			defer unlock()

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			_, err = locker.Lock(ctx, "alice")

			assert.ErrorIs(t, err, context.DeadlineExceeded)
		})
	}
}

func TestLock_UnlockIsIdempotent(t *testing.T) {
	for name, locker := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			unlock, err := locker.Lock(context.Background(), "alice")
			require.NoError(t, err)

			unlock()
			unlock()

			unlock2, err := locker.Lock(context.Background(), "alice")
			require.NoError(t, err)

			// A stale unlock must not release the current holder
			unlock()
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			_, err = locker.Lock(ctx, "alice")
			assert.ErrorIs(t, err, context.DeadlineExceeded)

			unlock2()
			unlock3, err := locker.Lock(context.Background(), "alice")
			require.NoError(t, err)
			unlock3()
		})
	}
}

func TestFileLocker_ExcludesOtherLockerOnSameDirectory(t *testing.T) {
	// Two FileLockers share no in-process state, like two CLI processes
	dir := t.TempDir()
	first, err := NewFileLocker(dir)
	require.NoError(t, err)
	second, err := NewFileLocker(dir)
	require.NoError(t, err)

	unlock, err := first.Lock(context.Background(), "alice")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = second.Lock(ctx, "alice")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()

	unlock2, err := second.Lock(context.Background(), "alice")
	require.NoError(t, err)
	unlock2()
}

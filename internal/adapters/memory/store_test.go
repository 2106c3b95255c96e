package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/adapters/storetest"
	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.Store { return NewStore() })
}

func TestStore_ReturnedSessionsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	s, err := domain.NewSession("s1", "alice", domain.SessionWork, 1500, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start(now))
	require.NoError(t, s.Pause(now.Add(time.Minute)))
	require.NoError(t, store.SaveSession(ctx, s))

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, got.Resume(now.Add(2*time.Minute)))

	again, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, again.Status)
	assert.Nil(t, again.PauseIntervals[0].End)
}

func TestStore_DuplicateDistractionID(t *testing.T) {
	store := NewStore()
	e := domain.DistractionEvent{ID: "d1", UserID: "alice", SessionID: "s1", Type: domain.DistractionNoise}

	require.NoError(t, store.AppendDistraction(context.Background(), e))
	assert.ErrorIs(t, store.AppendDistraction(context.Background(), e), domain.ErrConflict)
}

func TestStore_ListDistractionsHonoursCancelledContext(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.AppendDistraction(context.Background(), domain.DistractionEvent{ID: "d1", UserID: "alice"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range store.ListDistractions(ctx, ports.DistractionFilter{}) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, context.Canceled)
}

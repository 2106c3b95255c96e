package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/domain"
)

func collectIDs(t *testing.T, seq func(func(domain.DistractionEvent, error) bool)) []string {
	t.Helper()
	var ids []string
	for e, err := range seq {
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}
	return ids
}

func TestDistractionService_RecordOnCurrentSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.startWork(t, "alice")
	h.clock.Advance(4 * time.Minute)

	event, err := h.distractions.Record(ctx, "alice", "", "  Phone ")
	require.NoError(t, err)

	assert.Equal(t, s.ID, event.SessionID)
	assert.Equal(t, domain.DistractionPhone, event.Type)
	assert.True(t, event.OccurredAt.Equal(monday.Add(4*time.Minute)))
	assert.Equal(t, []domain.EventKind{domain.EventSessionStarted, domain.EventDistractionRecorded}, h.events.kinds())
}

func TestDistractionService_RecordRequiresRunningSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.distractions.Record(ctx, "alice", "", "noise")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s := h.startWork(t, "alice")
	_, err = h.sessions.Pause(ctx, "alice")
	require.NoError(t, err)

	_, err = h.distractions.Record(ctx, "alice", s.ID, "noise")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = h.sessions.Cancel(ctx, "alice")
	require.NoError(t, err)
	_, err = h.distractions.Record(ctx, "alice", "", "noise")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Empty(t, collectIDs(t, h.distractions.BySession(ctx, "alice", s.ID)))
}

func TestDistractionService_RecordValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.startWork(t, "alice")

	_, err := h.distractions.Record(ctx, "alice", "", " ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.distractions.Record(ctx, "alice", "missing", "noise")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Another user's session is not visible
	_, err = h.distractions.Record(ctx, "bob", s.ID, "noise")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDistractionService_QueriesAreRestartable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.startWork(t, "alice")

	first, err := h.distractions.Record(ctx, "alice", "", "phone")
	require.NoError(t, err)
	seq := h.distractions.BySession(ctx, "alice", s.ID)
	assert.Equal(t, []string{first.ID}, collectIDs(t, seq))

	h.clock.Advance(time.Minute)
	second, err := h.distractions.Record(ctx, "alice", "", "people")
	require.NoError(t, err)

	assert.Equal(t, []string{first.ID, second.ID}, collectIDs(t, seq))
	assert.Equal(t, []string{first.ID, second.ID}, collectIDs(t, seq))
}

func TestDistractionService_ByDateRange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var ids []string
	for i := range 3 {
		h.clock.Set(monday.Add(time.Duration(i) * day))
		h.startWork(t, "alice")
		e, err := h.distractions.Record(ctx, "alice", "", "thought")
		require.NoError(t, err)
		ids = append(ids, e.ID)
		_, err = h.sessions.Cancel(ctx, "alice")
		require.NoError(t, err)
	}

	mon := domain.DateOf(monday)
	tue := mon.AddDays(1)
	wed := mon.AddDays(2)

	assert.Equal(t, ids[:2], collectIDs(t, h.distractions.ByDateRange(ctx, "alice", mon, tue)))
	assert.Equal(t, ids[2:], collectIDs(t, h.distractions.ByDateRange(ctx, "alice", wed, wed)))
	assert.Empty(t, collectIDs(t, h.distractions.ByDateRange(ctx, "bob", mon, wed)))

	var gotErr error
	for _, err := range h.distractions.ByDateRange(ctx, "alice", wed, mon) {
		gotErr = err
	}
	assert.ErrorIs(t, gotErr, domain.ErrValidation)
}

func TestSummarizeDistractions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	s := h.startWork(t, "alice")

	for _, typ := range []string{"phone", "people", "phone", "slack"} {
		_, err := h.distractions.Record(ctx, "alice", "", typ)
		require.NoError(t, err)
	}

	summary, err := SummarizeDistractions(h.distractions.BySession(ctx, "alice", s.ID))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, map[domain.DistractionType]int{"phone": 2, "people": 1, "slack": 1}, summary.ByType)
}

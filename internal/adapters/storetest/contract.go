// Package storetest holds the behaviour every ports.Store implementation must share
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

// Factory returns a fresh, empty store. Cleanup is the factory's job.
type Factory func(t *testing.T) ports.Store

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// Run exercises store against the repository contracts
func Run(t *testing.T, newStore Factory) {
	t.Run("session round trip", func(t *testing.T) { testSessionRoundTrip(t, newStore(t)) })
	t.Run("one active session per user", func(t *testing.T) { testOneActiveSession(t, newStore(t)) })
	t.Run("latest and history", func(t *testing.T) { testLatestAndHistory(t, newStore(t)) })
	t.Run("unknown session", func(t *testing.T) { testUnknownSession(t, newStore(t)) })
	t.Run("distraction filters", func(t *testing.T) { testDistractionFilters(t, newStore(t)) })
	t.Run("distraction sequence restarts", func(t *testing.T) { testDistractionRestart(t, newStore(t)) })
	t.Run("progress defaults", func(t *testing.T) { testProgressDefaults(t, newStore(t)) })
	t.Run("progress round trip", func(t *testing.T) { testProgressRoundTrip(t, newStore(t)) })
	t.Run("grant journal", func(t *testing.T) { testGrantJournal(t, newStore(t)) })
	t.Run("pending grants", func(t *testing.T) { testPendingGrants(t, newStore(t)) })
}

func newRunning(t *testing.T, id, user string, startedAt time.Time) domain.Session {
	t.Helper()
	s, err := domain.NewSession(id, user, domain.SessionWork, 1500, 0)
	require.NoError(t, err)
	require.NoError(t, s.Start(startedAt))
	return s
}

func testSessionRoundTrip(t *testing.T, store ports.Store) {
	ctx := context.Background()
	s := newRunning(t, "s1", "alice", base)
	require.NoError(t, s.Pause(base.Add(5*time.Minute)))
	require.NoError(t, s.Resume(base.Add(7*time.Minute)))
	require.NoError(t, s.Complete(base.Add(27*time.Minute), 25))
	require.NoError(t, s.SetRating(4))

	require.NoError(t, store.SaveSession(ctx, s))

	got, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, int64(1500), got.ActualDurationSeconds)
	assert.Equal(t, 1, got.CompletedWorkCountInCycle)
	assert.Equal(t, 25, got.XPEarned)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4, *got.Rating)
	require.Len(t, got.PauseIntervals, 1)
	require.NotNil(t, got.PauseIntervals[0].End)
	assert.True(t, got.PauseIntervals[0].Start.Equal(base.Add(5*time.Minute)))
	assert.True(t, got.PauseIntervals[0].End.Equal(base.Add(7*time.Minute)))
	require.NotNil(t, got.EndedAt)
	assert.True(t, got.EndedAt.Equal(base.Add(27*time.Minute)))
	assert.True(t, got.StartedAt.Equal(base))
}

func testOneActiveSession(t *testing.T, store ports.Store) {
	ctx := context.Background()
	require.NoError(t, store.SaveSession(ctx, newRunning(t, "s1", "alice", base)))

	err := store.SaveSession(ctx, newRunning(t, "s2", "alice", base.Add(time.Minute)))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Other users are independent
	require.NoError(t, store.SaveSession(ctx, newRunning(t, "s3", "bob", base)))

	// Re-saving the active session itself is fine
	s1, err := store.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, s1.Pause(base.Add(2*time.Minute)))
	require.NoError(t, store.SaveSession(ctx, *s1))

	// Once it ends, a new one can become active
	require.NoError(t, s1.Cancel(base.Add(3*time.Minute)))
	require.NoError(t, store.SaveSession(ctx, *s1))
	require.NoError(t, store.SaveSession(ctx, newRunning(t, "s2", "alice", base.Add(4*time.Minute))))
}

func testLatestAndHistory(t *testing.T, store ports.Store) {
	ctx := context.Background()

	latest, err := store.LoadSession(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, latest)

	for i, id := range []string{"a", "b", "c"} {
		s := newRunning(t, id, "alice", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.Complete(base.Add(time.Duration(i)*time.Hour+25*time.Minute), 25))
		require.NoError(t, store.SaveSession(ctx, s))
	}

	latest, err = store.LoadSession(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "c", latest.ID)

	history, err := store.ListSessions(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "c", history[0].ID)
	assert.Equal(t, "b", history[1].ID)

	all, err := store.ListSessions(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.ListSessions(ctx, "bob", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testUnknownSession(t *testing.T, store ports.Store) {
	_, err := store.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func appendDistraction(t *testing.T, store ports.Store, id, user, session string, at time.Time) {
	t.Helper()
	require.NoError(t, store.AppendDistraction(context.Background(), domain.DistractionEvent{
		ID:         id,
		OccurredAt: at,
		SessionID:  session,
		Type:       domain.DistractionPhone,
		UserID:     user,
	}))
}

func collect(t *testing.T, store ports.Store, filter ports.DistractionFilter) []string {
	t.Helper()
	var ids []string
	for e, err := range store.ListDistractions(context.Background(), filter) {
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}
	return ids
}

func testDistractionFilters(t *testing.T, store ports.Store) {
	appendDistraction(t, store, "d2", "alice", "s1", base.Add(2*time.Minute))
	appendDistraction(t, store, "d1", "alice", "s1", base.Add(time.Minute))
	appendDistraction(t, store, "d3", "alice", "s2", base.Add(time.Hour))
	appendDistraction(t, store, "d4", "bob", "s9", base.Add(time.Minute))

	assert.Equal(t, []string{"d1", "d2", "d3"}, collect(t, store, ports.DistractionFilter{UserID: "alice"}))
	assert.Equal(t, []string{"d1", "d2"}, collect(t, store, ports.DistractionFilter{SessionID: "s1"}))
	assert.Equal(t, []string{"d2"}, collect(t, store, ports.DistractionFilter{
		From:   base.Add(2 * time.Minute),
		To:     base.Add(time.Hour),
		UserID: "alice",
	}))
	assert.Empty(t, collect(t, store, ports.DistractionFilter{UserID: "carol"}))

	// Stopping early is honoured
	count := 0
	for range store.ListDistractions(context.Background(), ports.DistractionFilter{}) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func testDistractionRestart(t *testing.T, store ports.Store) {
	appendDistraction(t, store, "d1", "alice", "s1", base)
	seq := store.ListDistractions(context.Background(), ports.DistractionFilter{UserID: "alice"})

	first := 0
	for _, err := range seq {
		require.NoError(t, err)
		first++
	}
	appendDistraction(t, store, "d2", "alice", "s1", base.Add(time.Minute))

	second := 0
	for _, err := range seq {
		require.NoError(t, err)
		second++
	}
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func testProgressDefaults(t *testing.T, store ports.Store) {
	ctx := context.Background()

	p, err := store.LoadProgression(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.NewProgressionState("alice"), p)

	st, err := store.LoadStreak(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", st.UserID)
	assert.Zero(t, st.CurrentStreakDays)
	assert.True(t, st.LastActivityDate.IsZero())

	w, err := store.LoadWeeklyGoal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", w.UserID)
	assert.True(t, w.WeekStartDate.IsZero())

	g, err := store.LoadGrant(ctx, "alice/task/t1")
	require.NoError(t, err)
	assert.Nil(t, g)
}

func testProgressRoundTrip(t *testing.T, store ports.Store) {
	ctx := context.Background()

	p := domain.ProgressionState{AppliedRef: "alice/task/t1#base", Level: 2, UserID: "alice", XPTotal: 110}
	require.NoError(t, store.SaveProgression(ctx, p))
	gotP, err := store.LoadProgression(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, p, gotP)

	st := domain.StreakState{
		AppliedRef:        "alice/task/t1#streak",
		CurrentStreakDays: 3,
		LastActivityDate:  domain.Date{Year: 2026, Month: time.March, Day: 2},
		LongestStreakDays: 5,
		NextMilestoneDays: 7,
		UserID:            "alice",
	}
	require.NoError(t, store.SaveStreak(ctx, st))
	gotS, err := store.LoadStreak(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, st, gotS)

	w := domain.WeeklyGoalState{
		AppliedRef:        "alice/task/t1#weekly",
		CompletedSessions: 4,
		CompletedTasks:    2,
		TargetSessions:    20,
		TargetTasks:       15,
		UserID:            "alice",
		WeekStartDate:     domain.Date{Year: 2026, Month: time.March, Day: 2},
	}
	require.NoError(t, store.SaveWeeklyGoal(ctx, w))
	gotW, err := store.LoadWeeklyGoal(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, w, gotW)

	// Saving again replaces
	w.GoalMet = true
	require.NoError(t, store.SaveWeeklyGoal(ctx, w))
	gotW, err = store.LoadWeeklyGoal(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, gotW.GoalMet)
}

func testGrantJournal(t *testing.T, store ports.Store) {
	ctx := context.Background()

	g := domain.NewRewardGrant("alice", domain.SourceTask, "t1", 1, base, base)
	g.Mark(domain.StepBase, 10)
	g.Mark(domain.StepStreak, 0)
	g.StreakDays = 1
	require.NoError(t, store.SaveGrant(ctx, g))

	got, err := store.LoadGrant(ctx, g.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Completed)
	assert.Equal(t, map[domain.GrantStep]int{domain.StepBase: 10, domain.StepStreak: 0}, got.Steps)
	assert.Equal(t, 1, got.StreakDays)
	assert.Equal(t, domain.SourceTask, got.Source)
	assert.Equal(t, "t1", got.SourceID)
	assert.True(t, got.OccurredAt.Equal(base))

	// Mutating the loaded copy does not leak into the store
	got.Mark(domain.StepWeekly, 0)
	again, err := store.LoadGrant(ctx, g.Key)
	require.NoError(t, err)
	assert.False(t, again.Has(domain.StepWeekly))

	g.Mark(domain.StepWeekly, 0)
	g.Completed = true
	require.NoError(t, store.SaveGrant(ctx, g))
	got, err = store.LoadGrant(ctx, g.Key)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Len(t, got.Steps, 3)
}

func testPendingGrants(t *testing.T, store ports.Store) {
	ctx := context.Background()

	pending, err := store.ListPendingGrants(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, pending)

	first := domain.NewRewardGrant("alice", domain.SourceTask, "t1", 1, base, base)
	first.Mark(domain.StepBase, 10)
	second := domain.NewRewardGrant("alice", domain.SourceSession, "s1", 1, base, base.Add(time.Minute))
	done := domain.NewRewardGrant("alice", domain.SourceTask, "t2", 1, base, base.Add(2*time.Minute))
	done.Completed = true
	other := domain.NewRewardGrant("bob", domain.SourceTask, "t1", 1, base, base)

	// Saved out of order on purpose
	for _, g := range []domain.RewardGrant{second, done, other, first} {
		require.NoError(t, store.SaveGrant(ctx, g))
	}

	pending, err = store.ListPendingGrants(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.Key, pending[0].Key)
	assert.Equal(t, map[domain.GrantStep]int{domain.StepBase: 10}, pending[0].Steps)
	assert.Equal(t, second.Key, pending[1].Key)
	assert.Empty(t, pending[1].Steps)

	first.Completed = true
	require.NoError(t, store.SaveGrant(ctx, first))
	pending, err = store.ListPendingGrants(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.Key, pending[0].Key)
}

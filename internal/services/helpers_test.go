package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/renato0307/pomar/internal/adapters/clock"
	"github.com/renato0307/pomar/internal/adapters/lock"
	"github.com/renato0307/pomar/internal/adapters/memory"
	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

// monday is 09:00 UTC on a Monday
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

var errStorage = errors.New("disk full")

// recorder collects published events
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) Publish(ctx context.Context, event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) kinds() []domain.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]domain.EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind()
	}
	return kinds
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// faultyStore fails one chosen call, counted per method
type faultyStore struct {
	*memory.Store
	mu     sync.Mutex
	calls  map[string]int
	failAt map[string]int
}

func newFaultyStore() *faultyStore {
	return &faultyStore{
		Store:  memory.NewStore(),
		calls:  make(map[string]int),
		failAt: make(map[string]int),
	}
}

// failOn makes the nth call (1-based, counted from now) to method fail once
func (f *faultyStore) failOn(method string, nth int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method] = 0
	f.failAt[method] = nth
}

func (f *faultyStore) trip(method string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if n, ok := f.failAt[method]; ok && f.calls[method] == n {
		delete(f.failAt, method)
		return true
	}
	return false
}

func (f *faultyStore) SaveProgression(ctx context.Context, state domain.ProgressionState) error {
	if f.trip("SaveProgression") {
		return errStorage
	}
	return f.Store.SaveProgression(ctx, state)
}

func (f *faultyStore) SaveStreak(ctx context.Context, state domain.StreakState) error {
	if f.trip("SaveStreak") {
		return errStorage
	}
	return f.Store.SaveStreak(ctx, state)
}

func (f *faultyStore) SaveWeeklyGoal(ctx context.Context, state domain.WeeklyGoalState) error {
	if f.trip("SaveWeeklyGoal") {
		return errStorage
	}
	return f.Store.SaveWeeklyGoal(ctx, state)
}

func (f *faultyStore) SaveGrant(ctx context.Context, grant domain.RewardGrant) error {
	if f.trip("SaveGrant") {
		return errStorage
	}
	return f.Store.SaveGrant(ctx, grant)
}

func (f *faultyStore) LoadStreak(ctx context.Context, userID string) (domain.StreakState, error) {
	if f.trip("LoadStreak") {
		return domain.StreakState{}, errStorage
	}
	return f.Store.LoadStreak(ctx, userID)
}

type harness struct {
	clock        *clock.Manual
	distractions *DistractionService
	events       *recorder
	progress     *ProgressService
	rewards      *RewardsService
	rules        domain.Rules
	sessions     *SessionService
	store        ports.Store
}

func testRules() domain.Rules {
	rules := domain.DefaultRules()
	rules.Location = time.UTC
	return rules
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, memory.NewStore(), testRules())
}

func newHarnessWith(t *testing.T, store ports.Store, rules domain.Rules) *harness {
	t.Helper()
	h := &harness{
		clock:  clock.NewManual(monday),
		events: &recorder{},
		rules:  rules,
		store:  store,
	}
	locker := lock.NewKeyedMutex()
	h.rewards = NewRewardsService(store, store, locker, h.events, h.clock, rules)
	h.sessions = NewSessionService(store, h.rewards, locker, h.events, h.clock, rules)
	h.distractions = NewDistractionService(store, store, locker, h.events, h.clock, rules)
	h.progress = NewProgressService(store, h.clock, rules)
	return h
}

func (h *harness) startWork(t *testing.T, userID string) *domain.Session {
	t.Helper()
	s, err := h.sessions.Start(context.Background(), userID, StartSessionParams{Type: domain.SessionWork})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func (h *harness) completeWork(t *testing.T, userID string) *CompleteSessionResult {
	t.Helper()
	h.startWork(t, userID)
	h.clock.Advance(25 * time.Minute)
	result, err := h.sessions.Complete(context.Background(), userID, CompleteSessionParams{})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	return result
}

func (h *harness) progression(t *testing.T, userID string) domain.ProgressionState {
	t.Helper()
	p, err := h.store.LoadProgression(context.Background(), userID)
	if err != nil {
		t.Fatalf("load progression: %v", err)
	}
	return p
}

func seconds(n int64) *int64 {
	return &n
}

// Package memory provides an in-process ports.Store used by tests and by
// the CLI when persistence is not wanted.
package memory

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

// Store keeps all engine state in maps guarded by one RWMutex
type Store struct {
	mu           sync.RWMutex
	distractions []domain.DistractionEvent
	grants       map[string]domain.RewardGrant
	progression  map[string]domain.ProgressionState
	sessions     map[string]domain.Session
	// order holds session ids per user in insertion order
	order   map[string][]string
	streaks map[string]domain.StreakState
	weekly  map[string]domain.WeeklyGoalState
}

var _ ports.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		grants:      make(map[string]domain.RewardGrant),
		order:       make(map[string][]string),
		progression: make(map[string]domain.ProgressionState),
		sessions:    make(map[string]domain.Session),
		streaks:     make(map[string]domain.StreakState),
		weekly:      make(map[string]domain.WeeklyGoalState),
	}
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

// GetSession returns the session with id
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	c := copySession(session)
	return &c, nil
}

// ListSessions returns the user's sessions, newest first
func (s *Store) ListSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[userID]
	result := make([]domain.Session, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if limit > 0 && len(result) >= limit {
			break
		}
		result = append(result, copySession(s.sessions[ids[i]]))
	}
	return result, nil
}

// LoadSession returns the user's latest session, or nil
func (s *Store) LoadSession(ctx context.Context, userID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[userID]
	if len(ids) == 0 {
		return nil, nil
	}
	c := copySession(s.sessions[ids[len(ids)-1]])
	return &c, nil
}

// SaveSession inserts or replaces a session
func (s *Store) SaveSession(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Status.IsActive() {
		for _, id := range s.order[session.UserID] {
			other := s.sessions[id]
			if id != session.ID && other.Status.IsActive() {
				return fmt.Errorf("%w: user %s already has active session %s", domain.ErrConflict, session.UserID, id)
			}
		}
	}

	if _, exists := s.sessions[session.ID]; !exists {
		s.order[session.UserID] = append(s.order[session.UserID], session.ID)
	}
	s.sessions[session.ID] = copySession(session)
	return nil
}

// AppendDistraction appends an event to the log
func (s *Store) AppendDistraction(ctx context.Context, event domain.DistractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.distractions {
		if e.ID == event.ID {
			return fmt.Errorf("%w: distraction %s already recorded", domain.ErrConflict, event.ID)
		}
	}
	// Keep the log ordered by occurrence; ties stay in append order
	i := len(s.distractions)
	for i > 0 && s.distractions[i-1].OccurredAt.After(event.OccurredAt) {
		i--
	}
	s.distractions = slices.Insert(s.distractions, i, event)
	return nil
}

// ListDistractions returns a sequence over a snapshot taken each time it is ranged
func (s *Store) ListDistractions(ctx context.Context, filter ports.DistractionFilter) iter.Seq2[domain.DistractionEvent, error] {
	return func(yield func(domain.DistractionEvent, error) bool) {
		s.mu.RLock()
		snapshot := slices.Clone(s.distractions)
		s.mu.RUnlock()

		for _, e := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(domain.DistractionEvent{}, err)
				return
			}
			if !matches(e, filter) {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func matches(e domain.DistractionEvent, f ports.DistractionFilter) bool {
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if !f.From.IsZero() && e.OccurredAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !e.OccurredAt.Before(f.To) {
		return false
	}
	return true
}

// LoadProgression returns the user's XP state
func (s *Store) LoadProgression(ctx context.Context, userID string) (domain.ProgressionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.progression[userID]; ok {
		return p, nil
	}
	return domain.NewProgressionState(userID), nil
}

// SaveProgression stores the user's XP state
func (s *Store) SaveProgression(ctx context.Context, state domain.ProgressionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progression[state.UserID] = state
	return nil
}

// LoadStreak returns the user's streak, or the zero streak with no milestone target
func (s *Store) LoadStreak(ctx context.Context, userID string) (domain.StreakState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.streaks[userID]; ok {
		return st, nil
	}
	return domain.StreakState{UserID: userID}, nil
}

// SaveStreak stores the user's streak
func (s *Store) SaveStreak(ctx context.Context, state domain.StreakState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaks[state.UserID] = state
	return nil
}

// LoadWeeklyGoal returns the user's weekly goal, or an empty one
func (s *Store) LoadWeeklyGoal(ctx context.Context, userID string) (domain.WeeklyGoalState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if w, ok := s.weekly[userID]; ok {
		return w, nil
	}
	return domain.WeeklyGoalState{UserID: userID}, nil
}

// SaveWeeklyGoal stores the user's weekly goal
func (s *Store) SaveWeeklyGoal(ctx context.Context, state domain.WeeklyGoalState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekly[state.UserID] = state
	return nil
}

// LoadGrant returns the journal entry for key, or nil
func (s *Store) LoadGrant(ctx context.Context, key string) (*domain.RewardGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grants[key]
	if !ok {
		return nil, nil
	}
	g.Steps = maps.Clone(g.Steps)
	return &g, nil
}

// SaveGrant stores a journal entry
func (s *Store) SaveGrant(ctx context.Context, grant domain.RewardGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	grant.Steps = maps.Clone(grant.Steps)
	s.grants[grant.Key] = grant
	return nil
}

// ListPendingGrants returns the user's incomplete journal entries, oldest first
func (s *Store) ListPendingGrants(ctx context.Context, userID string) ([]domain.RewardGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []domain.RewardGrant
	for _, g := range s.grants {
		if g.UserID != userID || g.Completed {
			continue
		}
		g.Steps = maps.Clone(g.Steps)
		pending = append(pending, g)
	}
	slices.SortFunc(pending, func(a, b domain.RewardGrant) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return pending, nil
}

func copySession(s domain.Session) domain.Session {
	if s.PauseIntervals != nil {
		pauses := make([]domain.PauseInterval, len(s.PauseIntervals))
		for i, p := range s.PauseIntervals {
			pauses[i] = domain.PauseInterval{Start: p.Start}
			if p.End != nil {
				end := *p.End
				pauses[i].End = &end
			}
		}
		s.PauseIntervals = pauses
	}
	if s.EndedAt != nil {
		end := *s.EndedAt
		s.EndedAt = &end
	}
	if s.Rating != nil {
		r := *s.Rating
		s.Rating = &r
	}
	return s
}

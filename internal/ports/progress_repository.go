package ports

import (
	"context"

	"github.com/renato0307/pomar/internal/domain"
)

// ProgressionRepository stores XP and level per user.
// Loading a user with no stored state returns the zero-XP state.
type ProgressionRepository interface {
	LoadProgression(ctx context.Context, userID string) (domain.ProgressionState, error)
	SaveProgression(ctx context.Context, state domain.ProgressionState) error
}

// StreakRepository stores daily streaks per user
type StreakRepository interface {
	LoadStreak(ctx context.Context, userID string) (domain.StreakState, error)
	SaveStreak(ctx context.Context, state domain.StreakState) error
}

// WeeklyGoalRepository stores the current weekly goal per user
type WeeklyGoalRepository interface {
	LoadWeeklyGoal(ctx context.Context, userID string) (domain.WeeklyGoalState, error)
	SaveWeeklyGoal(ctx context.Context, state domain.WeeklyGoalState) error
}

// RewardJournal records which reward steps have been applied per event
type RewardJournal interface {
	// LoadGrant returns the grant for key, or nil if the event was never seen
	LoadGrant(ctx context.Context, key string) (*domain.RewardGrant, error)
	SaveGrant(ctx context.Context, grant domain.RewardGrant) error
	// ListPendingGrants returns the user's grants not yet completed, oldest first
	ListPendingGrants(ctx context.Context, userID string) ([]domain.RewardGrant, error)
}

// ProgressRepository is the composite interface used by the rewards aggregator
type ProgressRepository interface {
	ProgressionRepository
	RewardJournal
	StreakRepository
	WeeklyGoalRepository
}

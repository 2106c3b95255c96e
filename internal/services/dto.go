package services

import (
	"time"

	"github.com/renato0307/pomar/internal/domain"
)

// StartSessionParams contains parameters for starting a session
type StartSessionParams struct {
	// PlannedDurationSeconds overrides the configured duration for the type when set
	PlannedDurationSeconds *int64
	Type                   domain.SessionType
}

// CompleteSessionParams contains parameters for completing a session
type CompleteSessionParams struct {
	// Rating is recorded with the completion. On an already completed
	// session it must match the stored rating.
	Rating *int
	// SessionID selects a session other than the user's latest, to resume
	// the grant of an earlier completion
	SessionID string
}

// CompleteSessionResult contains the outcome of a completion
type CompleteSessionResult struct {
	// Duplicate is set when the session had already been completed and rewarded
	Duplicate     bool
	Session       *domain.Session
	SuggestedNext domain.SessionType
	Summary       domain.RewardSummary
}

// SessionSnapshot is a session with its timing computed at a point in time
type SessionSnapshot struct {
	At        time.Time
	Elapsed   time.Duration
	Overdue   bool
	Paused    time.Duration
	Remaining time.Duration
	Session   domain.Session
}

// newSnapshot computes the timing of s at now
func newSnapshot(s domain.Session, now time.Time) *SessionSnapshot {
	return &SessionSnapshot{
		At:        now,
		Elapsed:   s.Elapsed(now),
		Overdue:   s.Overdue(now),
		Paused:    s.PausedDuration(now),
		Remaining: s.Remaining(now),
		Session:   s,
	}
}

// DistractionSummary counts distractions per type
type DistractionSummary struct {
	ByType map[domain.DistractionType]int
	Total  int
}

// Profile is a read-only snapshot of a user's progress
type Profile struct {
	Current              *SessionSnapshot
	Level                int
	LevelProgressPercent float64
	LongestStreakDays    int
	MaxLevel             bool
	NextMilestoneDays    int
	StreakDays           int
	SuggestedNext        domain.SessionType
	UserID               string
	Weekly               domain.WeeklyGoalState
	WeeklyProgress       float64
	XPToNextLevel        int
	XPTotal              int
}

package domain

import (
	"fmt"
	"time"
)

// SessionType is the kind of timed interval
type SessionType string

const (
	SessionLongBreak  SessionType = "long_break"
	SessionShortBreak SessionType = "short_break"
	SessionWork       SessionType = "work"
)

// ParseSessionType validates a session type string
func ParseSessionType(s string) (SessionType, error) {
	switch t := SessionType(s); t {
	case SessionWork, SessionShortBreak, SessionLongBreak:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown session type %q", ErrValidation, s)
	}
}

// IsBreak reports whether t is one of the break types
func (t SessionType) IsBreak() bool {
	return t == SessionShortBreak || t == SessionLongBreak
}

// SessionStatus represents where a session is in its lifecycle
type SessionStatus string

const (
	StatusCancelled SessionStatus = "cancelled"
	StatusCompleted SessionStatus = "completed"
	StatusIdle      SessionStatus = "idle"
	StatusPaused    SessionStatus = "paused"
	StatusRunning   SessionStatus = "running"
)

// Status symbols (Unicode)
const (
	SymbolCancelled = "✕"
	SymbolCompleted = "✓"
	SymbolIdle      = "○"
	SymbolPaused    = "◐"
	SymbolRunning   = "●"
)

// Symbol returns the display symbol for the status
func (s SessionStatus) Symbol() string {
	switch s {
	case StatusRunning:
		return SymbolRunning
	case StatusPaused:
		return SymbolPaused
	case StatusCompleted:
		return SymbolCompleted
	case StatusCancelled:
		return SymbolCancelled
	default:
		return SymbolIdle
	}
}

// IsActive reports whether the status holds the user's single active slot
func (s SessionStatus) IsActive() bool {
	return s == StatusRunning || s == StatusPaused
}

// IsTerminal reports whether no further transitions are possible
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PauseInterval is one pause; End is nil while the pause is open
type PauseInterval struct {
	End   *time.Time
	Start time.Time
}

// Session is one timed focus or break interval (domain entity)
type Session struct {
	ActualDurationSeconds     int64
	CompletedWorkCountInCycle int
	EarlyCompletion           bool
	EndedAt                   *time.Time
	ID                        string
	PauseIntervals            []PauseInterval
	PlannedDurationSeconds    int64
	Rating                    *int
	StartedAt                 time.Time
	Status                    SessionStatus
	Type                      SessionType
	UserID                    string
	XPEarned                  int
}

// NewSession validates the request and returns an idle session.
// cycleCount is the number of work sessions already completed in the current cycle.
func NewSession(id, userID string, t SessionType, plannedSeconds int64, cycleCount int) (Session, error) {
	if id == "" || userID == "" {
		return Session{}, fmt.Errorf("%w: session and user identifiers are required", ErrValidation)
	}
	if _, err := ParseSessionType(string(t)); err != nil {
		return Session{}, err
	}
	if plannedSeconds <= 0 {
		return Session{}, fmt.Errorf("%w: planned duration must be positive, got %ds", ErrValidation, plannedSeconds)
	}
	if cycleCount < 0 {
		cycleCount = 0
	}
	return Session{
		CompletedWorkCountInCycle: cycleCount,
		ID:                        id,
		PlannedDurationSeconds:    plannedSeconds,
		Status:                    StatusIdle,
		Type:                      t,
		UserID:                    userID,
	}, nil
}

// Start moves an idle session to running
func (s *Session) Start(now time.Time) error {
	if s.Status != StatusIdle {
		return s.transitionError("start")
	}
	s.StartedAt = now
	s.Status = StatusRunning
	return nil
}

// Pause opens a pause interval on a running session
func (s *Session) Pause(now time.Time) error {
	if s.Status != StatusRunning {
		return s.transitionError("pause")
	}
	s.PauseIntervals = append(s.PauseIntervals, PauseInterval{Start: s.clamp(now)})
	s.Status = StatusPaused
	return nil
}

// Resume closes the open pause interval of a paused session
func (s *Session) Resume(now time.Time) error {
	if s.Status != StatusPaused {
		return s.transitionError("resume")
	}
	s.closePause(now)
	s.Status = StatusRunning
	return nil
}

// Cancel ends an active session without reward
func (s *Session) Cancel(now time.Time) error {
	if !s.Status.IsActive() {
		return s.transitionError("cancel")
	}
	s.closePause(now)
	end := s.clamp(now)
	s.EndedAt = &end
	s.ActualDurationSeconds = int64(s.Elapsed(end) / time.Second)
	s.Status = StatusCancelled
	return nil
}

// Complete ends an active session, records the actual duration and sets the
// earned XP. Ending before the planned duration is allowed and flagged.
func (s *Session) Complete(now time.Time, xp int) error {
	if !s.Status.IsActive() {
		return s.transitionError("complete")
	}
	if xp < 0 {
		return fmt.Errorf("%w: session xp must not be negative", ErrValidation)
	}
	s.closePause(now)
	end := s.clamp(now)
	s.EndedAt = &end
	actual := s.Elapsed(end)
	s.ActualDurationSeconds = int64(actual / time.Second)
	s.EarlyCompletion = actual < s.PlannedDuration()
	s.XPEarned = xp
	if s.Type == SessionWork {
		s.CompletedWorkCountInCycle++
	}
	s.Status = StatusCompleted
	return nil
}

// SetRating records a 1-5 rating
func (s *Session) SetRating(rating int) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	s.Rating = &rating
	return nil
}

// ValidateRating checks that a rating is within 1-5
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrValidation, rating)
	}
	return nil
}

// PlannedDuration returns the planned duration as a time.Duration
func (s *Session) PlannedDuration() time.Duration {
	return time.Duration(s.PlannedDurationSeconds) * time.Second
}

// PausedDuration returns the total paused time up to now (or EndedAt).
// An open pause counts up to the reference time.
func (s *Session) PausedDuration(now time.Time) time.Duration {
	ref := s.reference(now)
	var total time.Duration
	for _, p := range s.PauseIntervals {
		end := ref
		if p.End != nil {
			end = *p.End
		}
		if end.After(p.Start) {
			total += end.Sub(p.Start)
		}
	}
	return total
}

// Elapsed returns the active (unpaused) time of the session up to now
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.Status == StatusIdle {
		return 0
	}
	wall := s.reference(now).Sub(s.StartedAt)
	if wall < 0 {
		return 0
	}
	elapsed := wall - s.PausedDuration(now)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining returns the planned time left, floored at zero
func (s *Session) Remaining(now time.Time) time.Duration {
	remaining := s.PlannedDuration() - s.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Overdue reports whether the active time has exceeded the planned duration
func (s *Session) Overdue(now time.Time) bool {
	return s.Elapsed(now) > s.PlannedDuration()
}

// reference returns the time against which durations are measured:
// EndedAt for finished sessions, otherwise now clamped to StartedAt
func (s *Session) reference(now time.Time) time.Time {
	if s.EndedAt != nil {
		return *s.EndedAt
	}
	return s.clamp(now)
}

// clamp keeps a timestamp from going before StartedAt when the clock moves back
func (s *Session) clamp(t time.Time) time.Time {
	if t.Before(s.StartedAt) {
		return s.StartedAt
	}
	return t
}

func (s *Session) closePause(now time.Time) {
	n := len(s.PauseIntervals)
	if n == 0 || s.PauseIntervals[n-1].End != nil {
		return
	}
	end := s.clamp(now)
	if end.Before(s.PauseIntervals[n-1].Start) {
		end = s.PauseIntervals[n-1].Start
	}
	s.PauseIntervals[n-1].End = &end
}

func (s *Session) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s a %s session", ErrInvalidState, op, s.Status)
}

// NextCycleCount returns the cycle counter a new session should carry after last
func NextCycleCount(last *Session) int {
	if last == nil {
		return 0
	}
	if last.Type == SessionLongBreak && last.Status == StatusCompleted {
		return 0
	}
	return last.CompletedWorkCountInCycle
}

// SuggestNextType returns the advisory type for the session after last.
// An active work session is treated as if it were about to complete.
func SuggestNextType(last *Session, rules Rules) SessionType {
	if last == nil || last.Type.IsBreak() || last.Status == StatusCancelled {
		return SessionWork
	}
	count := last.CompletedWorkCountInCycle
	if last.Status.IsActive() {
		count++
	}
	if count > 0 && count%rules.SessionsPerLongBreak == 0 {
		return SessionLongBreak
	}
	return SessionShortBreak
}

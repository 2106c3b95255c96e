package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

// SessionService drives the session state machine for each user.
// Mutations for one user are serialized through the UserLocker.
type SessionService struct {
	clock     ports.Clock
	locker    ports.UserLocker
	newID     func() string
	publisher ports.EventPublisher
	rewards   *RewardsService
	rules     domain.Rules
	sessions  ports.SessionRepository
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessions ports.SessionRepository,
	rewards *RewardsService,
	locker ports.UserLocker,
	publisher ports.EventPublisher,
	clock ports.Clock,
	rules domain.Rules,
) *SessionService {
	return &SessionService{
		clock:     clock,
		locker:    locker,
		newID:     uuid.NewString,
		publisher: publisher,
		rewards:   rewards,
		rules:     rules,
		sessions:  sessions,
	}
}

// Start creates a running session. It fails with domain.ErrConflict when the
// user already has a running or paused session.
func (s *SessionService) Start(ctx context.Context, userID string, params StartSessionParams) (*domain.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user identifier is required", domain.ErrValidation)
	}
	sessionType, err := domain.ParseSessionType(string(params.Type))
	if err != nil {
		return nil, err
	}
	planned, err := s.plannedSeconds(sessionType, params.PlannedDurationSeconds)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	latest, err := s.sessions.LoadSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if latest != nil && latest.Status.IsActive() {
		return nil, fmt.Errorf("%w: session %s is already %s", domain.ErrConflict, latest.ID, latest.Status)
	}

	session, err := domain.NewSession(s.newID(), userID, sessionType, planned, domain.NextCycleCount(latest))
	if err != nil {
		return nil, err
	}
	if err := session.Start(s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logging.Logger.Info("Session started",
		"user", userID,
		"session_id", session.ID,
		"type", session.Type,
		"planned_seconds", session.PlannedDurationSeconds,
		"cycle", session.CompletedWorkCountInCycle)

	s.publisher.Publish(ctx, domain.SessionStarted{Session: session})
	return &session, nil
}

// Pause pauses the user's running session
func (s *SessionService) Pause(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.transition(ctx, userID, "pause", func(session *domain.Session) error {
		return session.Pause(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, domain.SessionPaused{Session: *session})
	return session, nil
}

// Resume resumes the user's paused session
func (s *SessionService) Resume(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.transition(ctx, userID, "resume", func(session *domain.Session) error {
		return session.Resume(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, domain.SessionResumed{Session: *session})
	return session, nil
}

// Cancel ends the user's active session without reward
func (s *SessionService) Cancel(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.transition(ctx, userID, "cancel", func(session *domain.Session) error {
		return session.Cancel(s.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, domain.SessionCancelled{Session: *session})
	return session, nil
}

// Complete ends the user's active session and grants its rewards. Calling it
// again after a completion resumes an interrupted grant, or reports a duplicate.
func (s *SessionService) Complete(ctx context.Context, userID string, params CompleteSessionParams) (*CompleteSessionResult, error) {
	if params.Rating != nil {
		if err := domain.ValidateRating(*params.Rating); err != nil {
			return nil, err
		}
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	session, summary, events, err := s.complete(ctx, userID, params)
	unlock()
	if err != nil {
		s.publish(ctx, events)
		return nil, err
	}

	if !summary.Duplicate {
		events = append(events, domain.SessionCompleted{Session: *session, Summary: summary})
	}
	s.publish(ctx, events)

	next, err := s.SuggestNext(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CompleteSessionResult{
		Duplicate:     summary.Duplicate,
		Session:       session,
		SuggestedNext: next,
		Summary:       summary,
	}, nil
}

// complete records the completion and grants its rewards; the caller holds the user's lock
func (s *SessionService) complete(ctx context.Context, userID string, params CompleteSessionParams) (*domain.Session, domain.RewardSummary, []domain.Event, error) {
	session, err := s.target(ctx, userID, params.SessionID)
	if err != nil {
		return nil, domain.RewardSummary{}, nil, err
	}

	if session.Status == domain.StatusCompleted {
		if params.Rating != nil && (session.Rating == nil || *session.Rating != *params.Rating) {
			return nil, domain.RewardSummary{}, nil, fmt.Errorf("%w: session %s is already completed, its rating cannot change",
				domain.ErrInvalidState, session.ID)
		}
	} else {
		if err := session.Complete(s.clock.Now(), s.rules.SessionXP(session.Type)); err != nil {
			return nil, domain.RewardSummary{}, nil, err
		}
		if params.Rating != nil {
			if err := session.SetRating(*params.Rating); err != nil {
				return nil, domain.RewardSummary{}, nil, err
			}
		}
		// The session is recorded before any reward it triggers
		if err := s.sessions.SaveSession(ctx, *session); err != nil {
			return nil, domain.RewardSummary{}, nil, fmt.Errorf("failed to save session: %w", err)
		}
		logging.Logger.Info("Session completed",
			"user", userID,
			"session_id", session.ID,
			"actual_seconds", session.ActualDurationSeconds,
			"early", session.EarlyCompletion)
	}

	return s.rewards.grantSession(ctx, userID, session.ID)
}

// target returns the session with id, or the user's latest when id is empty
func (s *SessionService) target(ctx context.Context, userID, id string) (*domain.Session, error) {
	if id == "" {
		return s.latest(ctx, userID)
	}
	session, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("%w: session %s does not belong to user %s", domain.ErrNotFound, id, userID)
	}
	return session, nil
}

// Current returns the user's running or paused session with its timing, or nil
func (s *SessionService) Current(ctx context.Context, userID string) (*SessionSnapshot, error) {
	session, err := s.sessions.LoadSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || !session.Status.IsActive() {
		return nil, nil
	}
	return newSnapshot(*session, s.clock.Now()), nil
}

// SuggestNext returns the advisory type of the user's next session
func (s *SessionService) SuggestNext(ctx context.Context, userID string) (domain.SessionType, error) {
	session, err := s.sessions.LoadSession(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return domain.SuggestNextType(session, s.rules), nil
}

// History returns the user's most recent sessions, newest first
func (s *SessionService) History(ctx context.Context, userID string, limit int) ([]domain.Session, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", domain.ErrValidation)
	}
	return s.sessions.ListSessions(ctx, userID, limit)
}

// transition applies fn to the user's latest session under the user's lock
func (s *SessionService) transition(ctx context.Context, userID, op string, fn func(*domain.Session) error) (*domain.Session, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := s.latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveSession(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	logging.Logger.Info("Session updated", "user", userID, "session_id", session.ID, "op", op, "status", session.Status)
	return session, nil
}

func (s *SessionService) latest(ctx context.Context, userID string) (*domain.Session, error) {
	session, err := s.sessions.LoadSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: user %s has no session", domain.ErrNotFound, userID)
	}
	return session, nil
}

func (s *SessionService) publish(ctx context.Context, events []domain.Event) {
	for _, e := range events {
		s.publisher.Publish(ctx, e)
	}
}

func (s *SessionService) plannedSeconds(t domain.SessionType, override *int64) (int64, error) {
	if override != nil {
		if *override <= 0 {
			return 0, fmt.Errorf("%w: planned duration must be positive, got %ds", domain.ErrValidation, *override)
		}
		return *override, nil
	}
	d, err := s.rules.DefaultDuration(t)
	if err != nil {
		return 0, err
	}
	return int64(d.Seconds()), nil
}

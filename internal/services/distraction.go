package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

// DistractionService records interruptions against running sessions and
// reads the append-only log back
type DistractionService struct {
	clock        ports.Clock
	distractions ports.DistractionRepository
	locker       ports.UserLocker
	newID        func() string
	publisher    ports.EventPublisher
	rules        domain.Rules
	sessions     ports.SessionReader
}

// NewDistractionService creates a new DistractionService
func NewDistractionService(
	distractions ports.DistractionRepository,
	sessions ports.SessionReader,
	locker ports.UserLocker,
	publisher ports.EventPublisher,
	clock ports.Clock,
	rules domain.Rules,
) *DistractionService {
	return &DistractionService{
		clock:        clock,
		distractions: distractions,
		locker:       locker,
		newID:        uuid.NewString,
		publisher:    publisher,
		rules:        rules,
		sessions:     sessions,
	}
}

// Record appends a distraction to sessionID, or to the user's latest session
// when sessionID is empty. The session must be running.
func (s *DistractionService) Record(ctx context.Context, userID, sessionID, distractionType string) (*domain.DistractionEvent, error) {
	t, err := domain.ParseDistractionType(distractionType)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}

	session, err := s.resolve(ctx, userID, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	event, err := domain.NewDistractionEvent(s.newID(), *session, t, s.clock.Now())
	if err != nil {
		unlock()
		return nil, err
	}
	if err := s.distractions.AppendDistraction(ctx, event); err != nil {
		unlock()
		return nil, fmt.Errorf("failed to append distraction: %w", err)
	}
	unlock()

	logging.Logger.Info("Distraction recorded", "user", userID, "session_id", session.ID, "type", t)
	s.publisher.Publish(ctx, domain.DistractionRecorded{Event: event})
	return &event, nil
}

// BySession returns the distractions of one of the user's sessions in occurrence order
func (s *DistractionService) BySession(ctx context.Context, userID, sessionID string) iter.Seq2[domain.DistractionEvent, error] {
	return s.distractions.ListDistractions(ctx, ports.DistractionFilter{SessionID: sessionID, UserID: userID})
}

// ByDateRange returns the user's distractions from the start of from to the
// end of to, both calendar days in the configured location
func (s *DistractionService) ByDateRange(ctx context.Context, userID string, from, to domain.Date) iter.Seq2[domain.DistractionEvent, error] {
	if to.Before(from) {
		return func(yield func(domain.DistractionEvent, error) bool) {
			yield(domain.DistractionEvent{}, fmt.Errorf("%w: range ends %s before it starts %s", domain.ErrValidation, to, from))
		}
	}
	return s.distractions.ListDistractions(ctx, ports.DistractionFilter{
		From:   from.StartIn(s.rules.Location),
		To:     to.AddDays(1).StartIn(s.rules.Location),
		UserID: userID,
	})
}

// SummarizeDistractions counts the events of seq per type
func SummarizeDistractions(seq iter.Seq2[domain.DistractionEvent, error]) (DistractionSummary, error) {
	summary := DistractionSummary{ByType: make(map[domain.DistractionType]int)}
	for e, err := range seq {
		if err != nil {
			return DistractionSummary{}, err
		}
		summary.ByType[e.Type]++
		summary.Total++
	}
	return summary, nil
}

func (s *DistractionService) resolve(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		session, err := s.sessions.LoadSession(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return nil, fmt.Errorf("%w: user %s has no session", domain.ErrNotFound, userID)
		}
		return session, nil
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// Sessions of other users are not visible
	if session.UserID != userID {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, sessionID)
	}
	return session, nil
}

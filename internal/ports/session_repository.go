package ports

import (
	"context"

	"github.com/renato0307/pomar/internal/domain"
)

// SessionReader reads session data
type SessionReader interface {
	// GetSession returns the session with id, or domain.ErrNotFound
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	// ListSessions returns the user's most recent sessions, newest first
	ListSessions(ctx context.Context, userID string, limit int) ([]domain.Session, error)
	// LoadSession returns the user's latest session, or nil if the user has none
	LoadSession(ctx context.Context, userID string) (*domain.Session, error)
}

// SessionWriter persists sessions
type SessionWriter interface {
	// SaveSession inserts or replaces a session atomically. Saving a second
	// running or paused session for a user fails with domain.ErrConflict.
	SaveSession(ctx context.Context, session domain.Session) error
}

// SessionRepository is the composite interface
type SessionRepository interface {
	SessionReader
	SessionWriter
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// DistractionType names what interrupted a session
type DistractionType string

// Common distraction types. Any other non-empty token is accepted.
const (
	DistractionNoise       DistractionType = "noise"
	DistractionOther       DistractionType = "other"
	DistractionPeople      DistractionType = "people"
	DistractionPhone       DistractionType = "phone"
	DistractionSocialMedia DistractionType = "social_media"
	DistractionThought     DistractionType = "thought"
)

const maxDistractionTypeLen = 64

// ParseDistractionType normalizes and validates a distraction type
func ParseDistractionType(s string) (DistractionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: distraction type is required", ErrValidation)
	}
	if len(s) > maxDistractionTypeLen {
		return "", fmt.Errorf("%w: distraction type longer than %d characters", ErrValidation, maxDistractionTypeLen)
	}
	return DistractionType(s), nil
}

// DistractionEvent is one interruption captured while a session was running.
// Events are never mutated once appended.
type DistractionEvent struct {
	ID         string
	OccurredAt time.Time
	SessionID  string
	Type       DistractionType
	UserID     string
}

// NewDistractionEvent creates an event for s, which must be running
func NewDistractionEvent(id string, s Session, t DistractionType, now time.Time) (DistractionEvent, error) {
	if s.Status != StatusRunning {
		return DistractionEvent{}, fmt.Errorf("%w: distractions can only be recorded on a running session, session is %s",
			ErrInvalidState, s.Status)
	}
	return DistractionEvent{
		ID:         id,
		OccurredAt: now,
		SessionID:  s.ID,
		Type:       t,
		UserID:     s.UserID,
	}, nil
}

package ports

import (
	"context"

	"github.com/renato0307/pomar/internal/domain"
)

// EventPublisher delivers engine events to subscribers
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

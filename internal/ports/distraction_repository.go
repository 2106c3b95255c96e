package ports

import (
	"context"
	"iter"
	"time"

	"github.com/renato0307/pomar/internal/domain"
)

// DistractionFilter specifies criteria for listing distraction events.
// Empty fields do not filter; From is inclusive and To is exclusive.
type DistractionFilter struct {
	From      time.Time
	SessionID string
	To        time.Time
	UserID    string
}

// DistractionRepository is the append-only distraction log
type DistractionRepository interface {
	AppendDistraction(ctx context.Context, event domain.DistractionEvent) error
	// ListDistractions returns matching events ordered by occurrence. The sequence
	// is lazy and can be ranged over again to re-run the query.
	ListDistractions(ctx context.Context, filter DistractionFilter) iter.Seq2[domain.DistractionEvent, error]
}

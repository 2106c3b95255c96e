package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/adapters/clock"
	"github.com/renato0307/pomar/internal/adapters/lock"
	"github.com/renato0307/pomar/internal/adapters/memory"
	"github.com/renato0307/pomar/internal/domain"
	portsmocks "github.com/renato0307/pomar/internal/ports/mocks"
)

func TestServicesPublishThroughPublisher(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	clk := clock.NewManual(monday)
	locker := lock.NewKeyedMutex()
	rules := testRules()

	publisher := portsmocks.NewMockEventPublisher(t)
	rewards := NewRewardsService(store, store, locker, publisher, clk, rules)
	sessions := NewSessionService(store, rewards, locker, publisher, clk, rules)
	distractions := NewDistractionService(store, store, locker, publisher, clk, rules)

	publisher.EXPECT().
		Publish(mock.Anything, mock.AnythingOfType("domain.SessionStarted")).
		Return().
		Once()
	publisher.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
			d, ok := e.(domain.DistractionRecorded)
			return ok && d.Event.Type == domain.DistractionPhone
		})).
		Return().
		Once()
	publisher.EXPECT().
		Publish(mock.Anything, mock.AnythingOfType("domain.SessionPaused")).
		Return().
		Once()

	_, err := sessions.Start(ctx, "u1", StartSessionParams{Type: domain.SessionWork})
	require.NoError(t, err)
	_, err = distractions.Record(ctx, "u1", "", "phone")
	require.NoError(t, err)
	_, err = sessions.Pause(ctx, "u1")
	require.NoError(t, err)

	// Rejected operations publish nothing
	_, err = distractions.Record(ctx, "u1", "", "phone")
	require.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = sessions.Pause(ctx, "u1")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

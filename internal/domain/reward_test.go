package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardGrant_StepsAndSummary(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	g := NewRewardGrant("alice", SourceSession, "s1", 1, now, now)

	assert.Equal(t, "alice/session/s1", g.Key)
	assert.Equal(t, "alice/session/s1#streak", g.Ref(StepStreak))
	assert.False(t, g.Has(StepBase))

	g.Mark(StepBase, 25)
	g.Mark(StepStreak, 0)
	g.Mark(StepStreakBonus, 50)
	g.Mark(StepLevelUp, 20)
	g.StreakDays = 3
	g.MilestoneDays = 3

	assert.True(t, g.Has(StepStreak))

	s := g.Summary(2)
	assert.Equal(t, 25, s.XPGranted)
	assert.Equal(t, 50, s.StreakRewardGranted)
	assert.Equal(t, 20, s.LevelUpBonusGranted)
	assert.Equal(t, 95, s.TotalXP())
	require.NotNil(t, s.NewLevel)
	assert.Equal(t, 2, *s.NewLevel)

	assert.Nil(t, g.Summary(1).NewLevel)
}

func TestRewardGrant_MarkOnZeroValue(t *testing.T) {
	var g RewardGrant
	g.Mark(StepBase, 10)
	assert.True(t, g.Has(StepBase))
}

func TestNewDistractionEvent(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := Session{ID: "s1", Status: StatusRunning, UserID: "alice"}

	e, err := NewDistractionEvent("d1", s, DistractionNoise, now)
	require.NoError(t, err)
	assert.Equal(t, "s1", e.SessionID)
	assert.Equal(t, "alice", e.UserID)

	s.Status = StatusPaused
	_, err = NewDistractionEvent("d2", s, DistractionNoise, now)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestParseDistractionType(t *testing.T) {
	got, err := ParseDistractionType(" Social_Media ")
	require.NoError(t, err)
	assert.Equal(t, DistractionSocialMedia, got)

	_, err = ParseDistractionType("")
	assert.ErrorIs(t, err, ErrValidation)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'x'
	}
	_, err = ParseDistractionType(string(long))
	assert.ErrorIs(t, err, ErrValidation)
}

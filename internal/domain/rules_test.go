package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_Valid(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())
}

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"zero work duration", func(r *Rules) { r.WorkDuration = 0 }},
		{"no sessions per long break", func(r *Rules) { r.SessionsPerLongBreak = 0 }},
		{"zero xp per level", func(r *Rules) { r.XPPerLevel = 0 }},
		{"zero max level", func(r *Rules) { r.MaxLevel = 0 }},
		{"zero weekly tasks", func(r *Rules) { r.WeeklyTargets.Tasks = 0 }},
		{"negative xp award", func(r *Rules) { r.XP.Task = -1 }},
		{"unsorted milestones", func(r *Rules) { r.StreakMilestones = []int{7, 3} }},
		{"zero milestone", func(r *Rules) { r.StreakMilestones = []int{0, 3} }},
		{"bad weekday", func(r *Rules) { r.WeekStartsOn = time.Weekday(9) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			assert.ErrorIs(t, rules.Validate(), ErrValidation)
		})
	}
}

func TestRules_DefaultDuration(t *testing.T) {
	rules := DefaultRules()

	d, err := rules.DefaultDuration(SessionShortBreak)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	_, err = rules.DefaultDuration("nap")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRules_Milestones(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 3, rules.NextMilestone(0))
	assert.Equal(t, 7, rules.NextMilestone(3))
	assert.Equal(t, 0, rules.NextMilestone(30))
	assert.True(t, rules.IsMilestone(14))
	assert.False(t, rules.IsMilestone(15))
}

func TestRules_SessionXP(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 25, rules.SessionXP(SessionWork))
	assert.Equal(t, 0, rules.SessionXP(SessionLongBreak))
}

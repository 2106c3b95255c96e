package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renato0307/pomar/test/integration/harness"
)

type profileJSON struct {
	Current *struct {
		Session sessionJSON
	}
	Level         int
	StreakDays    int
	SuggestedNext string
	UserID        string
	Weekly        struct {
		CompletedSessions int
		CompletedTasks    int
		TargetTasks       int
	}
	XPToNextLevel int
	XPTotal       int
}

func TestStats(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	t.Run("new user", func(t *testing.T) {
		result := harness.RunCommand(t, env, "stats", "--format", "json")
		harness.AssertSuccess(t, result)

		var p profileJSON
		harness.AssertValidJSON(t, result, &p)
		assert.Equal(t, harness.DefaultUser, p.UserID)
		assert.Equal(t, 1, p.Level)
		assert.Zero(t, p.XPTotal)
		assert.Equal(t, 100, p.XPToNextLevel)
		assert.Nil(t, p.Current)
		assert.Equal(t, "work", p.SuggestedNext)
	})

	harness.AssertSuccess(t, harness.RunCommand(t, env, "session", "start", "work"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "session", "complete"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "task", "complete", "T-1"))
	harness.AssertSuccess(t, harness.RunCommand(t, env, "session", "start", "short_break"))

	t.Run("after activity", func(t *testing.T) {
		result := harness.RunCommand(t, env, "stats", "--format", "json")
		harness.AssertSuccess(t, result)

		var p profileJSON
		harness.AssertValidJSON(t, result, &p)
		assert.Equal(t, 35, p.XPTotal)
		assert.Equal(t, 65, p.XPToNextLevel)
		assert.Equal(t, 1, p.StreakDays)
		assert.Equal(t, 1, p.Weekly.CompletedSessions)
		assert.Equal(t, 1, p.Weekly.CompletedTasks)
		assert.Equal(t, 15, p.Weekly.TargetTasks)
		if assert.NotNil(t, p.Current) {
			assert.Equal(t, "short_break", p.Current.Session.Type)
		}
	})

	t.Run("table output", func(t *testing.T) {
		result := harness.RunCommand(t, env, "stats")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "Level:")
		harness.AssertStdoutContains(t, result, "1 day(s)")
		harness.AssertStdoutContains(t, result, "1/15 tasks")
	})
}

func TestStatsRejectsInvalidSettings(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.WriteSettings("settings.json", `{"streak_milestones": [7, 3]}`)

	result := harness.RunCommand(t, env, "stats")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "invalid settings")
}

package integration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/test/integration/harness"
)

func TestTaskComplete(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	t.Run("first completion grants xp", func(t *testing.T) {
		result := harness.RunCommand(t, env, "task", "complete", "TASK-1", "--format", "json")
		harness.AssertSuccess(t, result)

		var summary summaryJSON
		harness.AssertValidJSON(t, result, &summary)
		assert.False(t, summary.Duplicate)
		assert.Equal(t, 10, summary.XPGranted)
		assert.Equal(t, 1, summary.StreakDays)
		assert.Nil(t, summary.NewLevel)
	})

	t.Run("same task again is a duplicate", func(t *testing.T) {
		result := harness.RunCommand(t, env, "task", "complete", "TASK-1", "--format", "json")
		harness.AssertSuccess(t, result)

		var summary summaryJSON
		harness.AssertValidJSON(t, result, &summary)
		assert.True(t, summary.Duplicate)
		assert.Zero(t, summary.XPGranted)
	})

	t.Run("table output", func(t *testing.T) {
		result := harness.RunCommand(t, env, "task", "complete", "TASK-2")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "Completed task TASK-2")
		harness.AssertStdoutContains(t, result, "+10 XP")
	})

	t.Run("another user can complete the same task id", func(t *testing.T) {
		result := harness.RunCommand(t, env, "--user", "other", "task", "complete", "TASK-1", "--format", "json")
		harness.AssertSuccess(t, result)

		var summary summaryJSON
		harness.AssertValidJSON(t, result, &summary)
		assert.False(t, summary.Duplicate)
	})
}

func TestTaskCompleteBackdated(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	yesterday := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	result := harness.RunCommand(t, env, "task", "complete", "OLD", "--at", yesterday, "--format", "json")
	harness.AssertSuccess(t, result)

	result = harness.RunCommand(t, env, "task", "complete", "NEW", "--format", "json")
	harness.AssertSuccess(t, result)

	var summary summaryJSON
	harness.AssertValidJSON(t, result, &summary)
	assert.Equal(t, 2, summary.StreakDays)
}

func TestTaskCompleteInvalidTime(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "task", "complete", "T", "--at", "yesterday")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "invalid --at")
}

func TestTaskCompleteLevelUpWithSettings(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	env.WriteSettings("settings.yaml", "xp_per_level: 10\nxp:\n  task: 10\n  level_up: 20\n")

	result := harness.RunCommand(t, env, "task", "complete", "T", "--format", "json")
	harness.AssertSuccess(t, result)

	var summary summaryJSON
	harness.AssertValidJSON(t, result, &summary)
	require.NotNil(t, summary.NewLevel)
	assert.Greater(t, *summary.NewLevel, 1)
	assert.Equal(t, 20, summary.LevelUpBonusGranted)
}

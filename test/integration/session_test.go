package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/test/integration/harness"
)

type sessionJSON struct {
	CompletedWorkCountInCycle int
	EarlyCompletion           bool
	ID                        string
	PlannedDurationSeconds    int64
	Rating                    *int
	Status                    string
	Type                      string
	UserID                    string
	XPEarned                  int
}

type summaryJSON struct {
	Duplicate           bool
	LevelUpBonusGranted int
	NewLevel            *int
	StreakDays          int
	XPGranted           int
}

type completeJSON struct {
	Duplicate     bool
	Session       sessionJSON
	SuggestedNext string
	Summary       summaryJSON
}

func TestSessionLifecycle(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	t.Run("status without session", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "status")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "No active session.")
	})

	var started sessionJSON
	t.Run("start work", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "start", "work", "--format", "json")
		harness.AssertSuccess(t, result)
		harness.AssertValidJSON(t, result, &started)
		assert.Equal(t, "running", started.Status)
		assert.Equal(t, "work", started.Type)
		assert.Equal(t, harness.DefaultUser, started.UserID)
		assert.EqualValues(t, 25*60, started.PlannedDurationSeconds)
	})

	t.Run("second start conflicts", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "start", "short_break")
		harness.AssertFailure(t, result)
		harness.AssertStderrContains(t, result, "conflict")
	})

	t.Run("pause and resume", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "pause")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "Paused work session")

		result = harness.RunCommand(t, env, "session", "status")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "paused")

		result = harness.RunCommand(t, env, "session", "pause")
		harness.AssertFailure(t, result)

		result = harness.RunCommand(t, env, "session", "resume")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "Resumed work session")
	})

	t.Run("complete with rating", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "complete", "--rating", "4", "--format", "json")
		harness.AssertSuccess(t, result)

		var completed completeJSON
		harness.AssertValidJSON(t, result, &completed)
		assert.False(t, completed.Duplicate)
		assert.Equal(t, started.ID, completed.Session.ID)
		assert.Equal(t, "completed", completed.Session.Status)
		assert.True(t, completed.Session.EarlyCompletion)
		require.NotNil(t, completed.Session.Rating)
		assert.Equal(t, 4, *completed.Session.Rating)
		assert.Equal(t, 25, completed.Summary.XPGranted)
		assert.Equal(t, 1, completed.Summary.StreakDays)
		assert.Equal(t, "short_break", completed.SuggestedNext)
	})

	t.Run("second complete is a duplicate", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "complete")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "already completed")
		harness.AssertStdoutContains(t, result, "Already rewarded")
	})

	t.Run("next suggests a short break", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "next")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "short_break")
	})

	t.Run("start without type uses the suggestion", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "start", "--format", "json")
		harness.AssertSuccess(t, result)

		var s sessionJSON
		harness.AssertValidJSON(t, result, &s)
		assert.Equal(t, "short_break", s.Type)
		assert.Equal(t, 1, s.CompletedWorkCountInCycle)
	})

	t.Run("cancel", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "cancel")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "Cancelled short_break session")

		result = harness.RunCommand(t, env, "session", "cancel")
		harness.AssertFailure(t, result)
	})

	t.Run("list", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "list", "--format", "json")
		harness.AssertSuccess(t, result)

		var sessions []sessionJSON
		harness.AssertValidJSON(t, result, &sessions)
		require.Len(t, sessions, 2)
		assert.Equal(t, "cancelled", sessions[0].Status)
		assert.Equal(t, "completed", sessions[1].Status)

		result = harness.RunCommand(t, env, "session", "list", "--limit", "1", "--format", "json")
		harness.AssertSuccess(t, result)
		harness.AssertValidJSON(t, result, &sessions)
		assert.Len(t, sessions, 1)
	})
}

func TestSessionStartValidation(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	t.Run("unknown type", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "start", "nap")
		harness.AssertFailure(t, result)
		harness.AssertStderrContains(t, result, "validation")
	})

	t.Run("sub-second duration", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "start", "work", "--duration", "500ms")
		harness.AssertFailure(t, result)
	})

	t.Run("custom duration", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "start", "work", "--duration", "50m", "--format", "json")
		harness.AssertSuccess(t, result)

		var s sessionJSON
		harness.AssertValidJSON(t, result, &s)
		assert.EqualValues(t, 50*60, s.PlannedDurationSeconds)
	})

	t.Run("invalid rating leaves the session active", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "complete", "--rating", "9")
		harness.AssertFailure(t, result)

		result = harness.RunCommand(t, env, "session", "status")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "running")
	})
}

func TestSessionsAreScopedPerUser(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "session", "start", "work")
	harness.AssertSuccess(t, result)

	result = harness.RunCommand(t, env, "--user", "someone-else", "session", "status")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "No active session.")

	result = harness.RunCommand(t, env, "--user", "someone-else", "session", "start", "work")
	harness.AssertSuccess(t, result)
}

func TestCompleteWithoutSession(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "session", "complete")
	harness.AssertFailure(t, result)
	harness.AssertStderrContains(t, result, "not found")
}

func TestSessionCompleteByID(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "session", "start", "work", "--format", "json")
	harness.AssertSuccess(t, result)
	var first sessionJSON
	harness.AssertValidJSON(t, result, &first)

	result = harness.RunCommand(t, env, "session", "complete", "--rating", "5")
	harness.AssertSuccess(t, result)

	result = harness.RunCommand(t, env, "session", "start", "short_break")
	harness.AssertSuccess(t, result)

	t.Run("earlier session reports duplicate", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "complete", "--session", first.ID, "--format", "json")
		harness.AssertSuccess(t, result)

		var completed completeJSON
		harness.AssertValidJSON(t, result, &completed)
		assert.True(t, completed.Duplicate)
		assert.Equal(t, first.ID, completed.Session.ID)
	})

	t.Run("rating cannot change", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "complete", "--session", first.ID, "--rating", "2")
		harness.AssertFailure(t, result)
		harness.AssertStderrContains(t, result, "invalid state")
	})

	t.Run("unknown session", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "complete", "--session", "missing")
		harness.AssertFailure(t, result)
		harness.AssertStderrContains(t, result, "not found")
	})

	t.Run("active break untouched", func(t *testing.T) {
		result := harness.RunCommand(t, env, "session", "status")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "running")
	})
}

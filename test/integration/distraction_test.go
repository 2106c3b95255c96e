package integration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/test/integration/harness"
)

type distractionListJSON struct {
	Events []struct {
		ID        string
		SessionID string
		Type      string
	}
	Summary struct {
		ByType map[string]int
		Total  int
	}
}

func TestDistractions(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	t.Run("no session", func(t *testing.T) {
		result := harness.RunCommand(t, env, "distraction", "record", "phone")
		harness.AssertFailure(t, result)
	})

	var session sessionJSON
	result := harness.RunCommand(t, env, "session", "start", "work", "--format", "json")
	harness.AssertSuccess(t, result)
	harness.AssertValidJSON(t, result, &session)

	t.Run("record on running session", func(t *testing.T) {
		for _, kind := range []string{"phone", "Phone", "people"} {
			result := harness.RunCommand(t, env, "distraction", "record", kind)
			harness.AssertSuccess(t, result)
			harness.AssertStdoutContains(t, result, session.ID)
		}
	})

	t.Run("rejected while paused", func(t *testing.T) {
		harness.AssertSuccess(t, harness.RunCommand(t, env, "session", "pause"))

		result := harness.RunCommand(t, env, "distraction", "record", "noise")
		harness.AssertFailure(t, result)
		harness.AssertStderrContains(t, result, "invalid state")

		harness.AssertSuccess(t, harness.RunCommand(t, env, "session", "resume"))
	})

	t.Run("list by session", func(t *testing.T) {
		result := harness.RunCommand(t, env, "distraction", "list", "--session", session.ID, "--format", "json")
		harness.AssertSuccess(t, result)

		var out distractionListJSON
		harness.AssertValidJSON(t, result, &out)
		require.Len(t, out.Events, 3)
		assert.Equal(t, 3, out.Summary.Total)
		assert.Equal(t, 2, out.Summary.ByType["phone"])
		assert.Equal(t, 1, out.Summary.ByType["people"])
	})

	t.Run("list today", func(t *testing.T) {
		result := harness.RunCommand(t, env, "distraction", "list")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "Total: 3")
		harness.AssertStdoutContains(t, result, "phone: 2")
	})

	t.Run("list empty range", func(t *testing.T) {
		result := harness.RunCommand(t, env, "distraction", "list", "--from", "2001-01-01", "--to", "2001-01-31")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, "No distractions recorded.")
	})

	t.Run("reversed range", func(t *testing.T) {
		result := harness.RunCommand(t, env, "distraction", "list", "--from", "2001-02-01", "--to", "2001-01-01")
		harness.AssertFailure(t, result)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		result := harness.RunCommand(t, env, "--user", "other", "distraction", "list", "--session", session.ID, "--format", "json")
		harness.AssertSuccess(t, result)

		var out distractionListJSON
		harness.AssertValidJSON(t, result, &out)
		assert.Empty(t, out.Events)
	})
}

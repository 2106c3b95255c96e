package integration_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/test/integration/harness"
)

func TestSettingsMeta(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	t.Run("table", func(t *testing.T) {
		result := harness.RunCommand(t, env, "settings", "meta")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, filepath.Join(env.PomarHome, "settings.json"))
		harness.AssertStdoutContains(t, result, "work_minutes")
		harness.AssertStdoutContains(t, result, "week_starts_on")
	})

	t.Run("json", func(t *testing.T) {
		result := harness.RunCommand(t, env, "settings", "meta", "--format", "json")
		harness.AssertSuccess(t, result)

		var out struct {
			Format       map[string]any `json:"format"`
			SettingsFile string         `json:"settings_file"`
		}
		harness.AssertValidJSON(t, result, &out)
		assert.Equal(t, filepath.Join(env.PomarHome, "settings.json"), out.SettingsFile)
		require.Contains(t, out.Format, "xp")
		assert.Contains(t, out.Format, "streak_milestones")
	})

	t.Run("yaml file is preferred", func(t *testing.T) {
		env.WriteSettings("settings.yaml", "work_minutes: 30\n")

		result := harness.RunCommand(t, env, "settings", "meta")
		harness.AssertSuccess(t, result)
		harness.AssertStdoutContains(t, result, filepath.Join(env.PomarHome, "settings.yaml"))
	})
}

func TestVersion(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "version")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "pomar dev")
}

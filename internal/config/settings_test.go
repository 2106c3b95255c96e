package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Setenv("POMAR_HOME", t.TempDir())

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettingsPrefersYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("POMAR_HOME", home)
	writeFile(t, home, "settings.json", `{"work_minutes": 30}`)
	writeFile(t, home, "settings.yaml", "work_minutes: 50\nxp:\n  task: 12\n")

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, settings.WorkMinutes)
	assert.Equal(t, 50, *settings.WorkMinutes)
	require.NotNil(t, settings.XP)
	assert.Equal(t, 12, *settings.XP.Task)
}

func TestLoadSettingsJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.json", `{
		"streak_milestones": [2, 5],
		"weekly_targets": {"tasks": 3},
		"week_starts_on": "sunday"
	}`)

	settings, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, settings.StreakMilestones)
	require.NotNil(t, settings.WeeklyTargets)
	assert.Equal(t, 3, *settings.WeeklyTargets.Tasks)
	assert.Nil(t, settings.WeeklyTargets.Sessions)
	assert.Equal(t, "sunday", settings.WeekStartsOn)
}

func TestLoadSettingsInvalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.json", `{"work_minutes": "long"}`)

	_, err := LoadSettingsFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings.json")
}

func TestToRules(t *testing.T) {
	base := domain.DefaultRules()

	t.Run("nil settings keep defaults", func(t *testing.T) {
		var s *Settings
		rules, err := s.ToRules(base)
		require.NoError(t, err)
		assert.Equal(t, base.WorkDuration, rules.WorkDuration)
	})

	t.Run("overrides", func(t *testing.T) {
		work, short, perLong, task, sessions := 50, 10, 2, 7, 4
		s := &Settings{
			ShortBreakMinutes:    &short,
			SessionsPerLongBreak: &perLong,
			StreakMilestones:     []int{2, 4},
			TimeZone:             "America/New_York",
			WeekStartsOn:         "Sun",
			WeeklyTargets:        &WeeklyTargetSettings{Sessions: &sessions},
			WorkMinutes:          &work,
			XP:                   &XPSettings{Task: &task},
		}

		rules, err := s.ToRules(base)
		require.NoError(t, err)
		assert.Equal(t, 50*time.Minute, rules.WorkDuration)
		assert.Equal(t, 10*time.Minute, rules.ShortBreakDuration)
		assert.Equal(t, base.LongBreakDuration, rules.LongBreakDuration)
		assert.Equal(t, 2, rules.SessionsPerLongBreak)
		assert.Equal(t, []int{2, 4}, rules.StreakMilestones)
		assert.Equal(t, "America/New_York", rules.Location.String())
		assert.Equal(t, time.Sunday, rules.WeekStartsOn)
		assert.Equal(t, 4, rules.WeeklyTargets.Sessions)
		assert.Equal(t, base.WeeklyTargets.Tasks, rules.WeeklyTargets.Tasks)
		assert.Equal(t, 7, rules.XP.Task)
		assert.Equal(t, base.XP.WorkSession, rules.XP.WorkSession)
	})

	t.Run("does not alias base milestones", func(t *testing.T) {
		s := &Settings{StreakMilestones: []int{5}}
		rules, err := s.ToRules(base)
		require.NoError(t, err)
		rules.StreakMilestones[0] = 99
		assert.Equal(t, 5, s.StreakMilestones[0])
	})

	invalid := []struct {
		name     string
		settings Settings
	}{
		{"zero work duration", Settings{WorkMinutes: new(int)}},
		{"descending milestones", Settings{StreakMilestones: []int{7, 3}}},
		{"unknown week day", Settings{WeekStartsOn: "someday"}},
		{"unknown time zone", Settings{TimeZone: "Mars/Olympus"}},
		{"zero weekly target", Settings{WeeklyTargets: &WeeklyTargetSettings{Tasks: new(int)}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.settings.ToRules(base)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestParseWeekday(t *testing.T) {
	for input, want := range map[string]time.Weekday{
		"monday":   time.Monday,
		"Mon":      time.Monday,
		" SUNDAY ": time.Sunday,
		"sat":      time.Saturday,
	} {
		got, err := ParseWeekday(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("POMAR_HOME", home)
	t.Setenv("POMAR_USER", "alice")
	t.Setenv("POMAR_SOUND", "false")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, home, e.Home)
	assert.Equal(t, "alice", e.User)
	assert.Equal(t, DefaultMaxLogFiles, e.MaxLogFiles)
	assert.False(t, e.SoundEnabled(true))
	assert.True(t, Env{}.SoundEnabled(true))
	assert.True(t, Env{Sound: "loud"}.SoundEnabled(true))
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("POMAR_HOME", home)

	assert.Equal(t, filepath.Join(home, "state.db"), GetDBPath())
	assert.Equal(t, filepath.Join(home, "locks"), GetLockDir())
	assert.Equal(t, filepath.Join(home, "settings.json"), GetSettingsPath())

	writeFile(t, home, "settings.yaml", "")
	assert.Equal(t, filepath.Join(home, "settings.yaml"), GetSettingsPath())
}

func TestGetSettingsExample(t *testing.T) {
	example := GetSettingsExample()

	assert.Equal(t, 25, example["work_minutes"])
	assert.Equal(t, "monday", example["week_starts_on"])
	xp, ok := example["xp"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 10, xp["task"])
	assert.Contains(t, example, "weekly_targets")
}

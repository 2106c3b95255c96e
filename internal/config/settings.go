package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/pomar/internal/domain"
)

// XPSettings overrides entries of the XP table
type XPSettings struct {
	BreakSession    *int `json:"break_session,omitempty" yaml:"break_session,omitempty"`
	LevelUp         *int `json:"level_up,omitempty" yaml:"level_up,omitempty"`
	StreakMilestone *int `json:"streak_milestone,omitempty" yaml:"streak_milestone,omitempty"`
	Task            *int `json:"task,omitempty" yaml:"task,omitempty"`
	WeeklyGoal      *int `json:"weekly_goal,omitempty" yaml:"weekly_goal,omitempty"`
	WorkSession     *int `json:"work_session,omitempty" yaml:"work_session,omitempty"`
}

// WeeklyTargetSettings overrides the weekly goal targets
type WeeklyTargetSettings struct {
	Sessions *int `json:"sessions,omitempty" yaml:"sessions,omitempty"`
	Tasks    *int `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// Settings represents the settings file. Every field is optional.
type Settings struct {
	Debug                *bool                 `json:"debug,omitempty" yaml:"debug,omitempty"`
	LongBreakMinutes     *int                  `json:"long_break_minutes,omitempty" yaml:"long_break_minutes,omitempty"`
	MaxLevel             *int                  `json:"max_level,omitempty" yaml:"max_level,omitempty"`
	MaxLogFiles          *int                  `json:"max_log_files,omitempty" yaml:"max_log_files,omitempty"`
	SessionsPerLongBreak *int                  `json:"sessions_per_long_break,omitempty" yaml:"sessions_per_long_break,omitempty"`
	ShortBreakMinutes    *int                  `json:"short_break_minutes,omitempty" yaml:"short_break_minutes,omitempty"`
	Sound                *bool                 `json:"sound,omitempty" yaml:"sound,omitempty"`
	StreakMilestones     []int                 `json:"streak_milestones,omitempty" yaml:"streak_milestones,omitempty"`
	TimeZone             string                `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
	User                 string                `json:"user,omitempty" yaml:"user,omitempty"`
	WeekStartsOn         string                `json:"week_starts_on,omitempty" yaml:"week_starts_on,omitempty"`
	WeeklyTargets        *WeeklyTargetSettings `json:"weekly_targets,omitempty" yaml:"weekly_targets,omitempty"`
	WorkMinutes          *int                  `json:"work_minutes,omitempty" yaml:"work_minutes,omitempty"`
	XP                   *XPSettings           `json:"xp,omitempty" yaml:"xp,omitempty"`
	XPPerLevel           *int                  `json:"xp_per_level,omitempty" yaml:"xp_per_level,omitempty"`
}

// LoadSettings loads settings from $POMAR_HOME (settings.yaml, then settings.json).
// Returns empty Settings if neither file exists (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from path, decoding YAML or JSON by extension
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
		}
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
		}
	}
	return &settings, nil
}

// ToRules applies the settings on top of base and validates the result
func (s *Settings) ToRules(base domain.Rules) (domain.Rules, error) {
	rules := base
	if s == nil {
		return rules, rules.Validate()
	}

	setMinutes(&rules.WorkDuration, s.WorkMinutes)
	setMinutes(&rules.ShortBreakDuration, s.ShortBreakMinutes)
	setMinutes(&rules.LongBreakDuration, s.LongBreakMinutes)
	setInt(&rules.SessionsPerLongBreak, s.SessionsPerLongBreak)
	setInt(&rules.XPPerLevel, s.XPPerLevel)
	setInt(&rules.MaxLevel, s.MaxLevel)

	if s.XP != nil {
		setInt(&rules.XP.BreakSession, s.XP.BreakSession)
		setInt(&rules.XP.LevelUp, s.XP.LevelUp)
		setInt(&rules.XP.StreakMilestone, s.XP.StreakMilestone)
		setInt(&rules.XP.Task, s.XP.Task)
		setInt(&rules.XP.WeeklyGoal, s.XP.WeeklyGoal)
		setInt(&rules.XP.WorkSession, s.XP.WorkSession)
	}
	if s.WeeklyTargets != nil {
		setInt(&rules.WeeklyTargets.Sessions, s.WeeklyTargets.Sessions)
		setInt(&rules.WeeklyTargets.Tasks, s.WeeklyTargets.Tasks)
	}
	if s.StreakMilestones != nil {
		rules.StreakMilestones = append([]int(nil), s.StreakMilestones...)
	}

	if s.WeekStartsOn != "" {
		day, err := ParseWeekday(s.WeekStartsOn)
		if err != nil {
			return domain.Rules{}, err
		}
		rules.WeekStartsOn = day
	}
	if s.TimeZone != "" {
		loc, err := time.LoadLocation(s.TimeZone)
		if err != nil {
			return domain.Rules{}, fmt.Errorf("%w: invalid time_zone %q: %v", domain.ErrValidation, s.TimeZone, err)
		}
		rules.Location = loc
	}

	if err := rules.Validate(); err != nil {
		return domain.Rules{}, err
	}
	return rules, nil
}

// ParseWeekday accepts full or three-letter English day names, case-insensitive
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: invalid week_starts_on %q", domain.ErrValidation, name)
}

func setMinutes(dst *time.Duration, minutes *int) {
	if minutes != nil {
		*dst = time.Duration(*minutes) * time.Minute
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

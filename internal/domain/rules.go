package domain

import (
	"fmt"
	"slices"
	"time"
)

// XPAwards is the XP table used by the rewards aggregator
type XPAwards struct {
	BreakSession    int
	LevelUp         int
	StreakMilestone int
	Task            int
	WeeklyGoal      int
	WorkSession     int
}

// WeeklyTargets are the counts a user must reach in one week to meet the goal
type WeeklyTargets struct {
	Sessions int
	Tasks    int
}

// Rules holds every configurable constant the engine consumes
type Rules struct {
	LongBreakDuration    time.Duration
	Location             *time.Location
	MaxLevel             int
	SessionsPerLongBreak int
	ShortBreakDuration   time.Duration
	StreakMilestones     []int
	WeekStartsOn         time.Weekday
	WeeklyTargets        WeeklyTargets
	WorkDuration         time.Duration
	XP                   XPAwards
	XPPerLevel           int
}

// DefaultRules returns the rules used when no settings override them
func DefaultRules() Rules {
	return Rules{
		LongBreakDuration:    15 * time.Minute,
		Location:             time.Local,
		MaxLevel:             100,
		SessionsPerLongBreak: 4,
		ShortBreakDuration:   5 * time.Minute,
		StreakMilestones:     []int{3, 7, 14, 30},
		WeekStartsOn:         time.Monday,
		WeeklyTargets:        WeeklyTargets{Sessions: 20, Tasks: 15},
		WorkDuration:         25 * time.Minute,
		XP: XPAwards{
			BreakSession:    0,
			LevelUp:         20,
			StreakMilestone: 50,
			Task:            10,
			WeeklyGoal:      100,
			WorkSession:     25,
		},
		XPPerLevel: 100,
	}
}

// Validate checks the rules for values the engine cannot work with
func (r Rules) Validate() error {
	if r.WorkDuration <= 0 || r.ShortBreakDuration <= 0 || r.LongBreakDuration <= 0 {
		return fmt.Errorf("%w: session durations must be positive", ErrValidation)
	}
	if r.SessionsPerLongBreak < 1 {
		return fmt.Errorf("%w: sessions per long break must be at least 1", ErrValidation)
	}
	if r.XPPerLevel < 1 {
		return fmt.Errorf("%w: xp per level must be at least 1", ErrValidation)
	}
	if r.MaxLevel < 1 {
		return fmt.Errorf("%w: max level must be at least 1", ErrValidation)
	}
	if r.WeeklyTargets.Tasks < 1 || r.WeeklyTargets.Sessions < 1 {
		return fmt.Errorf("%w: weekly targets must be at least 1", ErrValidation)
	}
	xp := r.XP
	for name, v := range map[string]int{
		"break_session":    xp.BreakSession,
		"level_up":         xp.LevelUp,
		"streak_milestone": xp.StreakMilestone,
		"task":             xp.Task,
		"weekly_goal":      xp.WeeklyGoal,
		"work_session":     xp.WorkSession,
	} {
		if v < 0 {
			return fmt.Errorf("%w: xp award %s must not be negative", ErrValidation, name)
		}
	}
	for i, m := range r.StreakMilestones {
		if m < 1 {
			return fmt.Errorf("%w: streak milestones must be positive", ErrValidation)
		}
		if i > 0 && m <= r.StreakMilestones[i-1] {
			return fmt.Errorf("%w: streak milestones must be strictly ascending", ErrValidation)
		}
	}
	if r.WeekStartsOn < time.Sunday || r.WeekStartsOn > time.Saturday {
		return fmt.Errorf("%w: invalid week start day %d", ErrValidation, r.WeekStartsOn)
	}
	return nil
}

// DefaultDuration returns the configured planned duration for a session type
func (r Rules) DefaultDuration(t SessionType) (time.Duration, error) {
	switch t {
	case SessionWork:
		return r.WorkDuration, nil
	case SessionShortBreak:
		return r.ShortBreakDuration, nil
	case SessionLongBreak:
		return r.LongBreakDuration, nil
	default:
		return 0, fmt.Errorf("%w: unknown session type %q", ErrValidation, t)
	}
}

// SessionXP returns the XP awarded for completing a session of type t
func (r Rules) SessionXP(t SessionType) int {
	if t == SessionWork {
		return r.XP.WorkSession
	}
	return r.XP.BreakSession
}

// NextMilestone returns the smallest milestone strictly above days, or 0 if none
func (r Rules) NextMilestone(days int) int {
	for _, m := range r.StreakMilestones {
		if m > days {
			return m
		}
	}
	return 0
}

// IsMilestone reports whether days is one of the configured milestones
func (r Rules) IsMilestone(days int) bool {
	return slices.Contains(r.StreakMilestones, days)
}

package domain

import (
	"fmt"
	"time"
)

// RewardSummary describes every grant made for one completion event
type RewardSummary struct {
	// Duplicate is set when the event had already been rewarded; all other fields are zero
	Duplicate             bool
	LevelUpBonusGranted   int
	MilestoneDays         int
	NewLevel              *int
	StreakDays            int
	StreakRewardGranted   int
	WeeklyGoalMet         bool
	WeeklyProgressPercent float64
	WeeklyRewardGranted   int
	XPGranted             int
}

// TotalXP returns the sum of all XP granted in the summary
func (r RewardSummary) TotalXP() int {
	return r.XPGranted + r.StreakRewardGranted + r.WeeklyRewardGranted + r.LevelUpBonusGranted
}

// RewardSource is the kind of event a grant rewards
type RewardSource string

const (
	SourceSession RewardSource = "session"
	SourceTask    RewardSource = "task"
)

// GrantStep is one step of the reward sequence
type GrantStep string

// Steps run in this order; a resumed grant skips those already recorded
const (
	StepBase        GrantStep = "base"
	StepStreak      GrantStep = "streak"
	StepStreakBonus GrantStep = "streak_bonus"
	StepWeekly      GrantStep = "weekly"
	StepWeeklyBonus GrantStep = "weekly_bonus"
	StepLevelUp     GrantStep = "level_up"
)

// RewardGrant is the idempotency journal entry for one completion event
type RewardGrant struct {
	Completed             bool
	CreatedAt             time.Time
	Key                   string
	MilestoneDays         int
	OccurredAt            time.Time
	Source                RewardSource
	SourceID              string
	StartLevel            int
	Steps                 map[GrantStep]int
	StreakDays            int
	UserID                string
	WeeklyGoalMet         bool
	WeeklyProgressPercent float64
}

// GrantKey builds the journal key for an event. Keys are scoped per user.
func GrantKey(userID string, source RewardSource, sourceID string) string {
	return fmt.Sprintf("%s/%s/%s", userID, source, sourceID)
}

// NewRewardGrant starts a journal entry for an event
func NewRewardGrant(userID string, source RewardSource, sourceID string, startLevel int, occurredAt, now time.Time) RewardGrant {
	return RewardGrant{
		CreatedAt:  now,
		Key:        GrantKey(userID, source, sourceID),
		OccurredAt: occurredAt,
		Source:     source,
		SourceID:   sourceID,
		StartLevel: startLevel,
		Steps:      make(map[GrantStep]int),
		UserID:     userID,
	}
}

// Has reports whether step has been recorded
func (g RewardGrant) Has(step GrantStep) bool {
	_, ok := g.Steps[step]
	return ok
}

// Mark records step with the XP it granted (0 when it granted none)
func (g *RewardGrant) Mark(step GrantStep, xp int) {
	if g.Steps == nil {
		g.Steps = make(map[GrantStep]int)
	}
	g.Steps[step] = xp
}

// Ref returns the reference written to entities touched by step
func (g RewardGrant) Ref(step GrantStep) string {
	return g.Key + "#" + string(step)
}

// Summary builds the summary of every step recorded so far
func (g RewardGrant) Summary(finalLevel int) RewardSummary {
	s := RewardSummary{
		LevelUpBonusGranted:   g.Steps[StepLevelUp],
		MilestoneDays:         g.MilestoneDays,
		StreakDays:            g.StreakDays,
		StreakRewardGranted:   g.Steps[StepStreakBonus],
		WeeklyGoalMet:         g.WeeklyGoalMet,
		WeeklyProgressPercent: g.WeeklyProgressPercent,
		WeeklyRewardGranted:   g.Steps[StepWeeklyBonus],
		XPGranted:             g.Steps[StepBase],
	}
	if finalLevel > g.StartLevel {
		level := finalLevel
		s.NewLevel = &level
	}
	return s
}

package domain

import "fmt"

// ProgressionState is a user's XP tally and derived level
type ProgressionState struct {
	// AppliedRef identifies the last reward step written to this state
	AppliedRef string
	Level      int
	UserID     string
	XPTotal    int
}

// LevelChange reports the level before and after an XP grant
type LevelChange struct {
	NewLevel      int
	PreviousLevel int
}

// LeveledUp reports whether the grant crossed a level boundary
func (c LevelChange) LeveledUp() bool {
	return c.NewLevel > c.PreviousLevel
}

// NewProgressionState returns the state of a user with no XP
func NewProgressionState(userID string) ProgressionState {
	return ProgressionState{Level: 1, UserID: userID}
}

// Grant adds amount XP and recomputes the level
func (p *ProgressionState) Grant(amount int, rules Rules) (LevelChange, error) {
	if amount <= 0 {
		return LevelChange{}, fmt.Errorf("%w: xp amount must be positive, got %d", ErrValidation, amount)
	}
	prev := LevelFor(p.XPTotal, rules)
	p.XPTotal += amount
	p.Level = LevelFor(p.XPTotal, rules)
	return LevelChange{NewLevel: p.Level, PreviousLevel: prev}, nil
}

// ProgressPercent returns the progress through the current level
func (p ProgressionState) ProgressPercent(rules Rules) float64 {
	return LevelProgressPercent(p.XPTotal, rules)
}

// LevelFor returns floor(xp / XPPerLevel) + 1, capped at MaxLevel
func LevelFor(xp int, rules Rules) int {
	if xp < 0 {
		xp = 0
	}
	level := xp/rules.XPPerLevel + 1
	if level > rules.MaxLevel {
		return rules.MaxLevel
	}
	return level
}

// LevelProgressPercent returns 100 * (xp mod XPPerLevel) / XPPerLevel, or 100 at the cap
func LevelProgressPercent(xp int, rules Rules) float64 {
	if LevelFor(xp, rules) >= rules.MaxLevel {
		return 100
	}
	if xp < 0 {
		xp = 0
	}
	return 100 * float64(xp%rules.XPPerLevel) / float64(rules.XPPerLevel)
}

package domain

import "fmt"

// ActivityKind is what counts toward the weekly goal
type ActivityKind string

const (
	ActivitySession ActivityKind = "session"
	ActivityTask    ActivityKind = "task"
)

// WeeklyGoalState tracks completed tasks and sessions for one week
type WeeklyGoalState struct {
	// AppliedRef identifies the last reward step written to this state
	AppliedRef        string
	CompletedSessions int
	CompletedTasks    int
	GoalMet           bool
	TargetSessions    int
	TargetTasks       int
	UserID            string
	WeekStartDate     Date
}

// WeeklyResult is the outcome of recording one weekly activity
type WeeklyResult struct {
	GoalJustMet     bool
	ProgressPercent float64
}

// NewWeeklyGoalState returns an empty goal for the week containing day
func NewWeeklyGoalState(userID string, day Date, rules Rules) WeeklyGoalState {
	return WeeklyGoalState{
		TargetSessions: rules.WeeklyTargets.Sessions,
		TargetTasks:    rules.WeeklyTargets.Tasks,
		UserID:         userID,
		WeekStartDate:  day.WeekStart(rules.WeekStartsOn),
	}
}

// RollOver resets the counters when day belongs to a later week than the stored one.
// Targets are refreshed from rules on reset. Returns true when a reset happened.
func (w *WeeklyGoalState) RollOver(day Date, rules Rules) bool {
	start := day.WeekStart(rules.WeekStartsOn)
	if !w.WeekStartDate.IsZero() && !w.WeekStartDate.Before(start) {
		return false
	}
	*w = WeeklyGoalState{
		AppliedRef:     w.AppliedRef,
		TargetSessions: rules.WeeklyTargets.Sessions,
		TargetTasks:    rules.WeeklyTargets.Tasks,
		UserID:         w.UserID,
		WeekStartDate:  start,
	}
	return true
}

// RecordActivity counts one completed task or session on day. GoalJustMet is
// true only for the activity that first satisfies both targets in the week.
func (w *WeeklyGoalState) RecordActivity(kind ActivityKind, day Date, rules Rules) (WeeklyResult, error) {
	if kind != ActivityTask && kind != ActivitySession {
		return WeeklyResult{}, fmt.Errorf("%w: unknown activity kind %q", ErrValidation, kind)
	}
	w.RollOver(day, rules)
	if w.TargetTasks < 1 || w.TargetSessions < 1 {
		w.TargetTasks = rules.WeeklyTargets.Tasks
		w.TargetSessions = rules.WeeklyTargets.Sessions
	}

	// Activities backdated into an earlier week do not count toward this one
	if day.WeekStart(rules.WeekStartsOn).Before(w.WeekStartDate) {
		return WeeklyResult{ProgressPercent: w.ProgressPercent()}, nil
	}

	switch kind {
	case ActivityTask:
		w.CompletedTasks++
	case ActivitySession:
		w.CompletedSessions++
	}

	result := WeeklyResult{}
	if !w.GoalMet && w.CompletedTasks >= w.TargetTasks && w.CompletedSessions >= w.TargetSessions {
		w.GoalMet = true
		result.GoalJustMet = true
	}
	result.ProgressPercent = w.ProgressPercent()
	return result, nil
}

// ProgressPercent combines both counters, each capped at its target
func (w WeeklyGoalState) ProgressPercent() float64 {
	total := w.TargetTasks + w.TargetSessions
	if total <= 0 {
		return 0
	}
	done := min(w.CompletedTasks, w.TargetTasks) + min(w.CompletedSessions, w.TargetSessions)
	return 100 * float64(done) / float64(total)
}

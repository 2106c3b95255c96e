package domain

import "time"

// EventKind identifies an outbound engine event
type EventKind string

const (
	EventDistractionRecorded EventKind = "distraction_recorded"
	EventLevelUp             EventKind = "level_up"
	EventSessionCancelled    EventKind = "session_cancelled"
	EventSessionCompleted    EventKind = "session_completed"
	EventSessionPaused       EventKind = "session_paused"
	EventSessionResumed      EventKind = "session_resumed"
	EventSessionStarted      EventKind = "session_started"
	EventStreakMilestone     EventKind = "streak_milestone"
	EventTaskCompleted       EventKind = "task_completed"
	EventWeeklyGoalMet       EventKind = "weekly_goal_met"
)

// Event is emitted by the engine for presentation and notification collaborators.
// Concrete types below are the only implementations.
type Event interface {
	Kind() EventKind
	User() string
}

// SessionStarted is emitted when a session enters running
type SessionStarted struct {
	Session Session
}

// SessionPaused is emitted when a running session is paused
type SessionPaused struct {
	Session Session
}

// SessionResumed is emitted when a paused session resumes
type SessionResumed struct {
	Session Session
}

// SessionCancelled is emitted when an active session is cancelled
type SessionCancelled struct {
	Session Session
}

// SessionCompleted is emitted after a session's rewards have been granted
type SessionCompleted struct {
	Session Session
	Summary RewardSummary
}

// TaskCompleted is emitted after a task's rewards have been granted
type TaskCompleted struct {
	CompletedAt time.Time
	Summary     RewardSummary
	TaskID      string
	UserID      string
}

// LevelUp is emitted when a grant sequence raised the user's level
type LevelUp struct {
	NewLevel int
	UserID   string
}

// StreakMilestone is emitted when a streak lands on a configured milestone
type StreakMilestone struct {
	Days   int
	UserID string
}

// WeeklyGoalMet is emitted the first time both weekly targets are reached
type WeeklyGoalMet struct {
	UserID        string
	WeekStartDate Date
}

// DistractionRecorded is emitted when an interruption is appended
type DistractionRecorded struct {
	Event DistractionEvent
}

func (SessionStarted) Kind() EventKind      { return EventSessionStarted }
func (SessionPaused) Kind() EventKind       { return EventSessionPaused }
func (SessionResumed) Kind() EventKind      { return EventSessionResumed }
func (SessionCancelled) Kind() EventKind    { return EventSessionCancelled }
func (SessionCompleted) Kind() EventKind    { return EventSessionCompleted }
func (TaskCompleted) Kind() EventKind       { return EventTaskCompleted }
func (LevelUp) Kind() EventKind             { return EventLevelUp }
func (StreakMilestone) Kind() EventKind     { return EventStreakMilestone }
func (WeeklyGoalMet) Kind() EventKind       { return EventWeeklyGoalMet }
func (DistractionRecorded) Kind() EventKind { return EventDistractionRecorded }

func (e SessionStarted) User() string      { return e.Session.UserID }
func (e SessionPaused) User() string       { return e.Session.UserID }
func (e SessionResumed) User() string      { return e.Session.UserID }
func (e SessionCancelled) User() string    { return e.Session.UserID }
func (e SessionCompleted) User() string    { return e.Session.UserID }
func (e TaskCompleted) User() string       { return e.UserID }
func (e LevelUp) User() string             { return e.UserID }
func (e StreakMilestone) User() string     { return e.UserID }
func (e WeeklyGoalMet) User() string       { return e.UserID }
func (e DistractionRecorded) User() string { return e.Event.UserID }

package events

import (
	"context"
	"log/slog"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

// LogSubscriber writes every event to the structured log
func LogSubscriber(ctx context.Context, event domain.Event) {
	attrs := []any{"event", event.Kind(), "user", event.User()}

	switch e := event.(type) {
	case domain.SessionStarted:
		attrs = append(attrs, "session_id", e.Session.ID, "type", e.Session.Type,
			"planned_seconds", e.Session.PlannedDurationSeconds)
	case domain.SessionPaused:
		attrs = append(attrs, "session_id", e.Session.ID)
	case domain.SessionResumed:
		attrs = append(attrs, "session_id", e.Session.ID)
	case domain.SessionCancelled:
		attrs = append(attrs, "session_id", e.Session.ID)
	case domain.SessionCompleted:
		attrs = append(attrs, "session_id", e.Session.ID,
			"actual_seconds", e.Session.ActualDurationSeconds,
			"early", e.Session.EarlyCompletion,
			summaryGroup(e.Summary))
	case domain.TaskCompleted:
		attrs = append(attrs, "task_id", e.TaskID, summaryGroup(e.Summary))
	case domain.LevelUp:
		attrs = append(attrs, "new_level", e.NewLevel)
	case domain.StreakMilestone:
		attrs = append(attrs, "days", e.Days)
	case domain.WeeklyGoalMet:
		attrs = append(attrs, "week_start", e.WeekStartDate.String())
	case domain.DistractionRecorded:
		attrs = append(attrs, "session_id", e.Event.SessionID, "type", e.Event.Type)
	}

	logging.Logger.InfoContext(ctx, "Engine event", attrs...)
}

func summaryGroup(s domain.RewardSummary) slog.Attr {
	return slog.Group("summary",
		"duplicate", s.Duplicate,
		"xp", s.XPGranted,
		"streak_xp", s.StreakRewardGranted,
		"weekly_xp", s.WeeklyRewardGranted,
		"level_up_xp", s.LevelUpBonusGranted,
		"streak_days", s.StreakDays,
	)
}

// soundKinds are the events worth an audible cue
var soundKinds = []domain.EventKind{
	domain.EventLevelUp,
	domain.EventSessionCompleted,
	domain.EventSessionStarted,
	domain.EventStreakMilestone,
	domain.EventWeeklyGoalMet,
}

// SubscribeSound plays a sound for user-facing events on bus.
// Duplicate completions are absorbed silently.
func SubscribeSound(bus *Bus, player ports.SoundPlayer) func() {
	return bus.Subscribe(func(ctx context.Context, event domain.Event) {
		if e, ok := event.(domain.SessionCompleted); ok && e.Summary.Duplicate {
			return
		}
		if err := player.PlaySoundForEvent(event.Kind()); err != nil {
			logging.Logger.Warn("Failed to play sound", "event", event.Kind(), "error", err)
		}
	}, soundKinds...)
}

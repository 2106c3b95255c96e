package storage

import (
	"fmt"
	"time"

	"github.com/renato0307/pomar/internal/domain"
)

// sessionModelToDomain converts a SessionModel (GORM) and its pauses to domain.Session
func sessionModelToDomain(m SessionModel, pauses []SessionPauseModel) domain.Session {
	s := domain.Session{
		ActualDurationSeconds:     m.ActualDurationSeconds,
		CompletedWorkCountInCycle: m.CompletedWorkCountInCycle,
		EarlyCompletion:           m.EarlyCompletion,
		EndedAt:                   m.EndedAt,
		ID:                        m.ID,
		PlannedDurationSeconds:    m.PlannedDurationSeconds,
		Rating:                    m.Rating,
		StartedAt:                 m.StartedAt,
		Status:                    domain.SessionStatus(m.Status),
		Type:                      domain.SessionType(m.Type),
		UserID:                    m.UserID,
		XPEarned:                  m.XPEarned,
	}
	for _, p := range pauses {
		s.PauseIntervals = append(s.PauseIntervals, domain.PauseInterval{End: p.EndAt, Start: p.StartAt})
	}
	return s
}

// domainToSessionModel converts a domain.Session to SessionModel (GORM) and pause rows
func domainToSessionModel(s domain.Session) (SessionModel, []SessionPauseModel) {
	m := SessionModel{
		ActualDurationSeconds:     s.ActualDurationSeconds,
		CompletedWorkCountInCycle: s.CompletedWorkCountInCycle,
		EarlyCompletion:           s.EarlyCompletion,
		EndedAt:                   utcPtr(s.EndedAt),
		ID:                        s.ID,
		PlannedDurationSeconds:    s.PlannedDurationSeconds,
		Rating:                    s.Rating,
		StartedAt:                 s.StartedAt.UTC(),
		Status:                    string(s.Status),
		Type:                      string(s.Type),
		UserID:                    s.UserID,
		XPEarned:                  s.XPEarned,
	}
	pauses := make([]SessionPauseModel, len(s.PauseIntervals))
	for i, p := range s.PauseIntervals {
		pauses[i] = SessionPauseModel{
			EndAt:     utcPtr(p.End),
			Position:  i,
			SessionID: s.ID,
			StartAt:   p.Start.UTC(),
		}
	}
	return m, pauses
}

func distractionModelToDomain(m DistractionModel) domain.DistractionEvent {
	return domain.DistractionEvent{
		ID:         m.ID,
		OccurredAt: m.OccurredAt,
		SessionID:  m.SessionID,
		Type:       domain.DistractionType(m.Type),
		UserID:     m.UserID,
	}
}

func domainToDistractionModel(e domain.DistractionEvent) DistractionModel {
	return DistractionModel{
		ID:         e.ID,
		OccurredAt: e.OccurredAt.UTC(),
		SessionID:  e.SessionID,
		Type:       string(e.Type),
		UserID:     e.UserID,
	}
}

func streakModelToDomain(m StreakModel) (domain.StreakState, error) {
	last, err := domain.ParseDate(m.LastActivityDate)
	if err != nil {
		return domain.StreakState{}, fmt.Errorf("streak for %s: %w", m.UserID, err)
	}
	return domain.StreakState{
		AppliedRef:        m.AppliedRef,
		CurrentStreakDays: m.CurrentStreakDays,
		LastActivityDate:  last,
		LongestStreakDays: m.LongestStreakDays,
		NextMilestoneDays: m.NextMilestoneDays,
		UserID:            m.UserID,
	}, nil
}

func domainToStreakModel(s domain.StreakState) StreakModel {
	return StreakModel{
		AppliedRef:        s.AppliedRef,
		CurrentStreakDays: s.CurrentStreakDays,
		LastActivityDate:  s.LastActivityDate.String(),
		LongestStreakDays: s.LongestStreakDays,
		NextMilestoneDays: s.NextMilestoneDays,
		UserID:            s.UserID,
	}
}

func weeklyGoalModelToDomain(m WeeklyGoalModel) (domain.WeeklyGoalState, error) {
	start, err := domain.ParseDate(m.WeekStartDate)
	if err != nil {
		return domain.WeeklyGoalState{}, fmt.Errorf("weekly goal for %s: %w", m.UserID, err)
	}
	return domain.WeeklyGoalState{
		AppliedRef:        m.AppliedRef,
		CompletedSessions: m.CompletedSessions,
		CompletedTasks:    m.CompletedTasks,
		GoalMet:           m.GoalMet,
		TargetSessions:    m.TargetSessions,
		TargetTasks:       m.TargetTasks,
		UserID:            m.UserID,
		WeekStartDate:     start,
	}, nil
}

func domainToWeeklyGoalModel(w domain.WeeklyGoalState) WeeklyGoalModel {
	return WeeklyGoalModel{
		AppliedRef:        w.AppliedRef,
		CompletedSessions: w.CompletedSessions,
		CompletedTasks:    w.CompletedTasks,
		GoalMet:           w.GoalMet,
		TargetSessions:    w.TargetSessions,
		TargetTasks:       w.TargetTasks,
		UserID:            w.UserID,
		WeekStartDate:     w.WeekStartDate.String(),
	}
}

func grantModelToDomain(m RewardGrantModel, steps []RewardGrantStepModel) domain.RewardGrant {
	g := domain.RewardGrant{
		Completed:             m.Completed,
		CreatedAt:             m.CreatedAt,
		Key:                   m.Key,
		MilestoneDays:         m.MilestoneDays,
		OccurredAt:            m.OccurredAt,
		Source:                domain.RewardSource(m.Source),
		SourceID:              m.SourceID,
		StartLevel:            m.StartLevel,
		Steps:                 make(map[domain.GrantStep]int, len(steps)),
		StreakDays:            m.StreakDays,
		UserID:                m.UserID,
		WeeklyGoalMet:         m.WeeklyGoalMet,
		WeeklyProgressPercent: m.WeeklyProgressPercent,
	}
	for _, s := range steps {
		g.Steps[domain.GrantStep(s.Step)] = s.XP
	}
	return g
}

func domainToGrantModel(g domain.RewardGrant) (RewardGrantModel, []RewardGrantStepModel) {
	m := RewardGrantModel{
		Completed:             g.Completed,
		CreatedAt:             g.CreatedAt.UTC(),
		Key:                   g.Key,
		MilestoneDays:         g.MilestoneDays,
		OccurredAt:            g.OccurredAt.UTC(),
		Source:                string(g.Source),
		SourceID:              g.SourceID,
		StartLevel:            g.StartLevel,
		StreakDays:            g.StreakDays,
		UserID:                g.UserID,
		WeeklyGoalMet:         g.WeeklyGoalMet,
		WeeklyProgressPercent: g.WeeklyProgressPercent,
	}
	steps := make([]RewardGrantStepModel, 0, len(g.Steps))
	for step, xp := range g.Steps {
		steps = append(steps, RewardGrantStepModel{GrantKey: g.Key, Step: string(step), XP: xp})
	}
	return m, steps
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

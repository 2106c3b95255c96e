package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

// ProgressRepository is what the progress snapshot reads from
type ProgressRepository interface {
	ports.ProgressionRepository
	ports.SessionReader
	ports.StreakRepository
	ports.WeeklyGoalRepository
}

// ProgressService builds read-only progress snapshots
type ProgressService struct {
	clock ports.Clock
	repo  ProgressRepository
	rules domain.Rules
}

// NewProgressService creates a new ProgressService
func NewProgressService(repo ProgressRepository, clock ports.Clock, rules domain.Rules) *ProgressService {
	return &ProgressService{clock: clock, repo: repo, rules: rules}
}

// Profile loads the user's state concurrently and returns it as seen now:
// a streak reads as zero once a day has been missed and the weekly goal is
// rolled into the current week. Nothing is written.
func (s *ProgressService) Profile(ctx context.Context, userID string) (*Profile, error) {
	var (
		prog    domain.ProgressionState
		streak  domain.StreakState
		weekly  domain.WeeklyGoalState
		session *domain.Session
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if prog, err = s.repo.LoadProgression(gctx, userID); err != nil {
			return fmt.Errorf("failed to load progression: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if streak, err = s.repo.LoadStreak(gctx, userID); err != nil {
			return fmt.Errorf("failed to load streak: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if weekly, err = s.repo.LoadWeeklyGoal(gctx, userID); err != nil {
			return fmt.Errorf("failed to load weekly goal: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if session, err = s.repo.LoadSession(gctx, userID); err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := domain.DateIn(now, s.rules.Location)
	weekly.RollOver(today, s.rules)

	profile := &Profile{
		Level:                prog.Level,
		LevelProgressPercent: prog.ProgressPercent(s.rules),
		LongestStreakDays:    streak.LongestStreakDays,
		MaxLevel:             prog.Level >= s.rules.MaxLevel,
		StreakDays:           streak.ActiveDays(today),
		SuggestedNext:        domain.SuggestNextType(session, s.rules),
		UserID:               userID,
		Weekly:               weekly,
		WeeklyProgress:       weekly.ProgressPercent(),
		XPTotal:              prog.XPTotal,
	}
	profile.NextMilestoneDays = s.rules.NextMilestone(profile.StreakDays)
	if !profile.MaxLevel {
		profile.XPToNextLevel = s.rules.XPPerLevel - prog.XPTotal%s.rules.XPPerLevel
	}
	if session != nil && session.Status.IsActive() {
		profile.Current = newSnapshot(*session, now)
	}
	return profile, nil
}

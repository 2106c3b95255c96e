package services

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/ports"
)

// RewardsService grants XP, streak and weekly goal rewards for completed
// tasks and sessions. Each event is rewarded at most once; a grant that
// failed part way resumes from the journal on the next call for that user.
type RewardsService struct {
	clock     ports.Clock
	locker    ports.UserLocker
	publisher ports.EventPublisher
	repo      ports.ProgressRepository
	rules     domain.Rules
	sessions  ports.SessionReader
}

// NewRewardsService creates a new RewardsService
func NewRewardsService(
	repo ports.ProgressRepository,
	sessions ports.SessionReader,
	locker ports.UserLocker,
	publisher ports.EventPublisher,
	clock ports.Clock,
	rules domain.Rules,
) *RewardsService {
	return &RewardsService{
		clock:     clock,
		locker:    locker,
		publisher: publisher,
		repo:      repo,
		rules:     rules,
		sessions:  sessions,
	}
}

// rewardEvent describes the completion being rewarded
type rewardEvent struct {
	baseXP     int
	kind       domain.ActivityKind
	occurredAt time.Time
	// qualifies is false for events that neither extend streaks nor count toward the weekly goal
	qualifies bool
	// session is the stored session for session events
	session  *domain.Session
	source   domain.RewardSource
	sourceID string
	userID   string
}

// completed builds the event announcing the rewarded completion
func (ev rewardEvent) completed(summary domain.RewardSummary) domain.Event {
	if ev.session != nil {
		return domain.SessionCompleted{Session: *ev.session, Summary: summary}
	}
	return domain.TaskCompleted{
		CompletedAt: ev.occurredAt,
		Summary:     summary,
		TaskID:      ev.sourceID,
		UserID:      ev.userID,
	}
}

func (s *RewardsService) taskEvent(userID, taskID string, completedAt time.Time) rewardEvent {
	return rewardEvent{
		baseXP:     s.rules.XP.Task,
		kind:       domain.ActivityTask,
		occurredAt: completedAt,
		qualifies:  true,
		source:     domain.SourceTask,
		sourceID:   taskID,
		userID:     userID,
	}
}

func sessionEvent(session *domain.Session) rewardEvent {
	return rewardEvent{
		baseXP:     session.XPEarned,
		kind:       domain.ActivitySession,
		occurredAt: *session.EndedAt,
		qualifies:  session.Type == domain.SessionWork,
		session:    session,
		source:     domain.SourceSession,
		sourceID:   session.ID,
		userID:     session.UserID,
	}
}

// OnTaskCompleted rewards a completed task. A zero completedAt means now.
func (s *RewardsService) OnTaskCompleted(ctx context.Context, userID, taskID string, completedAt time.Time) (domain.RewardSummary, error) {
	if userID == "" || taskID == "" {
		return domain.RewardSummary{}, fmt.Errorf("%w: user and task identifiers are required", domain.ErrValidation)
	}
	if completedAt.IsZero() {
		completedAt = s.clock.Now()
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return domain.RewardSummary{}, err
	}
	ev := s.taskEvent(userID, taskID, completedAt)
	summary, events, err := s.grant(ctx, ev)
	unlock()
	if err != nil {
		s.publish(ctx, events)
		return domain.RewardSummary{}, err
	}

	if !summary.Duplicate {
		events = append(events, ev.completed(summary))
	}
	s.publish(ctx, events)
	return summary, nil
}

// OnSessionCompleted rewards a completed session. The session is read back
// from storage: it must be stored as completed and owned by userID, and the
// stored XP is what gets granted.
func (s *RewardsService) OnSessionCompleted(ctx context.Context, userID string, session domain.Session) (domain.RewardSummary, error) {
	if userID == "" || session.ID == "" {
		return domain.RewardSummary{}, fmt.Errorf("%w: user and session identifiers are required", domain.ErrValidation)
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return domain.RewardSummary{}, err
	}
	stored, summary, events, err := s.grantSession(ctx, userID, session.ID)
	unlock()
	if err != nil {
		s.publish(ctx, events)
		return domain.RewardSummary{}, err
	}

	if !summary.Duplicate {
		events = append(events, sessionEvent(stored).completed(summary))
	}
	s.publish(ctx, events)
	return summary, nil
}

// grantSession rewards the stored session with id; the caller holds the user's lock
func (s *RewardsService) grantSession(ctx context.Context, userID, sessionID string) (*domain.Session, domain.RewardSummary, []domain.Event, error) {
	session, err := s.completedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, domain.RewardSummary{}, nil, err
	}
	summary, events, err := s.grant(ctx, sessionEvent(session))
	return session, summary, events, err
}

func (s *RewardsService) completedSession(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, fmt.Errorf("%w: session %s does not belong to user %s", domain.ErrNotFound, sessionID, userID)
	}
	if session.Status != domain.StatusCompleted || session.EndedAt == nil {
		return nil, fmt.Errorf("%w: only completed sessions are rewarded, session %s is %s",
			domain.ErrInvalidState, sessionID, session.Status)
	}
	return session, nil
}

// grant rewards ev after finishing any other interrupted grant of the user,
// so at most one grant per user is ever in progress. The returned events
// include those of resumed grants, also when err is not nil.
func (s *RewardsService) grant(ctx context.Context, ev rewardEvent) (domain.RewardSummary, []domain.Event, error) {
	key := domain.GrantKey(ev.userID, ev.source, ev.sourceID)

	events, err := s.resumePending(ctx, ev.userID, key)
	if err != nil {
		return domain.RewardSummary{}, events, err
	}

	g, err := s.repo.LoadGrant(ctx, key)
	if err != nil {
		return domain.RewardSummary{}, events, fmt.Errorf("failed to load reward grant: %w", err)
	}
	if g != nil && g.Completed {
		logging.Logger.Info("Duplicate completion ignored", "user", ev.userID, "key", key)
		return domain.RewardSummary{Duplicate: true}, events, nil
	}

	summary, more, err := s.apply(ctx, ev, g)
	if err != nil {
		return domain.RewardSummary{}, events, err
	}
	return summary, append(events, more...), nil
}

// resumePending completes the user's interrupted grants other than skipKey
func (s *RewardsService) resumePending(ctx context.Context, userID, skipKey string) ([]domain.Event, error) {
	pending, err := s.repo.ListPendingGrants(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reward grants: %w", err)
	}

	var events []domain.Event
	for _, g := range pending {
		if g.Key == skipKey {
			continue
		}
		ev, err := s.eventFor(ctx, g)
		if err != nil {
			return events, fmt.Errorf("failed to resume reward grant %s: %w", g.Key, err)
		}
		summary, more, err := s.apply(ctx, ev, &g)
		if err != nil {
			return events, err
		}
		events = append(events, more...)
		events = append(events, ev.completed(summary))
	}
	return events, nil
}

// eventFor rebuilds the event a journal entry was started for
func (s *RewardsService) eventFor(ctx context.Context, g domain.RewardGrant) (rewardEvent, error) {
	switch g.Source {
	case domain.SourceTask:
		return s.taskEvent(g.UserID, g.SourceID, g.OccurredAt), nil
	case domain.SourceSession:
		session, err := s.completedSession(ctx, g.UserID, g.SourceID)
		if err != nil {
			return rewardEvent{}, err
		}
		return sessionEvent(session), nil
	default:
		return rewardEvent{}, fmt.Errorf("%w: unknown reward source %q", domain.ErrInvalidState, g.Source)
	}
}

// apply runs the reward steps for ev, starting a journal entry when g is nil.
// Every step is recorded in the journal right after its entity write, and an
// entity already carrying the step's reference is not written again.
func (s *RewardsService) apply(ctx context.Context, ev rewardEvent, g *domain.RewardGrant) (domain.RewardSummary, []domain.Event, error) {
	key := domain.GrantKey(ev.userID, ev.source, ev.sourceID)

	prog, err := s.repo.LoadProgression(ctx, ev.userID)
	if err != nil {
		return domain.RewardSummary{}, nil, fmt.Errorf("failed to load progression: %w", err)
	}

	if g == nil {
		fresh := domain.NewRewardGrant(ev.userID, ev.source, ev.sourceID, prog.Level, ev.occurredAt, s.clock.Now())
		g = &fresh
		if err := s.repo.SaveGrant(ctx, *g); err != nil {
			return domain.RewardSummary{}, nil, fmt.Errorf("failed to save reward grant: %w", err)
		}
	} else {
		logging.Logger.Info("Resuming interrupted reward grant", "user", ev.userID, "key", key, "steps", len(g.Steps))
	}

	day := domain.DateIn(g.OccurredAt, s.rules.Location)

	// 1. Base award
	if !g.Has(domain.StepBase) {
		if err := s.applyXP(ctx, &prog, ev.baseXP, g.Ref(domain.StepBase)); err != nil {
			return domain.RewardSummary{}, nil, err
		}
		if err := s.mark(ctx, g, domain.StepBase, ev.baseXP); err != nil {
			return domain.RewardSummary{}, nil, err
		}
	}

	// 2. Streak
	if !g.Has(domain.StepStreak) {
		if err := s.recordStreak(ctx, g, ev, day); err != nil {
			return domain.RewardSummary{}, nil, err
		}
	}

	// 3. Streak milestone bonus
	if !g.Has(domain.StepStreakBonus) {
		xp := 0
		if g.MilestoneDays > 0 {
			xp = s.rules.XP.StreakMilestone
		}
		if err := s.applyXP(ctx, &prog, xp, g.Ref(domain.StepStreakBonus)); err != nil {
			return domain.RewardSummary{}, nil, err
		}
		if err := s.mark(ctx, g, domain.StepStreakBonus, xp); err != nil {
			return domain.RewardSummary{}, nil, err
		}
	}

	// 4. Weekly goal
	if !g.Has(domain.StepWeekly) {
		if err := s.recordWeekly(ctx, g, ev, day); err != nil {
			return domain.RewardSummary{}, nil, err
		}
	}

	// 5. Weekly goal bonus
	if !g.Has(domain.StepWeeklyBonus) {
		xp := 0
		if g.WeeklyGoalMet {
			xp = s.rules.XP.WeeklyGoal
		}
		if err := s.applyXP(ctx, &prog, xp, g.Ref(domain.StepWeeklyBonus)); err != nil {
			return domain.RewardSummary{}, nil, err
		}
		if err := s.mark(ctx, g, domain.StepWeeklyBonus, xp); err != nil {
			return domain.RewardSummary{}, nil, err
		}
	}

	// 6. Level-up bonus, once per event
	if !g.Has(domain.StepLevelUp) {
		xp := 0
		if prog.Level > g.StartLevel {
			xp = s.rules.XP.LevelUp
		}
		if err := s.applyXP(ctx, &prog, xp, g.Ref(domain.StepLevelUp)); err != nil {
			return domain.RewardSummary{}, nil, err
		}
		if err := s.mark(ctx, g, domain.StepLevelUp, xp); err != nil {
			return domain.RewardSummary{}, nil, err
		}
	}

	g.Completed = true
	if err := s.repo.SaveGrant(ctx, *g); err != nil {
		return domain.RewardSummary{}, nil, fmt.Errorf("failed to complete reward grant: %w", err)
	}

	summary := g.Summary(prog.Level)

	var events []domain.Event
	if summary.NewLevel != nil {
		events = append(events, domain.LevelUp{NewLevel: *summary.NewLevel, UserID: ev.userID})
	}
	if g.MilestoneDays > 0 {
		events = append(events, domain.StreakMilestone{Days: g.MilestoneDays, UserID: ev.userID})
	}
	if g.WeeklyGoalMet {
		events = append(events, domain.WeeklyGoalMet{UserID: ev.userID, WeekStartDate: day.WeekStart(s.rules.WeekStartsOn)})
	}

	logging.Logger.Info("Rewards granted",
		"user", ev.userID,
		"key", key,
		"xp", summary.TotalXP(),
		"level", prog.Level,
		"streak_days", summary.StreakDays)

	return summary, events, nil
}

// applyXP adds amount to prog and saves it, unless amount is zero or the
// write for ref already happened
func (s *RewardsService) applyXP(ctx context.Context, prog *domain.ProgressionState, amount int, ref string) error {
	if amount <= 0 || prog.AppliedRef == ref {
		return nil
	}
	change, err := prog.Grant(amount, s.rules)
	if err != nil {
		return err
	}
	prog.AppliedRef = ref
	if err := s.repo.SaveProgression(ctx, *prog); err != nil {
		return fmt.Errorf("failed to save progression: %w", err)
	}
	if change.LeveledUp() {
		logging.Logger.Debug("Level boundary crossed", "user", prog.UserID, "from", change.PreviousLevel, "to", change.NewLevel)
	}
	return nil
}

// recordStreak applies the streak step. The result is written to the journal
// before the streak itself so a resumed grant can report it.
func (s *RewardsService) recordStreak(ctx context.Context, g *domain.RewardGrant, ev rewardEvent, day domain.Date) error {
	st, err := s.repo.LoadStreak(ctx, ev.userID)
	if err != nil {
		return fmt.Errorf("failed to load streak: %w", err)
	}
	ref := g.Ref(domain.StepStreak)

	switch {
	case !ev.qualifies:
		g.StreakDays = st.ActiveDays(day)
	case st.AppliedRef == ref:
		// Streak already written for this event; the journal holds its result
	default:
		result := st.RecordActivity(day, s.rules)
		g.StreakDays = result.Days
		g.MilestoneDays = result.MilestoneDays
		if err := s.repo.SaveGrant(ctx, *g); err != nil {
			return fmt.Errorf("failed to save reward grant: %w", err)
		}
		st.AppliedRef = ref
		if err := s.repo.SaveStreak(ctx, st); err != nil {
			return fmt.Errorf("failed to save streak: %w", err)
		}
	}

	return s.mark(ctx, g, domain.StepStreak, 0)
}

// recordWeekly applies the weekly goal step, journaling the result first
func (s *RewardsService) recordWeekly(ctx context.Context, g *domain.RewardGrant, ev rewardEvent, day domain.Date) error {
	w, err := s.repo.LoadWeeklyGoal(ctx, ev.userID)
	if err != nil {
		return fmt.Errorf("failed to load weekly goal: %w", err)
	}
	ref := g.Ref(domain.StepWeekly)

	switch {
	case !ev.qualifies:
		w.RollOver(day, s.rules)
		g.WeeklyProgressPercent = w.ProgressPercent()
	case w.AppliedRef == ref:
		// Weekly goal already written for this event; the journal holds its result
	default:
		result, err := w.RecordActivity(ev.kind, day, s.rules)
		if err != nil {
			return err
		}
		g.WeeklyGoalMet = result.GoalJustMet
		g.WeeklyProgressPercent = result.ProgressPercent
		if err := s.repo.SaveGrant(ctx, *g); err != nil {
			return fmt.Errorf("failed to save reward grant: %w", err)
		}
		w.AppliedRef = ref
		if err := s.repo.SaveWeeklyGoal(ctx, w); err != nil {
			return fmt.Errorf("failed to save weekly goal: %w", err)
		}
	}

	return s.mark(ctx, g, domain.StepWeekly, 0)
}

func (s *RewardsService) mark(ctx context.Context, g *domain.RewardGrant, step domain.GrantStep, xp int) error {
	g.Mark(step, xp)
	if err := s.repo.SaveGrant(ctx, *g); err != nil {
		return fmt.Errorf("failed to record reward step %s: %w", step, err)
	}
	return nil
}

func (s *RewardsService) publish(ctx context.Context, events []domain.Event) {
	for _, e := range events {
		s.publisher.Publish(ctx, e)
	}
}

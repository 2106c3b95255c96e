package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
	"github.com/renato0307/pomar/internal/services"
	"github.com/renato0307/pomar/internal/theme"
)

// SessionCmd manages focus and break sessions
type SessionCmd struct {
	Cancel   SessionCancelCmd   `cmd:"" help:"Cancel the active session"`
	Complete SessionCompleteCmd `cmd:"" help:"Complete the active session and collect rewards"`
	List     SessionListCmd     `cmd:"" help:"List recent sessions"`
	Next     SessionNextCmd     `cmd:"" help:"Show which session type should come next"`
	Pause    SessionPauseCmd    `cmd:"" help:"Pause the running session"`
	Resume   SessionResumeCmd   `cmd:"" help:"Resume the paused session"`
	Start    SessionStartCmd    `cmd:"" help:"Start a session"`
	Status   SessionStatusCmd   `cmd:"" help:"Show the active session" default:"1"`
}

// SessionStartCmd starts a session
type SessionStartCmd struct {
	Duration time.Duration `help:"Planned duration (e.g. 25m); defaults to the configured duration for the type" short:"D"`
	Format   string        `help:"Output format: table or json" enum:"table,json" default:"table"`
	Type     string        `arg:"" optional:"" help:"Session type: work, short_break or long_break (default: suggested next)"`
}

// Run executes the start command
func (s *SessionStartCmd) Run(ctx context.Context, cli *CLI) error {
	svc := cli.Container.SessionService
	userID := cli.UserID()

	var sessionType domain.SessionType
	if s.Type == "" {
		next, err := svc.SuggestNext(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to suggest next session: %w", err)
		}
		sessionType = next
	} else {
		parsed, err := domain.ParseSessionType(s.Type)
		if err != nil {
			return err
		}
		sessionType = parsed
	}

	params := services.StartSessionParams{Type: sessionType}
	if s.Duration != 0 {
		seconds := int64(s.Duration / time.Second)
		params.PlannedDurationSeconds = &seconds
	}

	logging.Logger.Debug("Executing session start command", "user", userID, "type", sessionType)
	session, err := svc.Start(ctx, userID, params)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if s.Format == formatJSON {
		return printJSON(session)
	}
	fmt.Fprintf(stdout, "Started %s session for %s\n", session.Type, formatDuration(session.PlannedDuration()))
	printSession(session)
	return nil
}

// SessionPauseCmd pauses the running session
type SessionPauseCmd struct{}

// Run executes the pause command
func (s *SessionPauseCmd) Run(ctx context.Context, cli *CLI) error {
	session, err := cli.Container.SessionService.Pause(ctx, cli.UserID())
	if err != nil {
		return fmt.Errorf("failed to pause session: %w", err)
	}
	fmt.Fprintf(stdout, "Paused %s session %s\n", session.Type, session.ID)
	return nil
}

// SessionResumeCmd resumes the paused session
type SessionResumeCmd struct{}

// Run executes the resume command
func (s *SessionResumeCmd) Run(ctx context.Context, cli *CLI) error {
	session, err := cli.Container.SessionService.Resume(ctx, cli.UserID())
	if err != nil {
		return fmt.Errorf("failed to resume session: %w", err)
	}
	fmt.Fprintf(stdout, "Resumed %s session %s\n", session.Type, session.ID)
	return nil
}

// SessionCancelCmd cancels the active session
type SessionCancelCmd struct{}

// Run executes the cancel command
func (s *SessionCancelCmd) Run(ctx context.Context, cli *CLI) error {
	session, err := cli.Container.SessionService.Cancel(ctx, cli.UserID())
	if err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}
	fmt.Fprintf(stdout, "Cancelled %s session %s\n", session.Type, session.ID)
	return nil
}

// SessionCompleteCmd completes the active session
type SessionCompleteCmd struct {
	Format  string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Rating  int    `help:"Focus rating from 1 to 5 (0 = no rating)" short:"r"`
	Session string `help:"Session ID to complete or retry (default: latest session)" short:"s"`
}

// Run executes the complete command
func (s *SessionCompleteCmd) Run(ctx context.Context, cli *CLI) error {
	params := services.CompleteSessionParams{SessionID: s.Session}
	if s.Rating != 0 {
		rating := s.Rating
		params.Rating = &rating
	}

	result, err := cli.Container.SessionService.Complete(ctx, cli.UserID(), params)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	if s.Format == formatJSON {
		return printJSON(result)
	}
	if result.Duplicate {
		fmt.Fprintf(stdout, "Session %s was already completed\n", result.Session.ID)
	} else {
		fmt.Fprintf(stdout, "Completed %s session %s\n", result.Session.Type, result.Session.ID)
	}
	printSummary(result.Summary)
	fmt.Fprintf(stdout, "Next: %s\n", result.SuggestedNext)
	return nil
}

// SessionStatusCmd shows the active session
type SessionStatusCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the status command
func (s *SessionStatusCmd) Run(ctx context.Context, cli *CLI) error {
	snap, err := cli.Container.SessionService.Current(ctx, cli.UserID())
	if err != nil {
		return fmt.Errorf("failed to get current session: %w", err)
	}

	if s.Format == formatJSON {
		return printJSON(snap)
	}
	if snap == nil {
		fmt.Fprintln(stdout, "No active session.")
		return nil
	}
	printSnapshot(snap)
	return nil
}

// SessionNextCmd shows the suggested next session type
type SessionNextCmd struct{}

// Run executes the next command
func (s *SessionNextCmd) Run(ctx context.Context, cli *CLI) error {
	next, err := cli.Container.SessionService.SuggestNext(ctx, cli.UserID())
	if err != nil {
		return fmt.Errorf("failed to suggest next session: %w", err)
	}
	fmt.Fprintln(stdout, next)
	return nil
}

// SessionListCmd lists recent sessions
type SessionListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Maximum number of sessions to show (0 = all)" short:"n" default:"20"`
}

// Run executes the list command
func (s *SessionListCmd) Run(ctx context.Context, cli *CLI) error {
	sessions, err := cli.Container.SessionService.History(ctx, cli.UserID(), s.Limit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if s.Format == formatJSON {
		if sessions == nil {
			sessions = []domain.Session{}
		}
		return printJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(stdout, "No sessions yet.")
		return nil
	}

	w := newTabWriter()
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tSTARTED\tPLANNED\tACTUAL\tXP")
	for _, session := range sessions {
		started := "-"
		if !session.StartedAt.IsZero() {
			started = session.StartedAt.Local().Format(timeLayout)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			session.ID,
			session.Type,
			theme.RenderStatus(session.Status),
			started,
			formatDuration(session.PlannedDuration()),
			formatDuration(time.Duration(session.ActualDurationSeconds)*time.Second),
			session.XPEarned)
	}
	return w.Flush()
}

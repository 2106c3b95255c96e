package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/services"
	"github.com/renato0307/pomar/internal/theme"
)

const (
	formatJSON  = "json"
	formatTable = "table"

	timeLayout = "2006-01-02 15:04:05"
)

// stdout is where commands write; replaced in tests
var stdout io.Writer = os.Stdout

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return d.Round(time.Second).String()
}

func printSession(s *domain.Session) {
	w := newTabWriter()
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Session:"), s.ID)
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Type:"), s.Type)
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Status:"), theme.RenderStatus(s.Status))
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Planned:"), formatDuration(s.PlannedDuration()))
	if !s.StartedAt.IsZero() {
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Started:"), s.StartedAt.Local().Format(timeLayout))
	}
	if s.EndedAt != nil {
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Ended:"), s.EndedAt.Local().Format(timeLayout))
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Actual:"),
			formatDuration(time.Duration(s.ActualDurationSeconds)*time.Second))
	}
	if s.Status == domain.StatusCompleted {
		fmt.Fprintf(w, "%s\t%t\n", theme.LabelStyle.Render("Early:"), s.EarlyCompletion)
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("XP:"), theme.XPStyle.Render(fmt.Sprintf("%d", s.XPEarned)))
	}
	if s.Rating != nil {
		fmt.Fprintf(w, "%s\t%d\n", theme.LabelStyle.Render("Rating:"), *s.Rating)
	}
	w.Flush()
}

func printSnapshot(snap *services.SessionSnapshot) {
	printSession(&snap.Session)
	w := newTabWriter()
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Elapsed:"), formatDuration(snap.Elapsed))
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Remaining:"), formatDuration(snap.Remaining))
	if snap.Paused > 0 {
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Paused for:"), formatDuration(snap.Paused))
	}
	if snap.Overdue {
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Overdue:"), theme.ErrorStyle.Render("yes"))
	}
	w.Flush()
}

func printSummary(summary domain.RewardSummary) {
	if summary.Duplicate {
		fmt.Fprintln(stdout, theme.MutedStyle.Render("Already rewarded, nothing granted."))
		return
	}

	fmt.Fprintf(stdout, "%s %s\n", theme.XPStyle.Render(fmt.Sprintf("+%d XP", summary.TotalXP())),
		theme.MutedStyle.Render(fmt.Sprintf("(base %d, streak %d, weekly %d, level up %d)",
			summary.XPGranted, summary.StreakRewardGranted, summary.WeeklyRewardGranted, summary.LevelUpBonusGranted)))
	if summary.NewLevel != nil {
		fmt.Fprintln(stdout, theme.LevelStyle.Render(fmt.Sprintf("Level up! You reached level %d", *summary.NewLevel)))
	}
	if summary.StreakDays > 0 {
		fmt.Fprintln(stdout, theme.StreakStyle.Render(fmt.Sprintf("Streak: %d day(s)", summary.StreakDays)))
	}
	if summary.MilestoneDays > 0 {
		fmt.Fprintln(stdout, theme.StreakStyle.Render(fmt.Sprintf("Milestone reached: %d days", summary.MilestoneDays)))
	}
	if summary.WeeklyGoalMet {
		fmt.Fprintln(stdout, theme.WeeklyStyle.Render("Weekly goal met!"))
	}
	fmt.Fprintln(stdout, theme.WeeklyStyle.Render(fmt.Sprintf("Weekly progress: %.0f%%", summary.WeeklyProgressPercent)))
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/pomar/internal/services"
	"github.com/renato0307/pomar/internal/theme"
)

const progressBarWidth = 20

// StatsCmd shows the user's progress
type StatsCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the stats command
func (s *StatsCmd) Run(ctx context.Context, cli *CLI) error {
	profile, err := cli.Container.ProgressService.Profile(ctx, cli.UserID())
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	if s.Format == formatJSON {
		return printJSON(profile)
	}
	s.renderTable(profile)
	return nil
}

// renderTable displays the profile in table format
func (s *StatsCmd) renderTable(p *services.Profile) {
	fmt.Fprintln(stdout, theme.TitleStyle.Render("Progress - "+p.UserID))
	fmt.Fprintln(stdout)

	w := newTabWriter()
	level := fmt.Sprintf("%d", p.Level)
	if p.MaxLevel {
		level += " (max)"
	}
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Level:"), theme.LevelStyle.Render(level))
	fmt.Fprintf(w, "%s\t%s %s\n", theme.LabelStyle.Render("XP:"),
		theme.XPStyle.Render(formatNumber(p.XPTotal)),
		theme.MutedStyle.Render(fmt.Sprintf("(%d to next level)", p.XPToNextLevel)))
	fmt.Fprintf(w, "%s\t%s %.0f%%\n", theme.LabelStyle.Render("Level progress:"),
		progressBar(p.LevelProgressPercent), p.LevelProgressPercent)
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Streak:"),
		theme.StreakStyle.Render(fmt.Sprintf("%d day(s), longest %d", p.StreakDays, p.LongestStreakDays)))
	if p.NextMilestoneDays > 0 {
		fmt.Fprintf(w, "%s\t%d days\n", theme.LabelStyle.Render("Next milestone:"), p.NextMilestoneDays)
	}
	fmt.Fprintf(w, "%s\t%d/%d tasks, %d/%d sessions\n", theme.LabelStyle.Render("This week:"),
		p.Weekly.CompletedTasks, p.Weekly.TargetTasks,
		p.Weekly.CompletedSessions, p.Weekly.TargetSessions)
	fmt.Fprintf(w, "%s\t%s %.0f%%\n", theme.LabelStyle.Render("Weekly goal:"),
		progressBar(p.WeeklyProgress), p.WeeklyProgress)
	if p.Weekly.GoalMet {
		fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render(""), theme.WeeklyStyle.Render("met"))
	}
	if p.Current != nil {
		fmt.Fprintf(w, "%s\t%s %s, %s left\n", theme.LabelStyle.Render("Current:"),
			p.Current.Session.Type, theme.RenderStatus(p.Current.Session.Status), formatDuration(p.Current.Remaining))
	}
	fmt.Fprintf(w, "%s\t%s\n", theme.LabelStyle.Render("Next:"), p.SuggestedNext)
	w.Flush()
}

// progressBar renders percent as a fixed-width bar
func progressBar(percent float64) string {
	filled := min(max(int(percent*progressBarWidth/100), 0), progressBarWidth)
	return theme.XPStyle.Render(strings.Repeat("█", filled)) +
		theme.MutedStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}

// formatNumber formats a number with comma separators
func formatNumber(n int) string {
	if n == 0 {
		return "0"
	}

	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	// Add comma separators
	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}

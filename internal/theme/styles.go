package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/pomar/internal/domain"
)

// Main output styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// Session status styles
var (
	CancelledStyle = lipgloss.NewStyle().
			Foreground(ColorCancelled)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorCompleted)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorPaused)

	RunningStyle = lipgloss.NewStyle().
			Foreground(ColorRunning).
			Bold(true)
)

// Reward styles
var (
	LevelStyle = lipgloss.NewStyle().
			Foreground(ColorLevel).
			Bold(true)

	StreakStyle = lipgloss.NewStyle().
			Foreground(ColorStreak)

	WeeklyStyle = lipgloss.NewStyle().
			Foreground(ColorWeekly)

	XPStyle = lipgloss.NewStyle().
		Foreground(ColorXP).
		Bold(true)
)

// Header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)

// StatusStyle returns the style for a session status
func StatusStyle(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.StatusRunning:
		return RunningStyle
	case domain.StatusPaused:
		return PausedStyle
	case domain.StatusCompleted:
		return CompletedStyle
	case domain.StatusCancelled:
		return CancelledStyle
	default:
		return MutedStyle
	}
}

// RenderStatus renders icon and status name in the status color
func RenderStatus(status domain.SessionStatus) string {
	return StatusStyle(status).Render(status.Symbol() + " " + string(status))
}

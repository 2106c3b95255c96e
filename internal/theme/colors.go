package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "203" // Tomato red - app name, titles
	ColorSecondary Color = "114" // Leaf green - subtitles
)

// Session status colors
const (
	ColorCancelled Color = "8" // Gray
	ColorCompleted Color = "6" // Cyan
	ColorPaused    Color = "3" // Yellow
	ColorRunning   Color = "2" // Green
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Reward colors
const (
	ColorLevel  Color = "141" // Purple
	ColorStreak Color = "208" // Orange
	ColorWeekly Color = "33"  // Blue
	ColorXP     Color = "226" // Yellow
)

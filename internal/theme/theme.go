package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/stepwise/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the goal title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the id and status bar under a goal.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// TitleStyle renders goal titles in lists.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// ActionStyle renders the action sentence of an open step.
var ActionStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// DoneActionStyle renders the action sentence of a finished step.
var DoneActionStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// ExplanationStyle is used for the line under each step.
var ExplanationStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true).
	PaddingLeft(6)

// TipsCardStyle wraps the action tips block.
var TipsCardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorYellow)

// StampStyle is the "ALL DONE!" stamp shown on a finished goal.
var StampStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed).
	Border(lipgloss.DoubleBorder()).
	BorderForeground(ColorRed).
	Padding(0, 2)

// HelpStyle is used for hints and empty states.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// DimmedStyle is used for ids and timestamps.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// WarningStyle flags placeholder plans.
var WarningStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// StatusStyle returns a color-coded style for a goal status.
func StatusStyle(status model.TaskStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.TaskStatusActive:
		return base.Foreground(ColorBlue)
	case model.TaskStatusDone:
		return base.Foreground(ColorGreen)
	case model.TaskStatusArchived:
		return base.Foreground(ColorGray)
	default:
		return base.Foreground(ColorGray)
	}
}

// ProgressStyle colors a progress count: magenta when untouched, yellow in
// progress and green when complete.
func ProgressStyle(done, total int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case total > 0 && done == total:
		return base.Foreground(ColorGreen)
	case done > 0:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorMagenta)
	}
}

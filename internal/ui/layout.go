package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/stepwise/internal/theme"
)

// Layout holds the width the command output is rendered at.
type Layout struct {
	Width int
}

// NewLayout creates a Layout for the given terminal width. A width of zero
// or less renders bars at their natural size.
func NewLayout(width int) Layout {
	return Layout{Width: width}
}

// RenderHeader renders a bar with title on the left and status on the right.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	if status == "" {
		return titleRendered
	}

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 1 {
		gap = 1
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders text as the bar under a goal, stretched to the
// layout width.
func (l Layout) RenderStatusBar(text string) string {
	style := theme.StatusBarStyle
	if l.Width > 0 {
		style = style.Width(l.Width)
	}
	return style.Render(text)
}

// RenderWithFrame vertically joins the header, content and footer,
// skipping empty parts.
func (l Layout) RenderWithFrame(header, content, footer string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{header, content, footer} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

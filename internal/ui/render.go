package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/stepwise/internal/app"
	"github.com/nhle/stepwise/internal/model"
	"github.com/nhle/stepwise/internal/theme"
)

// ShortIDLen is how many id characters the views print. Any unique prefix
// is accepted back by the commands.
const ShortIDLen = 8

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// RenderGoalList renders the goal list, newest first as given.
func RenderGoalList(goals []app.GoalSummary, now time.Time) string {
	if len(goals) == 0 {
		return theme.HelpStyle.Render(
			"No goals yet.\n\nRun 'stepwise new' to break one into small steps.",
		)
	}

	lines := make([]string, 0, len(goals))
	for _, g := range goals {
		progress := fmt.Sprintf("%d/%d", g.Progress.Done, g.Progress.Total)
		line := fmt.Sprintf("%s  %s  %s  %s",
			theme.DimmedStyle.Render(ShortID(g.Task.ID)),
			theme.ProgressStyle(g.Progress.Done, g.Progress.Total).Render(fmt.Sprintf("%5s", progress)),
			theme.TitleStyle.Render(g.Task.Title),
			theme.DimmedStyle.Render(relativeTime(g.Task.CreatedAt, now)),
		)
		if g.Progress.Complete() {
			line += "  " + theme.StatusStyle(model.TaskStatusDone).Render("✓")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderGoal renders a goal with its steps, action tips and, once every step
// is done, the "ALL DONE!" stamp.
func RenderGoal(d *app.GoalDetail, l Layout) string {
	status := fmt.Sprintf("%d/%d done", d.Progress.Done, d.Progress.Total)
	header := l.RenderHeader(d.Task.Title, status)

	var sections []string
	if len(d.Steps) == 0 {
		sections = append(sections, theme.HelpStyle.Render("No steps for this goal."))
	}
	for i, step := range d.Steps {
		sections = append(sections, renderStep(i+1, step))
	}

	if len(d.Tips) > 0 {
		tips := make([]string, 0, len(d.Tips)+1)
		tips = append(tips, theme.TitleStyle.Render("Action Tips"))
		for _, tip := range d.Tips {
			tips = append(tips, "• "+tip)
		}
		sections = append(sections, "", theme.TipsCardStyle.Render(strings.Join(tips, "\n")))
	}

	if d.Progress.Complete() {
		sections = append(sections, "", theme.StampStyle.Render("ALL DONE!"))
	}

	footer := l.RenderStatusBar(fmt.Sprintf("id %s  %s", ShortID(d.Task.ID), d.Task.Status))

	return l.RenderWithFrame(header, strings.Join(sections, "\n"), footer)
}

func renderStep(n int, step model.Subtask) string {
	box := "[ ]"
	action := theme.ActionStyle.Render(step.Action)
	if step.Done() {
		box = theme.StatusStyle(model.TaskStatusDone).Render("[x]")
		action = theme.DoneActionStyle.Render(step.Action)
	}

	pin := ""
	if step.IsToday {
		pin = " ☀"
	}

	line := fmt.Sprintf("%s %d. %s %s%s  %s",
		box, n, step.Emoji, action, pin,
		theme.DimmedStyle.Render(ShortID(step.ID)),
	)
	if step.Explanation == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		line,
		theme.ExplanationStyle.Render(step.Explanation),
	)
}

// RenderToday renders pinned steps grouped by goal.
func RenderToday(groups []app.TodayGroup) string {
	if len(groups) == 0 {
		return theme.HelpStyle.Render(
			"Nothing pinned for today.\n\nRun 'stepwise pin <step>' to add a step.",
		)
	}

	var blocks []string
	for _, g := range groups {
		lines := []string{theme.TitleStyle.Render(g.Task.Title)}
		for _, step := range g.Steps {
			lines = append(lines, renderStep(step.Ord+1, step))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// RenderCreated summarizes a newly stored plan.
func RenderCreated(res app.GoalResult) string {
	d := res.Outcome.Decomposition
	msg := fmt.Sprintf("Created %s with %d steps %s",
		theme.TitleStyle.Render(d.Title),
		len(d.Steps),
		theme.DimmedStyle.Render("("+ShortID(res.TaskID)+")"),
	)
	if res.Outcome.Degraded {
		msg += "\n" + theme.WarningStyle.Render("Using a starter plan: "+degradedHint(res.Outcome.Reason))
	}
	return msg
}

func degradedHint(reason error) string {
	if reason == nil {
		return "the language model was not used."
	}
	return reason.Error() + "."
}

func relativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/stepwise/internal/app"
	"github.com/nhle/stepwise/internal/model"
)

func sampleDetail(done int) *app.GoalDetail {
	d := &app.GoalDetail{
		Task: model.Task{
			ID:     "0d9c2f4e-1111-2222-3333-444455556666",
			Title:  "Learn JavaScript",
			Status: model.TaskStatusActive,
		},
		Tips: []string{"One step a day", "Reward yourself"},
	}
	actions := []string{"Create a folder", "Create index.html", "Open your editor"}
	for i, a := range actions {
		s := model.Subtask{
			ID:          "step-000" + string(rune('a'+i)) + "-rest",
			Emoji:       "🔹",
			Action:      a,
			Explanation: a + " explained.",
			Ord:         i,
			Status:      model.SubtaskStatusTodo,
		}
		if i < done {
			s.Status = model.SubtaskStatusDone
		}
		d.Steps = append(d.Steps, s)
	}
	d.Progress = app.Progress{Done: done, Total: len(actions)}
	return d
}

func TestRenderGoal(t *testing.T) {
	out := RenderGoal(sampleDetail(1), NewLayout(60))

	for _, want := range []string{
		"Learn JavaScript",
		"1/3 done",
		"[x] 1.",
		"[ ] 2. 🔹 Create index.html",
		"Open your editor explained.",
		"Action Tips",
		"• Reward yourself",
		"0d9c2f4e",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ALL DONE!") {
		t.Error("did not expect the stamp on an unfinished goal")
	}
}

func TestRenderGoalStatusBar(t *testing.T) {
	out := RenderGoal(sampleDetail(1), NewLayout(60))

	lines := strings.Split(out, "\n")
	bar := lines[len(lines)-1]
	if !strings.Contains(bar, "id 0d9c2f4e") || !strings.Contains(bar, "active") {
		t.Errorf("expected id and status in the bar, got %q", bar)
	}
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("expected the bar to span the layout width 60, got %d", w)
	}
}

func TestRenderGoalAllDone(t *testing.T) {
	out := RenderGoal(sampleDetail(3), NewLayout(0))
	if !strings.Contains(out, "ALL DONE!") {
		t.Errorf("expected stamp:\n%s", out)
	}
}

func TestRenderGoalWithoutSteps(t *testing.T) {
	d := &app.GoalDetail{Task: model.Task{ID: "abc", Title: "Bare"}}
	out := RenderGoal(d, NewLayout(40))

	if !strings.Contains(out, "No steps for this goal.") {
		t.Errorf("expected empty-steps hint:\n%s", out)
	}
	if strings.Contains(out, "ALL DONE!") || strings.Contains(out, "Action Tips") {
		t.Errorf("unexpected stamp or tips:\n%s", out)
	}
}

func TestRenderGoalList(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	if out := RenderGoalList(nil, now); !strings.Contains(out, "No goals yet.") {
		t.Errorf("expected empty state, got %q", out)
	}

	out := RenderGoalList([]app.GoalSummary{
		{
			Task:     model.Task{ID: "aaaaaaaa-1", Title: "Recent", CreatedAt: now.Add(-5 * time.Minute)},
			Progress: app.Progress{Done: 5, Total: 5},
		},
		{
			Task:     model.Task{ID: "bbbbbbbb-2", Title: "Older", CreatedAt: now.Add(-50 * time.Hour)},
			Progress: app.Progress{Done: 0, Total: 6},
		},
	}, now)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	for _, want := range []string{"aaaaaaaa", "5/5", "Recent", "5m ago", "✓"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line missing %q: %s", want, lines[0])
		}
	}
	for _, want := range []string{"bbbbbbbb", "0/6", "Older", "2d ago"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("second line missing %q: %s", want, lines[1])
		}
	}
	if strings.Contains(lines[1], "✓") {
		t.Error("did not expect a check mark on an unfinished goal")
	}
}

func TestRenderToday(t *testing.T) {
	if out := RenderToday(nil); !strings.Contains(out, "Nothing pinned for today.") {
		t.Errorf("expected empty state, got %q", out)
	}

	d := sampleDetail(0)
	step := d.Steps[2]
	step.IsToday = true
	out := RenderToday([]app.TodayGroup{{Task: d.Task, Steps: []model.Subtask{step}}})

	for _, want := range []string{"Learn JavaScript", "3. 🔹 Open your editor", "☀"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderCreated(t *testing.T) {
	res := app.GoalResult{
		TaskID: "0123456789abcdef",
		Outcome: model.Degraded(model.Decomposition{
			Title: "Learn to juggle",
			Steps: make([]model.Step, 5),
		}, errors.New("no API credential configured")),
	}

	out := RenderCreated(res)
	for _, want := range []string{"Learn to juggle", "5 steps", "01234567", "starter plan", "no API credential configured"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(abc) = %q", got)
	}
	if got := ShortID("0123456789"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
}

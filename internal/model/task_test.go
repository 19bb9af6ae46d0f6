package model

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusActive, TaskStatusDone, TaskStatusArchived} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if TaskStatus("paused").Valid() {
		t.Error("expected unknown task status to be invalid")
	}
	if !SubtaskStatusTodo.Valid() || !SubtaskStatusDone.Valid() {
		t.Error("expected todo and done to be valid")
	}
	if SubtaskStatus("doing").Valid() {
		t.Error("expected unknown subtask status to be invalid")
	}
}

func TestDecompositionSubtasks(t *testing.T) {
	d := Decomposition{
		Title: "Learn Go",
		Steps: []Step{
			{Emoji: "📁", Action: "Make a folder", Explanation: "A place to start."},
			{Emoji: "📝", Action: "Write main.go", Explanation: "First file."},
		},
	}

	rows := d.Subtasks()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Ord != i {
			t.Errorf("row %d: expected ord %d, got %d", i, i, r.Ord)
		}
		if r.Action != d.Steps[i].Action {
			t.Errorf("row %d: expected action %q, got %q", i, d.Steps[i].Action, r.Action)
		}
	}
}

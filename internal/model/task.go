package model

import "time"

// TaskStatus is the lifecycle state of a goal.
type TaskStatus string

const (
	TaskStatusActive   TaskStatus = "active"
	TaskStatusDone     TaskStatus = "done"
	TaskStatusArchived TaskStatus = "archived"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusActive, TaskStatusDone, TaskStatusArchived:
		return true
	}
	return false
}

// SubtaskStatus is the completion state of a single step.
type SubtaskStatus string

const (
	SubtaskStatusTodo SubtaskStatus = "todo"
	SubtaskStatusDone SubtaskStatus = "done"
)

// Valid reports whether s is one of the known subtask statuses.
func (s SubtaskStatus) Valid() bool {
	return s == SubtaskStatusTodo || s == SubtaskStatusDone
}

// DefaultEstimateMin is the minutes estimate stored for every new step.
const DefaultEstimateMin = 10

// Task is a user-declared goal. Notes holds the JSON-encoded action tips
// produced by decomposition (see EncodeTips).
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Notes     string     `json:"notes"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// Subtask is one ordered, actionable step belonging to a Task.
// Its lifecycle is bound to the parent task (CASCADE delete).
type Subtask struct {
	ID          string        `json:"id"`
	TaskID      string        `json:"task_id"`
	Emoji       string        `json:"emoji"`
	Action      string        `json:"action"`
	Explanation string        `json:"explanation"`
	Status      SubtaskStatus `json:"status"`
	Ord         int           `json:"ord"`
	EstimateMin int           `json:"estimate_min"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	IsToday     bool          `json:"is_today"`
}

// Done reports whether the step has been completed.
func (s Subtask) Done() bool {
	return s.Status == SubtaskStatusDone
}

// NewSubtask is the caller-supplied content of a step to be inserted.
// Ord is stored as given; callers assign 0..n-1 in display order.
type NewSubtask struct {
	Emoji       string
	Action      string
	Explanation string
	Ord         int
}

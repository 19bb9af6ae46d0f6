package store

import (
	"context"
	"errors"

	"github.com/nhle/stepwise/internal/model"
)

var (
	// ErrNotFound is returned when a lookup by id or id prefix matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousID is returned when an id prefix matches more than one row.
	ErrAmbiguousID = errors.New("ambiguous id prefix")

	// ErrInvalidStatus is returned for status values outside the known set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Store defines the persistence interface for goals (tasks) and their
// ordered steps (subtasks).
type Store interface {
	// === Schema ===

	Initialize(ctx context.Context) error

	// === Tasks ===

	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	AddTask(ctx context.Context, title string) (id string, created bool, err error)
	UpdateTaskNotes(ctx context.Context, id string, notes string) error
	UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) error
	DeleteTask(ctx context.Context, id string) error
	ResolveTaskID(ctx context.Context, prefix string) (string, error)

	// === Subtasks ===

	AddSubtasks(ctx context.Context, taskID string, steps []model.NewSubtask) error
	UpdateSubtaskStatus(ctx context.Context, id string, status model.SubtaskStatus) error
	ListSubtasksForTask(ctx context.Context, taskID string) ([]model.Subtask, error)
	GetSubtask(ctx context.Context, id string) (*model.Subtask, error)
	SetSubtaskToday(ctx context.Context, id string, today bool) error
	ListTodaySubtasks(ctx context.Context) ([]model.Subtask, error)
	ResolveSubtaskID(ctx context.Context, prefix string) (string, error)

	// === Plans ===

	SavePlan(ctx context.Context, d model.Decomposition) (id string, created bool, err error)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/stepwise/internal/model"
)

// taskRow mirrors the tasks table.
type taskRow struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Notes     string `db:"notes"`
	Status    string `db:"status"`
	CreatedAt int64  `db:"created_at"`
}

func (r taskRow) toModel() model.Task {
	return model.Task{
		ID:        r.ID,
		Title:     r.Title,
		Notes:     r.Notes,
		Status:    model.TaskStatus(r.Status),
		CreatedAt: time.UnixMilli(r.CreatedAt),
	}
}

const taskColumns = "id, title, notes, status, created_at"

// ListTasks returns every task that is not archived, newest first.
func (s *SQLiteStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	var rows []taskRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status != ?
		ORDER BY created_at DESC, rowid DESC`,
		string(model.TaskStatusArchived),
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toModel())
	}
	return tasks, nil
}

// GetTask retrieves a single task by ID, archived or not.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var row taskRow
	err := s.db.GetContext(ctx, &row,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	task := row.toModel()
	return &task, nil
}

// AddTask inserts a new active task with the trimmed title. An empty title
// is not an error: nothing is written and created is false.
func (s *SQLiteStore) AddTask(ctx context.Context, title string) (string, bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false, nil
	}

	id := uuid.New().String()
	if err := insertTask(ctx, s.db, id, title, "", s.now()); err != nil {
		return "", false, err
	}
	return id, true, nil
}

// UpdateTaskNotes overwrites the notes of a task. A missing id is a no-op.
func (s *SQLiteStore) UpdateTaskNotes(ctx context.Context, id string, notes string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET notes = ? WHERE id = ?", notes, id)
	if err != nil {
		return fmt.Errorf("updating notes for task %s: %w", id, err)
	}
	return nil
}

// UpdateTaskStatus sets the lifecycle status of a task. A missing id is a
// no-op.
func (s *SQLiteStore) UpdateTaskStatus(ctx context.Context, id string, status model.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("task status %q: %w", status, ErrInvalidStatus)
	}
	_, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("updating status for task %s: %w", id, err)
	}
	return nil
}

// DeleteTask removes a task by ID. Cascades to subtasks. Deleting a task
// that does not exist is not an error.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// ResolveTaskID expands a unique id prefix to a full task id.
func (s *SQLiteStore) ResolveTaskID(ctx context.Context, prefix string) (string, error) {
	return s.resolveID(ctx, "tasks", prefix)
}

// SavePlan stores a decomposed goal in one transaction: the task row with
// its encoded action tips, then every step in order. Either the task and its
// full step list are written, or nothing is. An empty title writes nothing
// and reports created as false.
func (s *SQLiteStore) SavePlan(ctx context.Context, d model.Decomposition) (string, bool, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return "", false, nil
	}

	notes, err := model.EncodeTips(d.ActionTips)
	if err != nil {
		return "", false, err
	}

	id := uuid.New().String()
	err = s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := insertTask(ctx, tx, id, title, notes, s.now()); err != nil {
			return err
		}
		return insertSubtasks(ctx, tx, id, d.Subtasks())
	})
	if err != nil {
		return "", false, fmt.Errorf("saving plan %q: %w", title, err)
	}

	return id, true, nil
}

func insertTask(ctx context.Context, db sqlx.ExecerContext, id, title, notes string, now time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		id, title, notes, string(model.TaskStatusActive), toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

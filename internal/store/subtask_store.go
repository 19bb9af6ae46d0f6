package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/stepwise/internal/model"
)

// subtaskRow mirrors the subtasks table. Title holds the action sentence.
type subtaskRow struct {
	ID          string        `db:"id"`
	TaskID      string        `db:"task_id"`
	Title       string        `db:"title"`
	Status      string        `db:"status"`
	Ord         int           `db:"ord"`
	EstimateMin int           `db:"estimate_min"`
	CompletedAt sql.NullInt64 `db:"completed_at"`
	IsToday     int           `db:"is_today"`
	Emoji       string        `db:"emoji"`
	Explanation string        `db:"explanation"`
}

func (r subtaskRow) toModel() model.Subtask {
	return model.Subtask{
		ID:          r.ID,
		TaskID:      r.TaskID,
		Emoji:       r.Emoji,
		Action:      r.Title,
		Explanation: r.Explanation,
		Status:      model.SubtaskStatus(r.Status),
		Ord:         r.Ord,
		EstimateMin: r.EstimateMin,
		CompletedAt: fromMillis(r.CompletedAt),
		IsToday:     r.IsToday != 0,
	}
}

const subtaskColumns = `s.id AS id, s.task_id AS task_id, s.title AS title,
	s.status AS status, s.ord AS ord, s.estimate_min AS estimate_min,
	s.completed_at AS completed_at, s.is_today AS is_today,
	s.emoji AS emoji, s.explanation AS explanation`

// AddSubtasks inserts the given steps for a task in a single transaction.
// Ord values are stored as given. If any row fails (for example because the
// task does not exist), no rows are written.
func (s *SQLiteStore) AddSubtasks(ctx context.Context, taskID string, steps []model.NewSubtask) error {
	if len(steps) == 0 {
		return nil
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		return insertSubtasks(ctx, tx, taskID, steps)
	})
	if err != nil {
		return fmt.Errorf("adding subtasks to task %s: %w", taskID, err)
	}
	return nil
}

func insertSubtasks(ctx context.Context, tx *sqlx.Tx, taskID string, steps []model.NewSubtask) error {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO subtasks (
			id, task_id, title, status, ord,
			estimate_min, completed_at, is_today,
			emoji, explanation
		) VALUES (?, ?, ?, ?, ?, ?, NULL, 0, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing subtask insert: %w", err)
	}
	defer stmt.Close()

	for _, step := range steps {
		_, err := stmt.ExecContext(ctx,
			uuid.New().String(), taskID, step.Action,
			string(model.SubtaskStatusTodo), step.Ord,
			model.DefaultEstimateMin,
			step.Emoji, step.Explanation,
		)
		if err != nil {
			return fmt.Errorf("inserting subtask %d: %w", step.Ord, err)
		}
	}
	return nil
}

// UpdateSubtaskStatus sets the status of a step. Moving to done stamps
// completed_at with the current time (again, if it was already done);
// any other status clears it.
func (s *SQLiteStore) UpdateSubtaskStatus(ctx context.Context, id string, status model.SubtaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("subtask status %q: %w", status, ErrInvalidStatus)
	}

	var completedAt sql.NullInt64
	if status == model.SubtaskStatusDone {
		completedAt = sql.NullInt64{Int64: toMillis(s.now()), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET status = ?, completed_at = ? WHERE id = ?",
		string(status), completedAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating subtask %s: %w", id, err)
	}
	return nil
}

// ListSubtasksForTask returns the steps of a task ordered by ord. A task
// without steps and a missing task both yield an empty list.
func (s *SQLiteStore) ListSubtasksForTask(ctx context.Context, taskID string) ([]model.Subtask, error) {
	var rows []subtaskRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+subtaskColumns+" FROM subtasks s WHERE s.task_id = ? ORDER BY s.ord ASC",
		taskID)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks for task %s: %w", taskID, err)
	}
	return toSubtasks(rows), nil
}

// GetSubtask retrieves a single step by ID.
func (s *SQLiteStore) GetSubtask(ctx context.Context, id string) (*model.Subtask, error) {
	var row subtaskRow
	err := s.db.GetContext(ctx, &row,
		"SELECT "+subtaskColumns+" FROM subtasks s WHERE s.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting subtask %s: %w", id, err)
	}

	sub := row.toModel()
	return &sub, nil
}

// SetSubtaskToday flags or unflags a step for the today view.
func (s *SQLiteStore) SetSubtaskToday(ctx context.Context, id string, today bool) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE subtasks SET is_today = ? WHERE id = ?", boolToInt(today), id)
	if err != nil {
		return fmt.Errorf("flagging subtask %s: %w", id, err)
	}
	return nil
}

// ListTodaySubtasks returns flagged steps of non-archived tasks, grouped by
// task (newest task first) and ordered by ord within a task.
func (s *SQLiteStore) ListTodaySubtasks(ctx context.Context) ([]model.Subtask, error) {
	var rows []subtaskRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+subtaskColumns+`
		FROM subtasks s
		JOIN tasks t ON t.id = s.task_id
		WHERE s.is_today = 1 AND t.status != ?
		ORDER BY t.created_at DESC, t.rowid DESC, s.ord ASC`,
		string(model.TaskStatusArchived),
	)
	if err != nil {
		return nil, fmt.Errorf("querying today subtasks: %w", err)
	}
	return toSubtasks(rows), nil
}

// ResolveSubtaskID expands a unique id prefix to a full subtask id.
func (s *SQLiteStore) ResolveSubtaskID(ctx context.Context, prefix string) (string, error) {
	return s.resolveID(ctx, "subtasks", prefix)
}

func toSubtasks(rows []subtaskRow) []model.Subtask {
	subs := make([]model.Subtask, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, r.toModel())
	}
	return subs
}

package app

import (
	"context"
	"fmt"

	"github.com/nhle/stepwise/internal/model"
)

// Progress counts finished steps of a goal.
type Progress struct {
	Done  int
	Total int
}

// Complete reports whether the goal has at least one step and all of them
// are done.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Done == p.Total
}

func progressOf(steps []model.Subtask) Progress {
	p := Progress{Total: len(steps)}
	for _, s := range steps {
		if s.Done() {
			p.Done++
		}
	}
	return p
}

// GoalSummary is one row of the goal list.
type GoalSummary struct {
	Task     model.Task
	Progress Progress
}

// GoalDetail is a goal with its ordered steps and action tips.
type GoalDetail struct {
	Task     model.Task
	Steps    []model.Subtask
	Tips     []string
	Progress Progress
}

// TodayGroup holds the pinned steps of one goal.
type TodayGroup struct {
	Task  model.Task
	Steps []model.Subtask
}

// ListGoals returns every non-archived goal, newest first, with progress.
func (s *Service) ListGoals(ctx context.Context) ([]GoalSummary, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		s.log.WithError(err).Error("listing goals")
		return nil, err
	}

	out := make([]GoalSummary, 0, len(tasks))
	for _, t := range tasks {
		steps, err := s.store.ListSubtasksForTask(ctx, t.ID)
		if err != nil {
			s.log.WithError(err).WithField("task_id", t.ID).Error("listing steps")
			return nil, err
		}
		out = append(out, GoalSummary{Task: t, Progress: progressOf(steps)})
	}
	return out, nil
}

// Goal returns the goal identified by ref, a full id or unique id prefix.
// Notes that cannot be decoded as action tips are logged and shown as no tips.
func (s *Service) Goal(ctx context.Context, ref string) (*GoalDetail, error) {
	id, err := s.store.ResolveTaskID(ctx, ref)
	if err != nil {
		return nil, err
	}

	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	steps, err := s.store.ListSubtasksForTask(ctx, id)
	if err != nil {
		return nil, err
	}

	tips, err := model.DecodeTips(task.Notes)
	if err != nil {
		s.log.WithError(err).WithField("task_id", id).Warn("ignoring unreadable action tips")
	}

	return &GoalDetail{
		Task:     *task,
		Steps:    steps,
		Tips:     tips,
		Progress: progressOf(steps),
	}, nil
}

// CompleteStep marks a step done. When it was the last open step the goal
// itself becomes done. It returns the goal's progress after the change.
func (s *Service) CompleteStep(ctx context.Context, ref string) (Progress, error) {
	return s.setStepStatus(ctx, ref, model.SubtaskStatusDone)
}

// ReopenStep marks a step as todo again, reactivating a finished goal.
func (s *Service) ReopenStep(ctx context.Context, ref string) (Progress, error) {
	return s.setStepStatus(ctx, ref, model.SubtaskStatusTodo)
}

func (s *Service) setStepStatus(ctx context.Context, ref string, status model.SubtaskStatus) (Progress, error) {
	id, err := s.store.ResolveSubtaskID(ctx, ref)
	if err != nil {
		return Progress{}, err
	}
	if err := s.store.UpdateSubtaskStatus(ctx, id, status); err != nil {
		return Progress{}, err
	}

	step, err := s.store.GetSubtask(ctx, id)
	if err != nil {
		return Progress{}, err
	}
	task, err := s.store.GetTask(ctx, step.TaskID)
	if err != nil {
		return Progress{}, err
	}
	steps, err := s.store.ListSubtasksForTask(ctx, step.TaskID)
	if err != nil {
		return Progress{}, err
	}
	p := progressOf(steps)

	if task.Status == model.TaskStatusArchived {
		return p, nil
	}
	next := model.TaskStatusActive
	if p.Complete() {
		next = model.TaskStatusDone
	}
	if next != task.Status {
		if err := s.store.UpdateTaskStatus(ctx, task.ID, next); err != nil {
			return p, err
		}
	}
	return p, nil
}

// ArchiveGoal hides a goal from the list and today views without deleting it.
func (s *Service) ArchiveGoal(ctx context.Context, ref string) (string, error) {
	id, err := s.store.ResolveTaskID(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := s.store.UpdateTaskStatus(ctx, id, model.TaskStatusArchived); err != nil {
		return "", err
	}
	return id, nil
}

// DeleteGoal removes a goal and all of its steps.
func (s *Service) DeleteGoal(ctx context.Context, ref string) (string, error) {
	id, err := s.store.ResolveTaskID(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// PinStep adds a step to the today view.
func (s *Service) PinStep(ctx context.Context, ref string) (*model.Subtask, error) {
	return s.setToday(ctx, ref, true)
}

// UnpinStep removes a step from the today view.
func (s *Service) UnpinStep(ctx context.Context, ref string) (*model.Subtask, error) {
	return s.setToday(ctx, ref, false)
}

func (s *Service) setToday(ctx context.Context, ref string, today bool) (*model.Subtask, error) {
	id, err := s.store.ResolveSubtaskID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetSubtaskToday(ctx, id, today); err != nil {
		return nil, err
	}
	return s.store.GetSubtask(ctx, id)
}

// Today returns pinned steps grouped by goal, newest goal first.
func (s *Service) Today(ctx context.Context) ([]TodayGroup, error) {
	steps, err := s.store.ListTodaySubtasks(ctx)
	if err != nil {
		return nil, err
	}

	var groups []TodayGroup
	for _, step := range steps {
		if n := len(groups); n > 0 && groups[n-1].Task.ID == step.TaskID {
			groups[n-1].Steps = append(groups[n-1].Steps, step)
			continue
		}
		task, err := s.store.GetTask(ctx, step.TaskID)
		if err != nil {
			return nil, fmt.Errorf("loading goal for step %s: %w", step.ID, err)
		}
		groups = append(groups, TodayGroup{Task: *task, Steps: []model.Subtask{step}})
	}
	return groups, nil
}

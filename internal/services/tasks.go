package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/logging"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
	"github.com/dmitrijs2005/pocketkeeper/internal/views"
)

type TaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.Priority
	DueDate     string
	Tags        []string
	Category    string
	Note        string
}

type TaskService interface {
	Add(ctx context.Context, in TaskInput) (models.Task, error)
	Update(ctx context.Context, id string, patch func(*models.Task)) (models.Task, error)
	SetStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status models.TaskStatus) ([]models.Task, error)
	Stats(ctx context.Context) (views.TaskStats, error)
	AddSubtask(ctx context.Context, taskID, title string) (models.Task, error)
	ToggleSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error)
	RemoveSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error)
}

type taskService struct {
	tasks  store.Repository[models.Task]
	logger logging.Logger
}

func NewTaskService(tasks store.Repository[models.Task], logger logging.Logger) TaskService {
	return &taskService{tasks: tasks, logger: logger.With("service", "task")}
}

// Add creates a task at the end of the manual order.
func (s *taskService) Add(ctx context.Context, in TaskInput) (models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.Task{}, invalid("Error", "Please enter a task title")
	}
	if in.Status == "" {
		in.Status = models.TaskNotStarted
	}
	if !in.Status.Valid() {
		return models.Task{}, invalid("Error", fmt.Sprintf("Unknown status %q", in.Status))
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return models.Task{}, invalid("Error", fmt.Sprintf("Unknown priority %q", in.Priority))
	}

	n, err := s.tasks.Count(ctx)
	if err != nil {
		return models.Task{}, err
	}

	t, err := s.tasks.Create(ctx, models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
		Category:    in.Category,
		Note:        in.Note,
		Subtasks:    []models.SubTask{},
		Order:       n,
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to add task: %w", err)
	}
	return t, nil
}

func (s *taskService) Update(ctx context.Context, id string, patch func(*models.Task)) (models.Task, error) {
	t, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

func (s *taskService) SetStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	if !status.Valid() {
		return models.Task{}, invalid("Error", fmt.Sprintf("Unknown status %q", status))
	}
	return s.Update(ctx, id, func(t *models.Task) { t.Status = status })
}

// Delete removes the task. Remaining tasks keep their order values.
func (s *taskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *taskService) List(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	all, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return views.SortTasks(all, status), nil
}

func (s *taskService) Stats(ctx context.Context) (views.TaskStats, error) {
	all, err := s.tasks.GetAll(ctx)
	if err != nil {
		return views.TaskStats{}, err
	}
	return views.TaskStatistics(all), nil
}

func (s *taskService) AddSubtask(ctx context.Context, taskID, title string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, invalid("Error", "Please enter a subtask title")
	}
	st := models.SubTask{ID: newID(), Title: title}
	return s.editSubtasks(ctx, taskID, func(subs []models.SubTask) ([]models.SubTask, error) {
		return append(subs, st), nil
	})
}

func (s *taskService) ToggleSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error) {
	return s.editSubtasks(ctx, taskID, func(subs []models.SubTask) ([]models.SubTask, error) {
		i := slices.IndexFunc(subs, func(st models.SubTask) bool { return st.ID == subtaskID })
		if i < 0 {
			return nil, invalid("Error", "Subtask not found")
		}
		subs[i].Completed = !subs[i].Completed
		return subs, nil
	})
}

func (s *taskService) RemoveSubtask(ctx context.Context, taskID, subtaskID string) (models.Task, error) {
	return s.editSubtasks(ctx, taskID, func(subs []models.SubTask) ([]models.SubTask, error) {
		return slices.DeleteFunc(subs, func(st models.SubTask) bool { return st.ID == subtaskID }), nil
	})
}

// editSubtasks rewrites the subtask list and recomputes the task status.
func (s *taskService) editSubtasks(ctx context.Context, taskID string, edit func([]models.SubTask) ([]models.SubTask, error)) (models.Task, error) {
	t, ok, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if !ok {
		return models.Task{}, fmt.Errorf("task %s: %w", taskID, common.ErrorNotFound)
	}

	subs, err := edit(slices.Clone(t.Subtasks))
	if err != nil {
		return models.Task{}, err
	}
	if subs == nil {
		subs = []models.SubTask{}
	}
	status := views.DeriveTaskStatus(t.Status, subs)

	updated, err := s.tasks.Update(ctx, taskID, func(t *models.Task) {
		t.Subtasks = subs
		t.Status = status
	})
	if err != nil {
		s.logger.Error(ctx, "failed to update subtasks", "task", taskID, "error", err)
		return models.Task{}, fmt.Errorf("failed to update subtasks: %w", err)
	}
	return updated, nil
}

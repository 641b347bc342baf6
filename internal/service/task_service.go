package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/mo"
	"gorm.io/gorm"

	"recur-tracker/internal/model"
	"recur-tracker/internal/recur"
	"recur-tracker/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Name        string
	Description string
	Category    string
	Frequency   FrequencyInput
	Until       UntilInput
}

// TaskService wraps task business logic: CRUD, the pause/unpause/
// complete state machine, rule replacement and the recompute trigger
// that keeps status and the next-occurrence estimate in sync.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	now          func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// CreateTask validates both rules, stores the aggregate and seeds the
// first estimate.
func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	if input.Name == "" {
		return nil, validationf("name is required")
	}
	if err := validateFrequency(input.Frequency); err != nil {
		return nil, err
	}
	if err := validateUntil(input.Until); err != nil {
		return nil, err
	}

	if _, err := s.taskRepo.FindByName(ctx, user.ID, input.Name); err == nil {
		return nil, validationf("a task named %q already exists", input.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check task name: %w", err)
	}

	var categoryID *uint
	if input.Category != "" {
		category, err := s.categoryRepo.GetOrCreate(ctx, user.ID, input.Category)
		if err != nil {
			return nil, err
		}
		if category != nil {
			categoryID = &category.ID
		}
	}

	task := model.Task{
		UserID:      user.ID,
		CategoryID:  categoryID,
		Name:        input.Name,
		Description: input.Description,
		Status:      model.StatusOngoing,
		Frequency:   frequencyFromInput(input.Frequency),
		Until:       untilFromInput(input.Until),
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	// Seed status and estimate right away so a fresh task already shows
	// when it is next due.
	if err := s.Recompute(ctx, user.ID, task.ID); err != nil {
		return nil, err
	}

	return s.GetTask(ctx, user, task.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, translate(err)
	}
	return task, nil
}

// ListTasks returns the user's tasks, optionally narrowed by status and
// category, soonest due first.
func (s *TaskService) ListTasks(ctx context.Context, user *model.User, filter repository.TaskFilter) ([]model.Task, error) {
	return s.taskRepo.List(ctx, user.ID, filter)
}

func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) error {
	return translate(s.taskRepo.Delete(ctx, user.ID, taskID))
}

// PauseTask suspends an ongoing task. Paused tasks keep their history
// but have no pending occurrence.
func (s *TaskService) PauseTask(ctx context.Context, user *model.User, taskID uint) error {
	task, err := s.GetTask(ctx, user, taskID)
	if err != nil {
		return err
	}
	if task.Status != model.StatusOngoing {
		return validationf("cannot pause a task that isn't ongoing")
	}

	err = s.taskRepo.Update(ctx, user.ID, taskID, repository.TaskPatch{
		Status: mo.Some(model.StatusPaused),
	})
	if err != nil {
		return translate(err)
	}
	return s.Recompute(ctx, user.ID, taskID)
}

// UnpauseTask resumes a paused task. The follow-up recompute may
// immediately complete it again if its until rule is already satisfied.
func (s *TaskService) UnpauseTask(ctx context.Context, user *model.User, taskID uint) error {
	task, err := s.GetTask(ctx, user, taskID)
	if err != nil {
		return err
	}
	if task.Status != model.StatusPaused {
		return validationf("cannot unpause a task that isn't paused")
	}

	err = s.taskRepo.Update(ctx, user.ID, taskID, repository.TaskPatch{
		Status: mo.Some(model.StatusOngoing),
	})
	if err != nil {
		return translate(err)
	}
	return s.Recompute(ctx, user.ID, taskID)
}

// CompleteTask finishes a task by hand. Manual completion is sticky:
// recomputation never reverts it, unlike amount/date completions.
func (s *TaskService) CompleteTask(ctx context.Context, user *model.User, taskID uint) error {
	task, err := s.GetTask(ctx, user, taskID)
	if err != nil {
		return err
	}
	if task.Status != model.StatusOngoing {
		return validationf("cannot complete a task that isn't ongoing")
	}

	now := s.now()
	err = s.taskRepo.Update(ctx, user.ID, taskID, repository.TaskPatch{
		Status:              mo.Some(model.StatusCompleted),
		ManuallyCompletedAt: mo.Some(&now),
	})
	if err != nil {
		return translate(err)
	}
	return s.Recompute(ctx, user.ID, taskID)
}

// UpdateFrequency swaps the task's recurrence rule for a new one and
// recomputes the estimate against it.
func (s *TaskService) UpdateFrequency(ctx context.Context, user *model.User, taskID uint, input FrequencyInput) error {
	if err := validateFrequency(input); err != nil {
		return err
	}
	task, err := s.GetTask(ctx, user, taskID)
	if err != nil {
		return err
	}

	frequency := frequencyFromInput(input)
	if err := s.taskRepo.ReplaceFrequency(ctx, task.ID, &frequency); err != nil {
		return err
	}
	return s.Recompute(ctx, user.ID, task.ID)
}

// UpdateUntil swaps the task's termination rule; the recompute can flip
// the status in either direction.
func (s *TaskService) UpdateUntil(ctx context.Context, user *model.User, taskID uint, input UntilInput) error {
	if err := validateUntil(input); err != nil {
		return err
	}
	task, err := s.GetTask(ctx, user, taskID)
	if err != nil {
		return err
	}

	until := untilFromInput(input)
	if err := s.taskRepo.ReplaceUntil(ctx, task.ID, &until); err != nil {
		return err
	}
	return s.Recompute(ctx, user.ID, task.ID)
}

// Recompute reloads the aggregate, re-derives status and the
// next-occurrence estimate and persists both in one write. It runs
// synchronously after every mutation and is idempotent.
func (s *TaskService) Recompute(ctx context.Context, userID, taskID uint) error {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return translate(err)
	}

	status := recur.ComputeStatus(task, s.now())
	task.Status = status
	next := recur.EstimateNextEvent(task)

	return translate(s.taskRepo.Update(ctx, userID, taskID, repository.TaskPatch{
		Status:      mo.Some(status),
		NextEventAt: mo.Some(next),
	}))
}

// SweepExpired bulk-completes tasks whose until date has passed. Runs
// from the daily cron job; the per-event recompute path converges to
// the same end state, so the two never fight.
func (s *TaskService) SweepExpired(ctx context.Context) error {
	affected, err := s.taskRepo.MarkExpiredDateTasksCompleted(ctx, s.now())
	if err != nil {
		return err
	}
	if affected > 0 {
		log.Printf("[info] sweep: %d task(s) reached their until date", affected)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/mo"
	"gorm.io/gorm"

	"recur-tracker/internal/model"
)

// TaskRepository handles the task aggregate: the task row plus its
// frequency, until and event children.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List. An absent option leaves the clause out
// entirely; the category option may itself carry nil, which matches
// tasks without a category.
type TaskFilter struct {
	Status     mo.Option[model.TaskStatus]
	CategoryID mo.Option[*uint]
}

// TaskPatch applies only the fields that are present. A present pointer
// field may still carry nil, which clears the column.
type TaskPatch struct {
	Status              mo.Option[model.TaskStatus]
	ManuallyCompletedAt mo.Option[*time.Time]
	NextEventAt         mo.Option[*time.Time]
}

// withAggregate preloads frequency, until and the events ordered by
// effective datetime, latest first.
func withAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Frequency").
		Preload("Until").
		Preload("Events", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("effective_at DESC")
		})
}

// Create inserts the task together with its owned frequency and until
// rows in one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByID loads the full aggregate for the given owner.
func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := withAggregate(r.db.WithContext(ctx)).
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByName looks a task up by its per-user unique name.
func (r *TaskRepository) FindByName(ctx context.Context, userID uint, name string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's task aggregates, soonest estimate first with
// unestimated tasks at the end.
func (r *TaskRepository) List(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	db := withAggregate(r.db.WithContext(ctx)).Where("user_id = ?", userID)

	if status, ok := filter.Status.Get(); ok {
		db = db.Where("status = ?", status)
	}
	if categoryID, ok := filter.CategoryID.Get(); ok {
		if categoryID == nil {
			db = db.Where("category_id IS NULL")
		} else {
			db = db.Where("category_id = ?", *categoryID)
		}
	}

	var tasks []model.Task
	if err := db.Order("next_event_at IS NULL, next_event_at ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update patches the task row with the present fields in a single
// UPDATE, so derived status/next-occurrence pairs land atomically.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID uint, patch TaskPatch) error {
	updates := map[string]interface{}{}
	if status, ok := patch.Status.Get(); ok {
		updates["status"] = status
	}
	if at, ok := patch.ManuallyCompletedAt.Get(); ok {
		updates["manually_completed_at"] = at
	}
	if at, ok := patch.NextEventAt.Get(); ok {
		updates["next_event_at"] = at
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceFrequency swaps the task's frequency rule for a new one. Rules
// are immutable value objects: the old row is removed, never mutated.
func (r *TaskRepository) ReplaceFrequency(ctx context.Context, taskID uint, frequency *model.Frequency) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Frequency{}).Error; err != nil {
			return fmt.Errorf("delete old frequency: %w", err)
		}
		frequency.ID = 0
		frequency.TaskID = taskID
		if err := tx.Create(frequency).Error; err != nil {
			return fmt.Errorf("create frequency: %w", err)
		}
		return nil
	})
}

// ReplaceUntil swaps the task's until rule, same semantics as
// ReplaceFrequency.
func (r *TaskRepository) ReplaceUntil(ctx context.Context, taskID uint, until *model.Until) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Until{}).Error; err != nil {
			return fmt.Errorf("delete old until: %w", err)
		}
		until.ID = 0
		until.TaskID = taskID
		if err := tx.Create(until).Error; err != nil {
			return fmt.Errorf("create until: %w", err)
		}
		return nil
	})
}

// Delete removes the task and everything it owns. Children are removed
// explicitly so the cascade does not depend on SQLite foreign-key
// enforcement being switched on.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskEvent{}).Error; err != nil {
			return fmt.Errorf("delete task events: %w", err)
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.Frequency{}).Error; err != nil {
			return fmt.Errorf("delete task frequency: %w", err)
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.Until{}).Error; err != nil {
			return fmt.Errorf("delete task until: %w", err)
		}
		if err := tx.Delete(&task).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

// MarkExpiredDateTasksCompleted bulk-completes every non-completed task
// whose until rule is a date that has passed, clearing the estimate in
// the same statement. Safe to run repeatedly.
func (r *TaskRepository) MarkExpiredDateTasksCompleted(ctx context.Context, today time.Time) (int64, error) {
	expired := r.db.Model(&model.Until{}).
		Select("task_id").
		Where("type = ? AND date <= ?", model.UntilDate, today)

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status <> ?", model.StatusCompleted).
		Where("id IN (?)", expired).
		Updates(map[string]interface{}{
			"status":        model.StatusCompleted,
			"next_event_at": nil,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("mark expired tasks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

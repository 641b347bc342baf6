package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recur-tracker/internal/model"
)

// EventRepository handles logged task occurrences.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.TaskEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create task event: %w", err)
	}
	return nil
}

// FindByID resolves an event, scoped to the owning user via the task
// join so one user cannot touch another's events.
func (r *EventRepository) FindByID(ctx context.Context, userID, eventID uint) (*model.TaskEvent, error) {
	var event model.TaskEvent
	if err := r.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = task_events.task_id").
		Where("task_events.id = ? AND tasks.user_id = ?", eventID, userID).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListByTask returns a task's events, latest effective datetime first.
func (r *EventRepository) ListByTask(ctx context.Context, taskID uint) ([]model.TaskEvent, error) {
	var events []model.TaskEvent
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("effective_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Delete(ctx context.Context, eventID uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.TaskEvent{}, eventID).Error; err != nil {
		return fmt.Errorf("delete task event: %w", err)
	}
	return nil
}

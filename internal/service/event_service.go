package service

import (
	"context"
	"time"

	"recur-tracker/internal/model"
	"recur-tracker/internal/repository"
)

// EventInput represents one logged occurrence: a rough placement plus
// an explicit timestamp when the placement is "specifically".
type EventInput struct {
	Around model.EventAround
	At     *time.Time
}

// EventService logs and removes task events. Every mutation calls
// straight into TaskService.Recompute before returning, so status and
// the next-occurrence estimate never lag behind the history.
type EventService struct {
	eventRepo *repository.EventRepository
	taskSvc   *TaskService
	now       func() time.Time
}

func NewEventService(eventRepo *repository.EventRepository, taskSvc *TaskService) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		taskSvc:   taskSvc,
		now:       time.Now,
	}
}

// LogEvent records an occurrence against an ongoing task.
func (s *EventService) LogEvent(ctx context.Context, user *model.User, taskID uint, input EventInput) (*model.TaskEvent, error) {
	task, err := s.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != model.StatusOngoing {
		return nil, validationf("events can only be logged against an ongoing task")
	}

	switch input.Around {
	case model.AroundToday, model.AroundYesterday:
		if input.At != nil {
			return nil, validationf("an explicit time is only allowed when the event is placed specifically")
		}
	case model.AroundSpecifically:
		if input.At == nil {
			return nil, validationf("an explicit time is required when the event is placed specifically")
		}
	default:
		return nil, validationf("unknown event placement %q", input.Around)
	}

	now := s.now()
	event := model.TaskEvent{
		TaskID:      task.ID,
		Around:      input.Around,
		At:          input.At,
		EffectiveAt: effectiveDatetime(input, now),
		CreatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, &event); err != nil {
		return nil, err
	}

	if err := s.taskSvc.Recompute(ctx, user.ID, task.ID); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes a logged occurrence. Under an amount/date until
// rule this is the path a completed task takes back to ongoing.
func (s *EventService) DeleteEvent(ctx context.Context, user *model.User, eventID uint) error {
	event, err := s.eventRepo.FindByID(ctx, user.ID, eventID)
	if err != nil {
		return translate(err)
	}
	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		return err
	}
	return s.taskSvc.Recompute(ctx, user.ID, event.TaskID)
}

// ListEvents returns a task's history, latest effective datetime first.
func (s *EventService) ListEvents(ctx context.Context, user *model.User, taskID uint) ([]model.TaskEvent, error) {
	task, err := s.taskSvc.GetTask(ctx, user, taskID)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.ListByTask(ctx, task.ID)
}

// effectiveDatetime resolves the rough placement to the timestamp the
// engine orders and anchors on.
func effectiveDatetime(input EventInput, created time.Time) time.Time {
	switch input.Around {
	case model.AroundToday:
		return created
	case model.AroundYesterday:
		return created.Add(-24 * time.Hour)
	}
	return *input.At
}

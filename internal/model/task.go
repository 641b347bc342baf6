package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusOngoing   TaskStatus = "ongoing"
	StatusPaused    TaskStatus = "paused"
	StatusCompleted TaskStatus = "completed"
)

// Task is a recurring item the user wants to keep doing. It owns exactly
// one Frequency rule, one Until rule and its logged events; all of them
// go away with the task.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      uint  `gorm:"index"`
	CategoryID  *uint `gorm:"index"`
	Name        string
	Description string

	Status TaskStatus `gorm:"default:ongoing"`

	// ManuallyCompletedAt is set only by an explicit complete action.
	// Recomputation never clears it.
	ManuallyCompletedAt *time.Time

	// NextEventAt is the estimator's last output. Non-nil only while the
	// task is ongoing; purely advisory.
	NextEventAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Frequency Frequency   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Until     Until       `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Events    []TaskEvent `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// LatestEvent returns the event with the greatest effective datetime, or
// nil when nothing has been logged yet. "Latest" is always by effective
// datetime, never by creation time.
func (t *Task) LatestEvent() *TaskEvent {
	var latest *TaskEvent
	for i := range t.Events {
		if latest == nil || t.Events[i].EffectiveAt.After(latest.EffectiveAt) {
			latest = &t.Events[i]
		}
	}
	return latest
}

// SecondLatestEvent returns the event right behind LatestEvent, or nil.
func (t *Task) SecondLatestEvent() *TaskEvent {
	latest := t.LatestEvent()
	if latest == nil {
		return nil
	}
	var second *TaskEvent
	for i := range t.Events {
		if &t.Events[i] == latest {
			continue
		}
		if second == nil || t.Events[i].EffectiveAt.After(second.EffectiveAt) {
			second = &t.Events[i]
		}
	}
	return second
}

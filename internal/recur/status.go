package recur

import (
	"time"

	"recur-tracker/internal/model"
)

// ComputeStatus derives the lifecycle status of a task at the given
// time. Pause is sticky until an explicit unpause, and a manual
// completion is never reverted automatically. Amount and date rules are
// the reversible ones: deleting an event or moving the date can bring a
// completed task back to ongoing.
func ComputeStatus(task *model.Task, now time.Time) model.TaskStatus {
	if task.Status == model.StatusPaused {
		return model.StatusPaused
	}

	if task.ManuallyCompletedAt != nil {
		return model.StatusCompleted
	}

	switch task.Until.Type {
	case model.UntilAmount:
		if len(task.Events) >= task.Until.Amount {
			return model.StatusCompleted
		}
		return model.StatusOngoing
	case model.UntilDate:
		if task.Until.Date != nil && !now.Before(*task.Until.Date) {
			return model.StatusCompleted
		}
		return model.StatusOngoing
	}

	// "stopped" and "completed" rules end only through user action.
	return model.StatusOngoing
}

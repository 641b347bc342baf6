package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recur-tracker/internal/model"
)

func TestComputeStatus(t *testing.T) {
	now := date(2024, time.March, 15, 12, 0)
	pastDate := date(2024, time.March, 10, 0, 0)
	futureDate := date(2024, time.April, 1, 0, 0)
	completedAt := date(2024, time.March, 14, 9, 0)

	tests := []struct {
		name string
		task model.Task
		want model.TaskStatus
	}{
		{
			name: "pause is sticky regardless of rules",
			task: model.Task{
				Status: model.StatusPaused,
				Until:  model.Until{Type: model.UntilDate, Date: &pastDate},
			},
			want: model.StatusPaused,
		},
		{
			name: "manual completion is sticky",
			task: model.Task{
				Status:              model.StatusOngoing,
				ManuallyCompletedAt: &completedAt,
				Until:               model.Until{Type: model.UntilStopped},
			},
			want: model.StatusCompleted,
		},
		{
			name: "amount rule satisfied",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilAmount, Amount: 2},
				Events: []model.TaskEvent{{}, {}},
			},
			want: model.StatusCompleted,
		},
		{
			name: "amount rule not yet satisfied",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilAmount, Amount: 2},
				Events: []model.TaskEvent{{}},
			},
			want: model.StatusOngoing,
		},
		{
			name: "amount rule reverts a completed task after event removal",
			task: model.Task{
				Status: model.StatusCompleted,
				Until:  model.Until{Type: model.UntilAmount, Amount: 2},
				Events: []model.TaskEvent{{}},
			},
			want: model.StatusOngoing,
		},
		{
			name: "date rule in the past",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilDate, Date: &pastDate},
			},
			want: model.StatusCompleted,
		},
		{
			name: "date rule exactly now",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilDate, Date: &now},
			},
			want: model.StatusCompleted,
		},
		{
			name: "date rule in the future",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilDate, Date: &futureDate},
			},
			want: model.StatusOngoing,
		},
		{
			name: "stopped rule stays ongoing",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilStopped},
				Events: []model.TaskEvent{{}, {}, {}},
			},
			want: model.StatusOngoing,
		},
		{
			name: "completed rule without manual completion stays ongoing",
			task: model.Task{
				Status: model.StatusOngoing,
				Until:  model.Until{Type: model.UntilCompleted},
			},
			want: model.StatusOngoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			assert.Equal(t, tt.want, ComputeStatus(&task, now))
		})
	}
}

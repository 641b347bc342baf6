package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recur-tracker/internal/model"
)

func TestLogEventPlacements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.CreateTask(ctx, env.user, dailyTaskInput("journal"))
	require.NoError(t, err)

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)
	env.setNow(now)

	t.Run("today lands on the creation instant", func(t *testing.T) {
		event, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundToday})
		require.NoError(t, err)
		assert.WithinDuration(t, now, event.EffectiveAt, time.Second)
	})

	t.Run("yesterday lands a day earlier", func(t *testing.T) {
		event, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundYesterday})
		require.NoError(t, err)
		assert.WithinDuration(t, now.Add(-24*time.Hour), event.EffectiveAt, time.Second)
	})

	t.Run("specifically uses the explicit time", func(t *testing.T) {
		at := time.Date(2024, time.March, 14, 8, 30, 0, 0, time.Local)
		event, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundSpecifically, At: &at})
		require.NoError(t, err)
		assert.WithinDuration(t, at, event.EffectiveAt, time.Second)
	})

	t.Run("specifically requires the time", func(t *testing.T) {
		_, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundSpecifically})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("today forbids an explicit time", func(t *testing.T) {
		at := time.Now()
		_, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundToday, At: &at})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown placement", func(t *testing.T) {
		_, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: "sometime"})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestLogEventRequiresOngoingTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.CreateTask(ctx, env.user, dailyTaskInput("on hold"))
	require.NoError(t, err)
	require.NoError(t, env.taskSvc.PauseTask(ctx, env.user, task.ID))

	_, err = env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundToday})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

// TestAmountLifecycle walks a task through its whole amount-rule loop:
// log the final event, complete, delete the event, revert to ongoing.
func TestAmountLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := dailyTaskInput("one-shot chore")
	input.Until = UntilInput{Type: model.UntilAmount, Amount: 1}
	task, err := env.taskSvc.CreateTask(ctx, env.user, input)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOngoing, task.Status)
	require.NotNil(t, task.NextEventAt)

	event, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundToday})
	require.NoError(t, err)

	completed, err := env.taskSvc.GetTask(ctx, env.user, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
	assert.Nil(t, completed.NextEventAt)

	require.NoError(t, env.eventSvc.DeleteEvent(ctx, env.user, event.ID))

	reverted, err := env.taskSvc.GetTask(ctx, env.user, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOngoing, reverted.Status)
	assert.NotNil(t, reverted.NextEventAt)
}

func TestDeleteEventScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.CreateTask(ctx, env.user, dailyTaskInput("mine"))
	require.NoError(t, err)
	event, err := env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundToday})
	require.NoError(t, err)

	stranger := &model.User{ID: env.user.ID + 1}
	err = env.eventSvc.DeleteEvent(ctx, stranger, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = env.eventSvc.DeleteEvent(ctx, env.user, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEventsLatestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.taskSvc.CreateTask(ctx, env.user, dailyTaskInput("walk"))
	require.NoError(t, err)

	early := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)
	late := time.Date(2024, time.March, 12, 9, 0, 0, 0, time.Local)

	_, err = env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundSpecifically, At: &early})
	require.NoError(t, err)
	_, err = env.eventSvc.LogEvent(ctx, env.user, task.ID, EventInput{Around: model.AroundSpecifically, At: &late})
	require.NoError(t, err)

	events, err := env.eventSvc.ListEvents(ctx, env.user, task.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.WithinDuration(t, late, events[0].EffectiveAt, time.Second)
	assert.WithinDuration(t, early, events[1].EffectiveAt, time.Second)
}

package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recur-tracker/internal/model"
)

func ongoingTask(createdAt time.Time, f model.Frequency) *model.Task {
	return &model.Task{
		Status:    model.StatusOngoing,
		CreatedAt: createdAt,
		Frequency: f,
	}
}

func withEvents(task *model.Task, effective ...time.Time) *model.Task {
	for _, at := range effective {
		task.Events = append(task.Events, model.TaskEvent{TaskID: task.ID, Around: model.AroundSpecifically, EffectiveAt: at})
	}
	return task
}

func strPtr(s string) *string { return &s }

func weekdayPtr(w model.Weekday) *model.Weekday { return &w }

func TestEstimateNextEventNonOngoing(t *testing.T) {
	created := date(2024, time.March, 11, 9, 0)

	paused := ongoingTask(created, model.Frequency{Type: model.FrequencyPer, Period: model.PeriodDay, Amount: 1})
	paused.Status = model.StatusPaused
	assert.Nil(t, EstimateNextEvent(paused))

	completed := ongoingTask(created, model.Frequency{Type: model.FrequencyPer, Period: model.PeriodDay, Amount: 1})
	completed.Status = model.StatusCompleted
	assert.Nil(t, EstimateNextEvent(completed))
}

func TestEstimateNextEventOn(t *testing.T) {
	created := date(2024, time.March, 1, 9, 0)
	due := date(2024, time.March, 20, 0, 0)

	t.Run("date without time defaults to 23:59", func(t *testing.T) {
		task := ongoingTask(created, model.Frequency{Type: model.FrequencyOn, Amount: 1, OnceOnDate: &due})
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 20, 23, 59), *next)
	})

	t.Run("date with explicit time", func(t *testing.T) {
		task := ongoingTask(created, model.Frequency{
			Type: model.FrequencyOn, Amount: 1, OnceOnDate: &due, OnceAtTime: strPtr("09:15"),
		})
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 20, 9, 15), *next)
	})

	t.Run("already logged means nothing pending", func(t *testing.T) {
		task := ongoingTask(created, model.Frequency{Type: model.FrequencyOn, Amount: 1, OnceOnDate: &due})
		withEvents(task, date(2024, time.March, 19, 10, 0))
		assert.Nil(t, EstimateNextEvent(task))
	})

	t.Run("missing date", func(t *testing.T) {
		task := ongoingTask(created, model.Frequency{Type: model.FrequencyOn, Amount: 1})
		assert.Nil(t, EstimateNextEvent(task))
	})
}

func TestEstimateNextEventThis(t *testing.T) {
	t.Run("all occurrences logged", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 0, 0), model.Frequency{
			Type: model.FrequencyThis, Period: model.PeriodWeek, Amount: 2,
		})
		withEvents(task, date(2024, time.March, 11, 10, 0), date(2024, time.March, 12, 10, 0))
		assert.Nil(t, EstimateNextEvent(task))
	})

	t.Run("calendar week splits the remaining span", func(t *testing.T) {
		// Created Monday noon, one occurrence wanted before Sunday 23:59.
		task := ongoingTask(date(2024, time.March, 11, 12, 0), model.Frequency{
			Type: model.FrequencyThis, Period: model.PeriodWeek, Amount: 1, UseCalendarPeriod: true,
		})
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 14, 17, 59), *next)
	})

	t.Run("rolling day splits from creation", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 12, 0), model.Frequency{
			Type: model.FrequencyThis, Period: model.PeriodDay, Amount: 1,
		})
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 12, 0, 0), *next)
	})

	t.Run("anchor moves to the latest event", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 0, 0), model.Frequency{
			Type: model.FrequencyThis, Period: model.PeriodDay, Amount: 2,
		})
		withEvents(task, date(2024, time.March, 11, 12, 0))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		// 12 hours left, one occurrence to go: halfway through.
		assert.Equal(t, date(2024, time.March, 11, 18, 0), *next)
	})

	t.Run("closed window reads as due at the anchor", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 0, 0), model.Frequency{
			Type: model.FrequencyThis, Period: model.PeriodDay, Amount: 2,
		})
		withEvents(task, date(2024, time.March, 12, 6, 0))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 12, 6, 0), *next)
	})
}

func TestEstimateNextEventOncePerDay(t *testing.T) {
	t.Run("no events yet targets the creation day at noon", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 15, 30), model.Frequency{
			Type: model.FrequencyPer, Period: model.PeriodDay, Amount: 1,
		})
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 11, 12, 0), *next)
	})

	t.Run("next day after an event", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 9, 0), model.Frequency{
			Type: model.FrequencyPer, Period: model.PeriodDay, Amount: 1,
		})
		withEvents(task, date(2024, time.March, 11, 18, 0))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 12, 12, 0), *next)
	})

	t.Run("explicit clock wins over noon", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 9, 0), model.Frequency{
			Type: model.FrequencyPer, Period: model.PeriodDay, Amount: 1, OnceAtTime: strPtr("08:30"),
		})
		withEvents(task, date(2024, time.March, 11, 18, 0))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 12, 8, 30), *next)
	})
}

func TestEstimateNextEventOncePerWeekday(t *testing.T) {
	weekly := func(day model.Weekday) model.Frequency {
		return model.Frequency{
			Type: model.FrequencyPer, Period: model.PeriodWeek, Amount: 1,
			OncePerWeekday: weekdayPtr(day),
		}
	}

	t.Run("creation day matches the target without events", func(t *testing.T) {
		// Wednesday, targeting wednesday: this very day counts.
		task := ongoingTask(date(2024, time.March, 13, 9, 0), weekly(model.Wednesday))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 13, 12, 0), *next)
	})

	t.Run("target already passed this week", func(t *testing.T) {
		// Wednesday, targeting monday: next week's monday.
		task := ongoingTask(date(2024, time.March, 13, 9, 0), weekly(model.Monday))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 18, 12, 0), *next)
	})

	t.Run("event on the target day pushes a full week", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 9, 0), weekly(model.Wednesday))
		withEvents(task, date(2024, time.March, 13, 19, 0))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 20, 12, 0), *next)
	})

	t.Run("event before the target stays within the week", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 4, 9, 0), weekly(model.Friday))
		withEvents(task, date(2024, time.March, 11, 8, 0)) // monday
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 15, 12, 0), *next)
	})
}

func TestEstimateNextEventSeveralPerPeriod(t *testing.T) {
	// Twice a week: nominal spacing of 3.5 days.
	freq := model.Frequency{Type: model.FrequencyPer, Period: model.PeriodWeek, Amount: 2}

	t.Run("no events spaces from creation", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 10, 0), freq)
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 14, 22, 0), *next)
	})

	t.Run("single event spaces from it", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 11, 10, 0), freq)
		withEvents(task, date(2024, time.March, 12, 10, 0))
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 15, 22, 0), *next)
	})

	t.Run("fast pair inflates the spacing", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 10, 10, 0), freq)
		withEvents(task,
			date(2024, time.March, 11, 10, 0),
			date(2024, time.March, 12, 10, 0), // one day apart, well under 3.5
		)
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		// 5040 + ceil((5040-1440)/2) = 6840 minutes after the latest event.
		assert.Equal(t, date(2024, time.March, 17, 4, 0), *next)
	})

	t.Run("slow pair keeps the nominal spacing", func(t *testing.T) {
		task := ongoingTask(date(2024, time.March, 1, 10, 0), freq)
		withEvents(task,
			date(2024, time.March, 2, 10, 0),
			date(2024, time.March, 8, 10, 0),
		)
		next := EstimateNextEvent(task)
		require.NotNil(t, next)
		assert.Equal(t, date(2024, time.March, 11, 22, 0), *next)
	})
}

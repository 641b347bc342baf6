package recur

import (
	"math"
	"time"

	"recur-tracker/internal/model"
)

// EstimateNextEvent computes the approximate datetime the task is next
// due, or nil when nothing is pending. Paused and completed tasks have
// no pending occurrence. The value is advisory: it may already be in
// the past, which simply means the task is overdue.
func EstimateNextEvent(task *model.Task) *time.Time {
	if task.Status != model.StatusOngoing {
		return nil
	}

	switch task.Frequency.Type {
	case model.FrequencyOn:
		return nextForOn(task)
	case model.FrequencyThis:
		return nextForThis(task)
	case model.FrequencyPer:
		return nextForPer(task)
	}
	return nil
}

// nextForOn handles a single dated occurrence: the given date at the
// given time, or 23:59 when no time was set.
func nextForOn(task *model.Task) *time.Time {
	if len(task.Events) > 0 {
		// Validation keeps "on" tasks from staying ongoing with an event
		// logged, but the estimator does not rely on that.
		return nil
	}

	f := task.Frequency
	if f.OnceOnDate == nil {
		return nil
	}

	hour, minute := f.ClockOrDefault(23, 59)
	d := *f.OnceOnDate
	next := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
	return &next
}

// nextForThis spreads the remaining required occurrences evenly across
// the remaining window. The anchor moves to the latest event, so the
// spacing self-corrects after every log.
func nextForThis(task *model.Task) *time.Time {
	f := task.Frequency

	remaining := f.Amount - len(task.Events)
	if remaining < 1 {
		return nil
	}

	var periodEnd time.Time
	if f.UseCalendarPeriod {
		periodEnd = EndOfPeriod(f.Period, task.CreatedAt)
	} else {
		periodEnd = task.CreatedAt.AddDate(0, 0, PeriodDays(f.Period))
	}

	anchor := task.CreatedAt
	if latest := task.LatestEvent(); latest != nil {
		anchor = latest.EffectiveAt
	}

	remainingMinutes := int(periodEnd.Sub(anchor) / time.Minute)
	if remainingMinutes < 0 {
		// The window already closed (task created right at the boundary,
		// or events logged past it): fall back to the anchor itself, so
		// the occurrence reads as due now rather than dividing a
		// negative span.
		remainingMinutes = 0
	}

	next := anchor.Add(time.Duration(remainingMinutes/(remaining+1)) * time.Minute)
	return &next
}

func nextForPer(task *model.Task) *time.Time {
	f := task.Frequency
	latest := task.LatestEvent()

	latestEffective := task.CreatedAt
	if latest != nil {
		latestEffective = latest.EffectiveAt
	}

	switch {
	case f.IsOncePerDay():
		// The day after the previous event; today if nothing is logged.
		day := startOfDay(task.CreatedAt)
		if latest != nil {
			day = startOfDay(latestEffective).AddDate(0, 0, 1)
		}
		hour, minute := f.ClockOrDefault(12, 0)
		next := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
		return &next

	case f.IsOncePerWeekday():
		target := model.WeekdayIndex(*f.OncePerWeekday)
		delta := weekdayIndex(latestEffective) - target

		// Without any event the upcoming target day this week counts
		// (delta <= 0); once an event exists, landing on the same weekday
		// pushes to next week (delta < 0 only).
		withinWeek := delta < 0
		if latest == nil {
			withinWeek = delta <= 0
		}
		days := 7 - delta
		if withinWeek {
			days = -delta
		}

		hour, minute := f.ClockOrDefault(12, 0)
		base := time.Date(latestEffective.Year(), latestEffective.Month(), latestEffective.Day(),
			hour, minute, 0, 0, latestEffective.Location())
		next := base.AddDate(0, 0, days)
		return &next

	default:
		// Several occurrences per period: fixed nominal spacing, inflated
		// by half the shortfall when the last two events came in faster
		// than expected, which damps oscillation after early completions.
		minutesBetween := (24 * 60 * PeriodDays(f.Period)) / f.Amount

		if latest == nil {
			next := task.CreatedAt.Add(time.Duration(minutesBetween) * time.Minute)
			return &next
		}

		if second := task.SecondLatestEvent(); second != nil {
			gap := int(math.Floor(latest.EffectiveAt.Sub(second.EffectiveAt).Seconds() / 60))
			if gap < minutesBetween {
				minutesBetween += int(math.Ceil(float64(minutesBetween-gap) / 2))
			}
		}

		next := latest.EffectiveAt.Add(time.Duration(minutesBetween) * time.Minute)
		return &next
	}
}

// Package recur implements the recurrence engine: calendar period
// boundaries, next-occurrence estimation and task status computation.
// Everything here is pure; persistence and triggering live in the
// service layer.
package recur

import (
	"time"

	"recur-tracker/internal/model"
)

// periodDays is the rolling-window length of each period, used when a
// rule is anchored at task creation instead of a calendar boundary.
var periodDays = map[model.Period]int{
	model.PeriodDay:     1,
	model.PeriodWeek:    7,
	model.PeriodMonth:   30,
	model.PeriodQuarter: 91,
	model.PeriodYear:    365,
}

// PeriodDays returns the nominal length of p in days.
func PeriodDays(p model.Period) int {
	return periodDays[p]
}

// weekdayIndex maps a date to its Monday-based weekday index (0..6).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// EndOfPeriod returns the last minute (23:59) of the calendar period
// containing ref. Weeks start on Monday and end on Sunday.
func EndOfPeriod(p model.Period, ref time.Time) time.Time {
	switch p {
	case model.PeriodDay:
		return endOfDay(ref)
	case model.PeriodWeek:
		return endOfDay(ref).AddDate(0, 0, 6-weekdayIndex(ref))
	case model.PeriodMonth:
		// Day 0 of the next month is the last day of this one.
		return time.Date(ref.Year(), ref.Month()+1, 0, 23, 59, 0, 0, ref.Location())
	case model.PeriodQuarter:
		lastMonth := time.Month(((int(ref.Month())-1)/3)*3 + 3)
		return time.Date(ref.Year(), lastMonth+1, 0, 23, 59, 0, 0, ref.Location())
	case model.PeriodYear:
		return time.Date(ref.Year(), time.December, 31, 23, 59, 0, 0, ref.Location())
	}
	return endOfDay(ref)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FrequencyType says how a task recurs: on a single date, a cadence per
// period, or an amount of times within one period.
type FrequencyType string

const (
	FrequencyOn   FrequencyType = "on"
	FrequencyPer  FrequencyType = "per"
	FrequencyThis FrequencyType = "this"
)

// Period is a calendar unit used by per/this frequencies.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Weekday names a day of the week, Monday first.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdayIndex = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// WeekdayIndex returns the Monday-based index (0..6) of w, or -1 for an
// unknown name.
func WeekdayIndex(w Weekday) int {
	if idx, ok := weekdayIndex[w]; ok {
		return idx
	}
	return -1
}

// Frequency is the recurrence rule owned by exactly one task. Rows are
// immutable: an update replaces the whole row with a fresh one.
type Frequency struct {
	ID     uint `gorm:"primaryKey"`
	TaskID uint `gorm:"uniqueIndex"`

	Type   FrequencyType
	Period Period
	Amount int

	// UseCalendarPeriod applies to "this" rules only: true anchors the
	// window at the calendar boundary, false rolls it from task creation.
	UseCalendarPeriod bool

	OnceOnDate     *time.Time
	OncePerWeekday *Weekday
	OnceAtTime     *string // HH:MM
}

// IsOncePerDay reports a plain once-a-day cadence.
func (f Frequency) IsOncePerDay() bool {
	return f.Type == FrequencyPer && f.Period == PeriodDay && f.Amount == 1 && f.OncePerWeekday == nil
}

// IsOncePerWeekday reports a cadence pinned to one weekday per week.
func (f Frequency) IsOncePerWeekday() bool {
	return f.Type == FrequencyPer && f.OncePerWeekday != nil
}

// ClockOrDefault returns OnceAtTime as hour/minute, falling back to the
// given default when the time is absent or malformed.
func (f Frequency) ClockOrDefault(defHour, defMinute int) (int, int) {
	if f.OnceAtTime == nil {
		return defHour, defMinute
	}
	h, m, err := ParseClock(*f.OnceAtTime)
	if err != nil {
		return defHour, defMinute
	}
	return h, m
}

// ParseClock parses an HH:MM string.
func ParseClock(value string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

package service

import (
	"time"

	"recur-tracker/internal/model"
)

// FrequencyInput is a user-supplied recurrence rule, validated before it
// becomes an owned Frequency row.
type FrequencyInput struct {
	Type              model.FrequencyType
	Period            model.Period
	Amount            int
	UseCalendarPeriod bool
	OnceOnDate        *time.Time
	OncePerWeekday    *model.Weekday
	OnceAtTime        *string // HH:MM
}

// UntilInput is a user-supplied termination rule.
type UntilInput struct {
	Type   model.UntilType
	Amount int
	Date   *time.Time
}

func validateFrequency(in FrequencyInput) error {
	if in.Amount < 1 {
		return validationf("frequency amount must be at least 1")
	}

	if in.OnceAtTime != nil {
		if _, _, err := model.ParseClock(*in.OnceAtTime); err != nil {
			return validationf("invalid time of day: %v", err)
		}
	}
	if in.OncePerWeekday != nil && model.WeekdayIndex(*in.OncePerWeekday) < 0 {
		return validationf("unknown weekday %q", *in.OncePerWeekday)
	}

	switch in.Type {
	case model.FrequencyOn:
		if in.Period != "" {
			return validationf("period must not be set for a task on a specific date")
		}
		if in.Amount != 1 {
			return validationf("amount must be 1 when the task is on a specific date")
		}
		if in.OnceOnDate == nil {
			return validationf("the specific date must be set")
		}
		if in.OncePerWeekday != nil {
			return validationf("a weekday must not be set for a task on a specific date")
		}
	case model.FrequencyPer:
		if err := validatePeriod(in.Period); err != nil {
			return err
		}
		if in.Amount != 1 && (in.OnceAtTime != nil || in.OnceOnDate != nil || in.OncePerWeekday != nil) {
			return validationf("specific dates, times and weekdays are only supported once per period")
		}
		if in.OncePerWeekday != nil && in.Period != model.PeriodWeek {
			return validationf("a specific weekday requires a weekly period")
		}
	case model.FrequencyThis:
		if err := validatePeriod(in.Period); err != nil {
			return err
		}
		if in.OnceAtTime != nil || in.OnceOnDate != nil || in.OncePerWeekday != nil {
			return validationf("specific dates, times and weekdays cannot be combined with a per-period amount")
		}
	default:
		return validationf("unknown frequency type %q", in.Type)
	}
	return nil
}

func validatePeriod(p model.Period) error {
	if p == "" {
		return validationf("period must be set")
	}
	switch p {
	case model.PeriodDay, model.PeriodWeek, model.PeriodMonth, model.PeriodQuarter, model.PeriodYear:
		return nil
	}
	return validationf("unknown period %q", p)
}

func validateUntil(in UntilInput) error {
	switch in.Type {
	case model.UntilStopped, model.UntilCompleted:
		if in.Amount != 0 || in.Date != nil {
			return validationf("amount and date must be empty for a task that ends once %s", in.Type)
		}
	case model.UntilAmount:
		if in.Date != nil {
			return validationf("date must not be set when the task ends after an amount")
		}
		if in.Amount < 1 {
			return validationf("until amount must be set and greater than zero")
		}
	case model.UntilDate:
		if in.Amount != 0 {
			return validationf("amount must not be set when the task ends after a date")
		}
		if in.Date == nil {
			return validationf("until date must be set")
		}
	default:
		return validationf("unknown until type %q", in.Type)
	}
	return nil
}

func frequencyFromInput(in FrequencyInput) model.Frequency {
	return model.Frequency{
		Type:              in.Type,
		Period:            in.Period,
		Amount:            in.Amount,
		UseCalendarPeriod: in.UseCalendarPeriod,
		OnceOnDate:        in.OnceOnDate,
		OncePerWeekday:    in.OncePerWeekday,
		OnceAtTime:        in.OnceAtTime,
	}
}

func untilFromInput(in UntilInput) model.Until {
	return model.Until{
		Type:   in.Type,
		Amount: in.Amount,
		Date:   in.Date,
	}
}

package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"recur-tracker/internal/model"
)

func date(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, time.UTC)
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 1, PeriodDays(model.PeriodDay))
	assert.Equal(t, 7, PeriodDays(model.PeriodWeek))
	assert.Equal(t, 30, PeriodDays(model.PeriodMonth))
	assert.Equal(t, 91, PeriodDays(model.PeriodQuarter))
	assert.Equal(t, 365, PeriodDays(model.PeriodYear))
}

func TestEndOfPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period model.Period
		ref    time.Time
		want   time.Time
	}{
		{
			name:   "day ends same evening",
			period: model.PeriodDay,
			ref:    date(2024, time.March, 15, 10, 30),
			want:   date(2024, time.March, 15, 23, 59),
		},
		{
			name:   "week from wednesday ends on sunday",
			period: model.PeriodWeek,
			ref:    date(2024, time.March, 13, 9, 0),
			want:   date(2024, time.March, 17, 23, 59),
		},
		{
			name:   "week from monday ends on sunday",
			period: model.PeriodWeek,
			ref:    date(2024, time.March, 11, 0, 0),
			want:   date(2024, time.March, 17, 23, 59),
		},
		{
			name:   "week from sunday ends that day",
			period: model.PeriodWeek,
			ref:    date(2024, time.March, 17, 22, 0),
			want:   date(2024, time.March, 17, 23, 59),
		},
		{
			name:   "leap february",
			period: model.PeriodMonth,
			ref:    date(2024, time.February, 10, 12, 0),
			want:   date(2024, time.February, 29, 23, 59),
		},
		{
			name:   "non-leap february",
			period: model.PeriodMonth,
			ref:    date(2023, time.February, 10, 12, 0),
			want:   date(2023, time.February, 28, 23, 59),
		},
		{
			name:   "december stays within the year",
			period: model.PeriodMonth,
			ref:    date(2024, time.December, 5, 0, 0),
			want:   date(2024, time.December, 31, 23, 59),
		},
		{
			name:   "third quarter",
			period: model.PeriodQuarter,
			ref:    date(2024, time.July, 1, 8, 0),
			want:   date(2024, time.September, 30, 23, 59),
		},
		{
			name:   "first quarter",
			period: model.PeriodQuarter,
			ref:    date(2024, time.February, 14, 8, 0),
			want:   date(2024, time.March, 31, 23, 59),
		},
		{
			name:   "fourth quarter",
			period: model.PeriodQuarter,
			ref:    date(2024, time.December, 5, 8, 0),
			want:   date(2024, time.December, 31, 23, 59),
		},
		{
			name:   "year",
			period: model.PeriodYear,
			ref:    date(2024, time.July, 1, 12, 0),
			want:   date(2024, time.December, 31, 23, 59),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EndOfPeriod(tt.period, tt.ref))
		})
	}
}

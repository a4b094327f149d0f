package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeekWindow_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		base  Date
		first time.Weekday
		from  Date
		to    Date
	}{
		{
			name:  "Mid-week Thursday, Monday start",
			base:  Date{2024, time.February, 15},
			first: time.Monday,
			from:  Date{2024, time.February, 12},
			to:    Date{2024, time.February, 18},
		},
		{
			name:  "Mid-week Thursday, Sunday start",
			base:  Date{2024, time.February, 15},
			first: time.Sunday,
			from:  Date{2024, time.February, 11},
			to:    Date{2024, time.February, 17},
		},
		{
			name:  "Base is the first day of the week",
			base:  Date{2024, time.February, 12},
			first: time.Monday,
			from:  Date{2024, time.February, 12},
			to:    Date{2024, time.February, 18},
		},
		{
			name:  "Base is the last day of the week",
			base:  Date{2024, time.February, 18},
			first: time.Monday,
			from:  Date{2024, time.February, 12},
			to:    Date{2024, time.February, 18},
		},
		{
			name:  "Crosses year boundary",
			base:  Date{2024, time.December, 31},
			first: time.Monday,
			from:  Date{2024, time.December, 30},
			to:    Date{2025, time.January, 5},
		},
		{
			name:  "Crosses leap day",
			base:  Date{2024, time.March, 1},
			first: time.Saturday,
			from:  Date{2024, time.February, 24},
			to:    Date{2024, time.March, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := BuildWeekWindow(tt.base, tt.first)
			require.Len(t, week, 7)
			assert.Equal(t, tt.from, week[0])
			assert.Equal(t, tt.to, week[6])
		})
	}
}

// TestBuildWeekWindow_Properties checks every day of a leap year against every first weekday.
func TestBuildWeekWindow_Properties(t *testing.T) {
	day := Date{2024, time.January, 1}
	for ; day.Year == 2024; day = day.AddDays(1) {
		for first := time.Sunday; first <= time.Saturday; first++ {
			week := BuildWeekWindow(day, first)
			require.Len(t, week, 7)
			require.Equal(t, first, week[0].Weekday())
			require.Contains(t, week, day)
			for i := 1; i < len(week); i++ {
				require.Equal(t, week[i-1].AddDays(1), week[i])
			}
		}
	}
}

func TestBuildWeekWindow_WeekdayNormalization(t *testing.T) {
	base := Date{2024, time.February, 15}
	assert.Equal(t, BuildWeekWindow(base, time.Monday), BuildWeekWindow(base, 8))
	assert.Equal(t, BuildWeekWindow(base, time.Saturday), BuildWeekWindow(base, -1))
}

func TestWeekdayOrder(t *testing.T) {
	assert.Equal(t,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday},
		WeekdayOrder(time.Monday))
	assert.Equal(t,
		[]time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
		WeekdayOrder(time.Sunday))

	// Column order must agree with the month grid.
	cells, err := BuildMonthGrid(YearMonth{Year: 2024, Month: time.June}, time.Thursday)
	require.NoError(t, err)
	for i, wd := range WeekdayOrder(time.Thursday) {
		assert.Equal(t, wd, cells[i].Date.Weekday())
	}
}

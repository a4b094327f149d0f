package engine

import (
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// DayCell is one position of the month grid.
type DayCell struct {
	Date Date

	// InMonth is true for days of the requested month and false for the
	// leading/trailing padding borrowed from the adjacent months.
	InMonth bool
}

// BuildMonthGrid lays out ym as rows of 7 cells whose first column is
// firstDayOfWeek. Days of the previous and next month pad the first and last
// rows, so the result length is always a multiple of 7 and the dates are
// contiguous and strictly ascending.
func BuildMonthGrid(ym YearMonth, firstDayOfWeek time.Weekday) ([]DayCell, error) {
	if err := ym.Validate(); err != nil {
		return nil, err
	}
	first := normalizeWeekday(firstDayOfWeek)

	firstOfMonth := ym.First()
	days := ym.Days()
	leading := columnOf(firstOfMonth.Weekday(), first)

	total := leading + days
	trailing := (config.DaysPerWeek - total%config.DaysPerWeek) % config.DaysPerWeek
	cells := make([]DayCell, 0, total+trailing)

	cursor := firstOfMonth.AddDays(-leading)
	for i := 0; i < leading; i++ {
		cells = append(cells, DayCell{Date: cursor})
		cursor = cursor.AddDays(1)
	}

	for day := 1; day <= days; day++ {
		cells = append(cells, DayCell{
			Date:    Date{Year: ym.Year, Month: ym.Month, Day: day},
			InMonth: true,
		})
	}

	tail := ym.Last().AddDays(1)
	for i := 0; i < trailing; i++ {
		cells = append(cells, DayCell{Date: tail})
		tail = tail.AddDays(1)
	}

	return cells, nil
}

// columnOf returns the 0-based grid column of weekday d when the week starts on first.
func columnOf(d, first time.Weekday) int {
	return int((d - first + config.DaysPerWeek) % config.DaysPerWeek)
}

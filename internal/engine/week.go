package engine

import (
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// BuildWeekWindow returns the 7 consecutive dates of the week containing base,
// starting on firstDayOfWeek. It never fails: firstDayOfWeek is folded into
// 0..6 first.
func BuildWeekWindow(base Date, firstDayOfWeek time.Weekday) []Date {
	first := normalizeWeekday(firstDayOfWeek)
	start := base.AddDays(-columnOf(base.Weekday(), first))

	week := make([]Date, config.DaysPerWeek)
	for i := range week {
		week[i] = start.AddDays(i)
	}
	return week
}

// WeekdayOrder returns the weekdays in grid column order.
func WeekdayOrder(firstDayOfWeek time.Weekday) []time.Weekday {
	first := normalizeWeekday(firstDayOfWeek)
	order := make([]time.Weekday, config.DaysPerWeek)
	for i := range order {
		order[i] = (first + time.Weekday(i)) % config.DaysPerWeek
	}
	return order
}

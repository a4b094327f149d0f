package engine

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// ErrInvalidArgument is returned for out-of-range calendar values and blank
// event titles. Callers are expected to validate before calling.
var ErrInvalidArgument = errors.New(config.ErrInvalidArgument)

// Date is a local calendar date without time of day or zone.
// It is comparable and can be used as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates and returns the given calendar date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	ym, err := NewYearMonth(year, month)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > ym.Days() {
		return Date{}, fmt.Errorf("%w: %s: %04d-%02d-%02d", ErrInvalidArgument, config.ErrDayRange, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Validate reports whether d names an existing day.
func (d Date) Validate() error {
	_, err := NewDate(d.Year, d.Month, d.Day)
	return err
}

// Time returns midnight UTC of d. UTC keeps day arithmetic free of DST gaps.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// YearMonth returns the month containing d.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmp.Compare(d.Year, o.Year)
	case d.Month != o.Month:
		return cmp.Compare(d.Month, o.Month)
	default:
		return cmp.Compare(d.Day, o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth validates year (config.MinYear..config.MaxYear) and month (1..12).
func NewYearMonth(year int, month time.Month) (YearMonth, error) {
	if year < config.MinYear || year > config.MaxYear {
		return YearMonth{}, fmt.Errorf("%w: %s: %d", ErrInvalidArgument, config.ErrYearRange, year)
	}
	if month < time.January || month > time.December {
		return YearMonth{}, fmt.Errorf("%w: %s: %d", ErrInvalidArgument, config.ErrMonthRange, month)
	}
	return YearMonth{Year: year, Month: month}, nil
}

// Validate reports whether ym is within the supported range.
func (ym YearMonth) Validate() error {
	_, err := NewYearMonth(ym.Year, ym.Month)
	return err
}

// First returns the first day of the month.
func (ym YearMonth) First() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: 1}
}

// Last returns the last day of the month.
func (ym YearMonth) Last() Date {
	return Date{Year: ym.Year, Month: ym.Month, Day: ym.Days()}
}

// Days returns the number of days in the month, leap years included.
func (ym YearMonth) Days() int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths returns ym shifted by n months.
func (ym YearMonth) AddMonths(n int) YearMonth {
	t := time.Date(ym.Year, ym.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether d falls inside ym.
func (ym YearMonth) Contains(d Date) bool {
	return d.Year == ym.Year && d.Month == ym.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// normalizeWeekday folds any integer weekday into 0..6.
func normalizeWeekday(d time.Weekday) time.Weekday {
	return ((d % config.DaysPerWeek) + config.DaysPerWeek) % config.DaysPerWeek
}

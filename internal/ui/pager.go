package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// Pager models the horizontal month pager: TotalYears*12 pages, page 0 being
// January of StartYear. The current page always stays in range.
type Pager struct {
	StartYear  int
	TotalYears int
	page       int
}

// NewPager returns a pager positioned on its first page.
func NewPager(startYear, totalYears int) *Pager {
	return &Pager{StartYear: startYear, TotalYears: totalYears}
}

// Count returns the number of pages.
func (p *Pager) Count() int {
	return p.TotalYears * config.MonthsInYear
}

// Page returns the current page index.
func (p *Pager) Page() int {
	return p.page
}

// Current returns the month shown on the current page.
func (p *Pager) Current() engine.YearMonth {
	return p.YearMonthAt(p.page)
}

// YearMonthAt maps a page index to its month. The index is not range-checked.
func (p *Pager) YearMonthAt(page int) engine.YearMonth {
	return engine.YearMonth{Year: p.StartYear, Month: time.January}.AddMonths(page)
}

// PageOf returns the page showing ym, or false when ym is outside the pager.
func (p *Pager) PageOf(ym engine.YearMonth) (int, bool) {
	if ym.Month < time.January || ym.Month > time.December {
		return 0, false
	}
	page := (ym.Year-p.StartYear)*config.MonthsInYear + int(ym.Month-time.January)
	if page < 0 || page >= p.Count() {
		return 0, false
	}
	return page, true
}

// Show moves to ym. It reports false, leaving the pager unchanged, when ym is out of range.
func (p *Pager) Show(ym engine.YearMonth) bool {
	page, ok := p.PageOf(ym)
	if ok {
		p.page = page
	}
	return ok
}

// ShowNearest moves to ym, or to the closest end of the pager when ym is out of range.
func (p *Pager) ShowNearest(ym engine.YearMonth) {
	if p.Show(ym) {
		return
	}
	if ym.Year < p.StartYear {
		p.page = 0
	} else {
		p.page = p.Count() - 1
	}
}

// Shift moves by n pages, clamped to the first and last page.
func (p *Pager) Shift(n int) {
	p.page = max(0, min(p.page+n, p.Count()-1))
}

// Next moves one month forward, stopping at the last page.
func (p *Pager) Next() { p.Shift(1) }

// Prev moves one month back, stopping at the first page.
func (p *Pager) Prev() { p.Shift(-1) }

// Jump parses free-form year and month text from the jump dialog.
// Text that is not a number falls back to today's year or month. A result
// outside the pager is ignored and Jump reports false.
func (p *Pager) Jump(yearText, monthText string, today engine.Date) bool {
	year, err := strconv.Atoi(strings.TrimSpace(yearText))
	if err != nil {
		year = today.Year
	}
	month := today.Month
	if m, err := strconv.Atoi(strings.TrimSpace(monthText)); err == nil {
		month = time.Month(m)
	}
	return p.Show(engine.YearMonth{Year: year, Month: month})
}

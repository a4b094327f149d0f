package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// ViewMode is the calendar layout shown in the main window.
type ViewMode int

const (
	ViewYear ViewMode = iota
	ViewMonth
	ViewWeek
)

// String returns the mode name used in logs.
func (m ViewMode) String() string {
	switch m {
	case ViewYear:
		return "year"
	case ViewWeek:
		return "week"
	default:
		return "month"
	}
}

// calendarView holds the main window widgets rebuilt on every refresh.
type calendarView struct {
	title   *widget.Label
	body    *fyne.Container
	menuBtn *widget.Button

	// cells of the last render, in grid order; kept for tests.
	cells []*calendarCell
}

// ShowMainWindow creates the calendar window on first use, then focuses it.
func (app *CalendarApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyAppTitle))
	app.Window = w
	w.SetContent(app.buildMainContent())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	// Closing the window keeps the app alive in the tray; the next open rebuilds it.
	w.SetOnClosed(func() {
		app.Window = nil
		app.view = nil
	})
	w.Show()
}

// buildMainContent assembles header and body, then renders the current mode.
func (app *CalendarApp) buildMainContent() fyne.CanvasObject {
	v := &calendarView{
		title: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		body:  container.NewStack(),
	}
	app.view = v

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { app.navigate(-1) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { app.navigate(1) })
	v.menuBtn = widget.NewButtonWithIcon("", theme.MenuIcon(), nil)
	v.menuBtn.OnTapped = app.showViewMenu

	header := container.NewBorder(nil, nil,
		prev,
		container.NewHBox(next, v.menuBtn),
		v.title,
	)

	app.refreshViews()
	return container.NewBorder(header, nil, nil, nil, v.body)
}

// showViewMenu pops the mode/actions menu under the menu button.
func (app *CalendarApp) showViewMenu() {
	if app.Window == nil || app.view == nil {
		return
	}
	menu := fyne.NewMenu(app.GetMsg(config.TKeyMenuViews),
		fyne.NewMenuItem(app.GetMsg(config.TKeyViewYear), func() { app.SetMode(ViewYear) }),
		fyne.NewMenuItem(app.GetMsg(config.TKeyViewMonth), func() { app.SetMode(ViewMonth) }),
		fyne.NewMenuItem(app.GetMsg(config.TKeyViewWeek), func() { app.SetMode(ViewWeek) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuToday), func() {
			app.GoToToday()
			app.refreshViews()
		}),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuJump), app.showJumpDialog),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow),
	)

	// Anchor the popup just below the button.
	btn := app.view.menuBtn
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(btn).AddXY(0, btn.Size().Height)
	widget.ShowPopUpMenuAtPosition(menu, app.Window.Canvas(), pos)
}

// SetMode switches the layout. Week mode follows the selected date.
func (app *CalendarApp) SetMode(mode ViewMode) {
	app.Mode = mode
	if mode == ViewWeek && !app.Pager.Current().Contains(app.Selected) {
		app.Selected = app.Pager.Current().First()
	}
	slog.Debug(config.MsgViewChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyView, mode.String())
	app.refreshViews()
}

// navigate steps one unit of the current mode: a year, a month or a week.
func (app *CalendarApp) navigate(delta int) {
	switch app.Mode {
	case ViewYear:
		app.Pager.Shift(delta * config.MonthsInYear)
	case ViewWeek:
		// Weeks move the selection; the pager follows its month.
		next := app.Selected.AddDays(delta * config.DaysPerWeek)
		if _, ok := app.Pager.PageOf(next.YearMonth()); !ok {
			return
		}
		app.Selected = next
		app.Pager.Show(next.YearMonth())
	default:
		app.Pager.Shift(delta)
	}

	slog.Debug(config.MsgPageChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPage, app.Pager.Page())
	app.refreshViews()
}

// refreshViews re-renders the body for the current mode. It is a no-op
// until the main window exists.
func (app *CalendarApp) refreshViews() {
	v := app.view
	if v == nil {
		return
	}

	var content fyne.CanvasObject
	switch app.Mode {
	case ViewYear:
		content = app.renderYear(v)
	case ViewWeek:
		content = app.renderWeek(v)
	default:
		content = app.renderMonth(v)
	}

	// Swap the whole body: each mode has its own grid shape.
	v.title.SetText(app.titleText())
	v.body.Objects = []fyne.CanvasObject{content}
	v.body.Refresh()
}

// titleText formats the header for the current mode.
func (app *CalendarApp) titleText() string {
	switch app.Mode {
	case ViewYear:
		return app.Msg(config.TKeyTitleYear, map[string]any{"Year": app.Pager.Current().Year})
	case ViewWeek:
		return app.Msg(config.TKeyTitleWeek, map[string]any{
			"Year":  app.Selected.Year,
			"Month": int(app.Selected.Month),
		})
	default:
		ym := app.Pager.Current()
		return app.Msg(config.TKeyTitleMonth, map[string]any{"Year": ym.Year, "Month": int(ym.Month)})
	}
}

// cellStyleFor ranks selection above today above padding.
func (app *CalendarApp) cellStyleFor(d engine.Date, inMonth bool, today engine.Date) cellStyle {
	switch {
	case d == app.Selected:
		return cellSelected
	case d == today:
		return cellToday
	case !inMonth:
		return cellMuted
	}
	return cellNormal
}

// weekdayHeader renders the localized weekday names in column order.
func (app *CalendarApp) weekdayHeader() fyne.CanvasObject {
	labels := make([]fyne.CanvasObject, 0, config.DaysPerWeek)
	for _, wd := range engine.WeekdayOrder(app.WeekStart()) {
		l := widget.NewLabelWithStyle(app.weekdayLabel(wd), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		if wd == time.Saturday || wd == time.Sunday {
			l.Importance = widget.LowImportance
		}
		labels = append(labels, l)
	}
	return container.NewGridWithColumns(config.DaysPerWeek, labels...)
}

// -----------------------------------------------------------------------------
// Year
// -----------------------------------------------------------------------------

// renderYear lays out the 12 months of the pager year as tiles. A tile only
// tells whether its month has events, so it carries one bar in the theme color.
func (app *CalendarApp) renderYear(v *calendarView) fyne.CanvasObject {
	year := app.Pager.Current().Year
	today := app.Today()
	v.cells = nil

	tiles := make([]fyne.CanvasObject, 0, config.MonthsInYear)
	for m := time.January; m <= time.December; m++ {
		ym := engine.YearMonth{Year: year, Month: m}

		var bars []engine.Color
		if app.Store.HasEventsInMonth(year, m) {
			bars = []engine.Color{engine.ColorOf(theme.Color(theme.ColorNamePrimary))}
		}

		style := cellNormal
		if today.YearMonth() == ym {
			style = cellToday
		}

		tile := newCalendarCell(
			app.Msg(config.TKeyMonthTile, map[string]any{"Month": int(m)}),
			bars, style, yearBar,
			func() {
				app.Pager.Show(ym)
				app.SetMode(ViewMonth)
			})
		v.cells = append(v.cells, tile)
		tiles = append(tiles, tile)
	}
	return container.NewGridWithColumns(config.YearGridColumns, tiles...)
}

// -----------------------------------------------------------------------------
// Month
// -----------------------------------------------------------------------------

// renderMonth lays out the padded month grid of the pager month.
// Every cell, padding included, shows the bars of its own date.
func (app *CalendarApp) renderMonth(v *calendarView) fyne.CanvasObject {
	ym := app.Pager.Current()
	v.cells = nil

	grid, err := engine.BuildMonthGrid(ym, app.WeekStart())
	if err != nil {
		// The pager never yields an invalid month; keep the view usable anyway.
		slog.Error(err.Error(), config.LogKeyComponent, config.CompUI)
		return widget.NewLabel(ym.String())
	}

	// One locked read for the whole month instead of one per cell.
	events, _ := app.Store.EventsInMonth(ym.Year, ym.Month)
	today := app.Today()

	cells := make([]fyne.CanvasObject, 0, len(grid))
	for _, dc := range grid {
		d := dc.Date
		// Padding days belong to the adjacent months and are looked up one by one.
		dayEvents := events[d]
		if !dc.InMonth {
			dayEvents = app.Store.EventsOn(d)
		}
		colors := eventColors(dayEvents)
		cell := newCalendarCell(strconv.Itoa(d.Day), colors,
			app.cellStyleFor(d, dc.InMonth, today), monthBar,
			func() { app.onDayTapped(d) })
		v.cells = append(v.cells, cell)
		cells = append(cells, cell)
	}

	return container.NewBorder(app.weekdayHeader(), nil, nil, nil,
		container.NewGridWithColumns(config.DaysPerWeek, cells...))
}

// onDayTapped selects d and offers to add an event on it.
func (app *CalendarApp) onDayTapped(d engine.Date) {
	app.Selected = d
	app.refreshViews()
	app.showAddEventDialog(d)
}

// -----------------------------------------------------------------------------
// Week
// -----------------------------------------------------------------------------

// renderWeek lays out the seven days around the selected date as large boxes.
func (app *CalendarApp) renderWeek(v *calendarView) fyne.CanvasObject {
	v.cells = nil
	today := app.Today()

	days := engine.BuildWeekWindow(app.Selected, app.WeekStart())
	boxes := make([]fyne.CanvasObject, 0, len(days))
	for _, d := range days {
		caption := fmtWeekBox(d)
		cell := newCalendarCell(caption, eventColors(app.Store.EventsOn(d)),
			app.cellStyleFor(d, true, today), weekBar,
			func() { app.onWeekBoxTapped(d) })
		v.cells = append(v.cells, cell)
		boxes = append(boxes, cell)
	}

	return container.NewBorder(app.weekdayHeader(), nil, nil, nil,
		container.NewGridWithColumns(config.DaysPerWeek, boxes...))
}

// onWeekBoxTapped selects d; tapping the already selected day adds an event.
func (app *CalendarApp) onWeekBoxTapped(d engine.Date) {
	if d == app.Selected {
		app.showAddEventDialog(d)
		return
	}
	app.Selected = d
	app.refreshViews()
}

// fmtWeekBox captions a week box as month/day, e.g. "2/15".
func fmtWeekBox(d engine.Date) string {
	return fmt.Sprintf(config.WeekBoxFormat, int(d.Month), d.Day)
}

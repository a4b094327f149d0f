package ui

import (
	"errors"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// paletteColors returns the swatches offered by the add-event dialog:
// the theme primary color first, then the fixed palette.
func paletteColors() []engine.Color {
	out := []engine.Color{engine.ColorOf(theme.Color(theme.ColorNamePrimary))}
	for _, argb := range config.EventPalette {
		out = append(out, engine.Color(argb))
	}
	return out
}

// eventForm is the state of one add-event dialog.
type eventForm struct {
	title    *widget.Entry
	swatches []*colorSwatch
	custom   *colorSwatch
	chosen   engine.Color
}

// choose marks c as the picked color and updates swatch outlines.
func (f *eventForm) choose(c engine.Color) {
	f.chosen = c
	for _, s := range f.swatches {
		s.SetSelected(s.Color == c)
	}
}

// newEventForm builds the title entry and the palette row.
func (app *CalendarApp) newEventForm() *eventForm {
	f := &eventForm{title: widget.NewEntry()}

	// The form disables its confirm button while the validator fails.
	f.title.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(app.GetMsg(config.TKeyErrTitleReq))
		}
		return nil
	}

	for _, c := range paletteColors() {
		f.swatches = append(f.swatches, newColorSwatch(c, f.choose))
	}
	// Theme primary is preselected.
	f.choose(f.swatches[0].Color)
	return f
}

// showAddEventDialog asks for a title and color, then adds the event on date.
func (app *CalendarApp) showAddEventDialog(date engine.Date) {
	if app.Window == nil {
		return
	}
	f := app.newEventForm()

	// The custom swatch shows the last color picked with "More...".
	f.custom = newColorSwatch(f.chosen, f.choose)
	f.custom.Hide()
	f.swatches = append(f.swatches, f.custom)

	// --- Color Picker ---
	more := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnMore), theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker(app.GetMsg(config.TKeyLblColor), "", func(c color.Color) {
			f.custom.Color = engine.ColorOf(c)
			f.custom.Show()
			f.custom.Refresh()
			f.choose(f.custom.Color)
		}, app.Window)
		picker.Advanced = true
		picker.Show()
	})

	// --- Form ---
	row := make([]fyne.CanvasObject, 0, len(f.swatches)+1)
	for _, s := range f.swatches {
		row = append(row, s)
	}
	row = append(row, more)

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblTitle), f.title),
		widget.NewFormItem(app.GetMsg(config.TKeyLblColor), container.NewHBox(row...)),
	}

	title := app.Msg(config.TKeyAddTitle, map[string]any{
		"Year":  date.Year,
		"Month": int(date.Month),
		"Day":   date.Day,
	})

	d := dialog.NewForm(title, app.GetMsg(config.TKeyBtnAdd), app.GetMsg(config.TKeyBtnCancel), items,
		func(ok bool) {
			if !ok {
				return
			}
			// The store trims and revalidates; its error is shown as is.
			if _, err := app.AddEvent(date, f.title.Text, f.chosen); err != nil {
				dialog.ShowError(err, app.Window)
			}
		}, app.Window)
	d.Show()
	app.Window.Canvas().Focus(f.title)
}

// showJumpDialog asks for a year and month and moves the pager there.
func (app *CalendarApp) showJumpDialog() {
	if app.Window == nil {
		return
	}
	// Both fields start on today so a single edit is enough.
	today := app.Today()

	yearEntry := NewNumericalEntryWithLimit(len(strconv.Itoa(config.MaxYear)))
	yearEntry.SetText(strconv.Itoa(today.Year))
	monthEntry := NewNumericalEntryWithLimit(2)
	monthEntry.SetText(strconv.Itoa(int(today.Month)))

	items := []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), yearEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), monthEntry),
	}

	dialog.ShowForm(app.GetMsg(config.TKeyJumpTitle), app.GetMsg(config.TKeyBtnGo), app.GetMsg(config.TKeyBtnCancel), items,
		func(ok bool) {
			if ok {
				app.JumpTo(yearEntry.Text, monthEntry.Text)
			}
		}, app.Window)
}

// JumpTo moves the month pager to the typed year and month.
// Unparsable text means "today's" value; an out-of-range target is ignored.
func (app *CalendarApp) JumpTo(yearText, monthText string) bool {
	if !app.Pager.Jump(yearText, monthText, app.Today()) {
		slog.Info(config.MsgJumpIgnored,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyYear, yearText,
			config.LogKeyMonth, monthText)
		return false
	}

	// Keep the week view on the month the user asked for.
	ym := app.Pager.Current()
	if !ym.Contains(app.Selected) {
		app.Selected = ym.First()
	}
	if app.Mode == ViewYear {
		app.Mode = ViewMonth
	}
	slog.Debug(config.MsgPageChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyPage, app.Pager.Page())
	app.refreshViews()
	return true
}

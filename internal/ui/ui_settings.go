package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// settingsWidgets keeps the inputs read back by saveSettings.
type settingsWidgets struct {
	langSelect *widget.Select
	weekSelect *widget.Select
	entryPort  *NumericalEntry
	checkFeed  *widget.Check
	feedURL    *widget.Label

	// weekdays maps the localized labels of weekSelect back to weekdays.
	weekdays map[string]time.Weekday
}

// portValidator runs config.ValidatePort and turns its failure into the
// localized message shown under the port entry.
func (app *CalendarApp) portValidator(s string) error {
	err := config.ValidatePort(s)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, config.ErrPortMissing):
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	case errors.Is(err, config.ErrPortNotNumeric):
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	default:
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
}

// ShowSettingsWindow opens the settings window, or focuses it if already open.
func (app *CalendarApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocused, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// --- 1. General Form ---
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblWeekStart), sw.weekSelect),
		itemPort,
		widget.NewFormItem("", sw.checkFeed),
	)
	card := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", container.NewVBox(form, sw.feedURL))

	// --- 2. Actions ---
	// The port is the only field that can be invalid; the selects and the
	// check box always hold a usable value.
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), w.Close)

	// --- 3. Footer & Window ---
	footer := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		card,
		container.NewGridWithColumns(config.LayoutColumnsPair, btnCancel, btnSave),
		footer,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true) // Height follows the form; no need to resize by hand.
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// newSettingsWidgets builds the inputs prefilled from the effective settings.
func (app *CalendarApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{weekdays: make(map[string]time.Weekday, config.DaysPerWeek)}

	// --- Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, app.Settings.Language))

	// --- Week Start ---
	// Offer weekdays starting from Monday, labelled in the current language.
	var labels []string
	for _, wd := range engine.WeekdayOrder(time.Monday) {
		label := app.weekdayLabel(wd)
		sw.weekdays[label] = wd
		labels = append(labels, label)
	}
	sw.weekSelect = widget.NewSelect(labels, nil)
	sw.weekSelect.SetSelected(app.weekdayLabel(app.WeekStart()))

	// --- Feed ---
	// Port: digits only, capped at the length of MaxPort, range checked on save.
	sw.entryPort = NewNumericalEntryWithLimit(len(strconv.Itoa(config.MaxPort)))
	sw.entryPort.SetText(app.ServerPort())
	sw.entryPort.Validator = app.portValidator

	sw.feedURL = widget.NewLabel("")
	sw.feedURL.Truncation = fyne.TextTruncateEllipsis
	// updateURL previews the subscription address while the user types.
	// The URL is hidden when the feed is switched off.
	updateURL := func() {
		if !sw.checkFeed.Checked {
			sw.feedURL.SetText("")
			return
		}
		url := fmt.Sprintf(config.FeedURLFormat, config.LocalhostBindAddr, sw.entryPort.Text)
		sw.feedURL.SetText(app.Msg(config.TKeyLblFeedURL, map[string]any{"URL": url}))
	}

	sw.checkFeed = widget.NewCheck(app.GetMsg(config.TKeyLblFeed), func(bool) { updateURL() })
	sw.checkFeed.SetChecked(app.FeedEnabled())
	sw.entryPort.OnChanged = func(string) { updateURL() }
	updateURL()

	return sw
}

// saveSettings persists the widgets and applies them to every open surface.
func (app *CalendarApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave, config.LogKeyComponent, config.CompUISet)

	// Snapshot the effective feed settings to know whether the server must restart.
	oldPort, oldFeed := app.ServerPort(), app.FeedEnabled()

	// 1. Persist Preferences

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	if wd, ok := sw.weekdays[sw.weekSelect.Selected]; ok {
		app.Preferences.SetString(config.PrefWeekStart, config.WeekdayName(wd))
	}
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}
	app.Preferences.SetBool(config.PrefFeedEnabled, sw.checkFeed.Checked)

	slog.Debug(config.MsgConfigLoaded,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, sw.langSelect.Selected,
		config.LogKeyWeekStart, app.WeekStart().String(),
		config.LogKeyPort, app.ServerPort())

	// 2. Apply to Every Open Surface
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyAppTitle))
	}
	app.refreshViews()

	// 3. Feed Server
	// Restarting drops the old listener; the new one is republished at once.
	if app.ServerPort() != oldPort || app.FeedEnabled() != oldFeed {
		app.restartFeed()
	}
}

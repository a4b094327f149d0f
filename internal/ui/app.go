package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/server"
)

//go:embed Icon.png
var appIconData []byte

// CalendarApp owns the session state (event store, pager, selection) and the
// windows, tray and background services built around it.
//
// All fields below are touched on the Fyne goroutine only; the scheduler and
// the feed server hand work back through fyne.Do.
type CalendarApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Settings *config.Settings
	Store    *engine.Store
	Pager    *Pager
	Clock    engine.Clock

	Mode     ViewMode
	Selected engine.Date

	Server       *server.FeedServer
	serverCancel context.CancelFunc
	scheduler    *cron.Cron

	Tray             desktop.App
	Menu             *fyne.Menu
	TrayStatusItem   *fyne.MenuItem
	TrayOpenItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	settingsWindow fyne.Window
	view           *calendarView
}

// NewCalendarApp wires the controller. srv may be nil when the feed is disabled.
func NewCalendarApp(a fyne.App, ctx context.Context, settings *config.Settings, srv *server.FeedServer) *CalendarApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))
	if settings == nil {
		settings = config.DefaultSettings()
	}

	app := &CalendarApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Settings:           settings,
		Store:              engine.NewStore(),
		Pager:              NewPager(settings.StartYear, settings.TotalYears),
		Clock:              engine.RealClock{},
		Mode:               ViewMonth,
		Server:             srv,
		SupportedLanguages: config.SupportedLanguages,
	}
	app.GoToToday()
	return app
}

// Run starts the feed, tray and scheduler, then blocks in the Fyne event loop.
func (app *CalendarApp) Run() {
	// Translations first: every label built below depends on them.
	app.SetupI18n()
	app.startFeed()

	// System tray is optional (not available on mobile or some Linux desktops).

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	if err := app.startScheduler(); err != nil {
		slog.Error(config.ErrSchedule,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err)
	}

	app.ShowMainWindow()
	app.updateTrayStatus()

	// Blocks until the application quits.
	app.App.Run()
}

// Today returns the current local date according to the injected clock.
func (app *CalendarApp) Today() engine.Date {
	return engine.Today(app.Clock)
}

// GoToToday selects today and moves the pager to its month (or the nearest page).
func (app *CalendarApp) GoToToday() {
	today := app.Today()
	app.Selected = today
	app.Pager.ShowNearest(today.YearMonth())
}

// WeekStart returns the first grid column: the saved preference, else the config file.
func (app *CalendarApp) WeekStart() time.Weekday {
	name := app.Preferences.StringWithFallback(config.PrefWeekStart, app.Settings.WeekStart)
	if d, err := config.ParseWeekday(name); err == nil {
		return d
	}
	return app.Settings.Weekday()
}

// FeedEnabled reports whether the ICS feed should be served.
func (app *CalendarApp) FeedEnabled() bool {
	return app.Preferences.BoolWithFallback(config.PrefFeedEnabled, app.Settings.Feed())
}

// ServerPort returns the configured feed port.
func (app *CalendarApp) ServerPort() string {
	return app.Preferences.StringWithFallback(config.PrefServerPort, app.Settings.ServerPort)
}

// AddEvent stores a new event, selects its date and refreshes every
// dependent surface (views, feed, tray).
func (app *CalendarApp) AddEvent(date engine.Date, title string, c engine.Color) (engine.Event, error) {
	ev, err := app.Store.AddEvent(date, title, c)
	if err != nil {
		slog.Warn(config.ErrAddEvent,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyDate, date.String(),
			config.LogKeyError, err)
		return engine.Event{}, err
	}

	// Follow the new event: it may sit on a padding day of another month.
	app.Selected = date
	app.Pager.Show(date.YearMonth())
	app.refreshViews()

	// Subscribers and the tray only see the store through these two.
	app.publishFeed()
	app.updateTrayStatus()
	return ev, nil
}

// -----------------------------------------------------------------------------
// Feed
// -----------------------------------------------------------------------------

// startFeed launches the ICS server in the background unless disabled.
func (app *CalendarApp) startFeed() {
	if !app.FeedEnabled() {
		slog.Info(config.MsgFeedDisabled, config.LogKeyComponent, config.CompUI)
		return
	}
	if app.Server == nil {
		app.Server = server.NewFeedServer(app.ServerPort())
	}

	// Child context so the settings window can restart the server alone.
	ctx, cancel := context.WithCancel(app.Ctx)
	app.serverCancel = cancel
	srv := app.Server

	// Publish before listening so the first request never sees a 503.
	app.publishFeed()

	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyPort, srv.Port,
				config.LogKeyError, err)

			// Most likely the port is taken by another instance.
			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, srv.Port)))
		}
	}()
}

// stopFeed cancels the running server, if any.
func (app *CalendarApp) stopFeed() {
	if app.serverCancel != nil {
		app.serverCancel()
		app.serverCancel = nil
	}
	app.Server = nil
}

// restartFeed applies a changed port or enable flag.
func (app *CalendarApp) restartFeed() {
	app.stopFeed()
	app.startFeed()
}

// publishFeed re-renders the store into the served feed.
func (app *CalendarApp) publishFeed() {
	if app.Server == nil {
		return
	}
	if err := app.Server.Publish(app.Store.Events(), app.Clock.Now()); err != nil {
		slog.Error(config.ErrPublish,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// -----------------------------------------------------------------------------
// Scheduler
// -----------------------------------------------------------------------------

// startScheduler registers the midnight job and stops it with the app context.
func (app *CalendarApp) startScheduler() error {
	c := cron.New()
	if _, err := c.AddFunc(config.CronMidnight, func() {
		fyne.Do(app.onDayChanged)
	}); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSchedule, err)
	}

	app.scheduler = c
	c.Start()
	slog.Info(config.MsgSchedulerStart,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeySpec, config.CronMidnight)

	// Stop waits for a running job to finish.
	go func() {
		<-app.Ctx.Done()
		<-c.Stop().Done()
		slog.Info(config.MsgSchedulerStop, config.LogKeyComponent, config.CompWorker)
	}()
	return nil
}

// onDayChanged refreshes everything that depends on "today".
func (app *CalendarApp) onDayChanged() {
	slog.Info(config.MsgMidnight,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyDate, app.Today().String())
	app.refreshViews()
	app.updateTrayStatus()
}

// -----------------------------------------------------------------------------
// Tray
// -----------------------------------------------------------------------------

// setupTrayMenu constructs the system tray menu.
func (app *CalendarApp) setupTrayMenu() {
	// The status item doubles as a shortcut to today.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.GoToToday()
		app.ShowMainWindow()
	})
	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), app.ShowMainWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu re-applies localized labels.
func (app *CalendarApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.updateTrayStatus()
}

// updateTrayStatus shows how many events fall on today.
func (app *CalendarApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = app.trayLabel(len(app.Store.EventsOn(app.Today())))
	app.Menu.Refresh()
}

// trayLabel localizes the event count, with a dedicated message for zero.
func (app *CalendarApp) trayLabel(count int) string {
	if count == 0 {
		// GetMsg returns the key itself when the translation is missing.
		if label := app.GetMsg(config.TKeyTrayStatusZero); label != config.TKeyTrayStatusZero {
			return label
		}
		return fmt.Sprintf(config.FallbackTrayDefault, 0)
	}

	// Standard pluralization for counts above zero.
	if app.Localizer != nil {
		msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    config.TKeyTrayStatus,
			TemplateData: map[string]any{"Count": count},
			PluralCount:  count,
		})
		if err == nil && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf(config.FallbackTrayDefault, count)
}

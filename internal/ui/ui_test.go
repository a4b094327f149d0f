package ui

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// Thursday 15 February 2024, a leap year.
var testToday = time.Date(2024, time.February, 15, 10, 0, 0, 0, time.Local)

// setupTestApp builds a headless app pinned to testToday with an unstarted feed server.
func setupTestApp(t *testing.T) (*CalendarApp, *MockTray) {
	a := test.NewApp()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewCalendarApp(a, ctx, config.DefaultSettings(), server.NewFeedServer("0"))

	mockTray := &MockTray{}
	app.Tray = mockTray
	app.Clock = MockClock{CurrentTime: testToday}
	app.GoToToday()

	// Run() is skipped in tests.
	app.SetupI18n()
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	return app, mockTray
}

func date(y int, m time.Month, d int) engine.Date {
	return engine.Date{Year: y, Month: m, Day: d}
}

func captions(cells []*calendarCell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Caption
	}
	return out
}

// -----------------------------------------------------------------------------
// Localization
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "Mon", app.weekdayLabel(time.Monday))

	app.Preferences.SetString(config.PrefLanguage, "ko")
	app.UpdateLocalizer()
	assert.Equal(t, "설정...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "월", app.weekdayLabel(time.Monday))
	assert.Equal(t, "2024년 2월", app.titleText())
}

func TestLocalization_MissingKey(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

func TestLocalization_DetectsEmbeddedLanguages(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.ElementsMatch(t, config.SupportedLanguages, app.SupportedLanguages)
}

// -----------------------------------------------------------------------------
// Tray
// -----------------------------------------------------------------------------

func TestTrayStatus_CountsTodayOnly(t *testing.T) {
	app, mockTray := setupTestApp(t)
	app.setupTrayMenu()
	require.NotNil(t, mockTray.Menu)

	app.updateTrayStatus()
	assert.Equal(t, "No events today", app.TrayStatusItem.Label)

	_, err := app.AddEvent(date(2024, time.February, 15), "Standup", 0xFF64B5F6)
	require.NoError(t, err)
	assert.Equal(t, "1 event today", app.TrayStatusItem.Label)

	_, err = app.AddEvent(date(2024, time.February, 16), "Tomorrow", 0xFF64B5F6)
	require.NoError(t, err)
	assert.Equal(t, "1 event today", app.TrayStatusItem.Label, "other days must not count")

	_, err = app.AddEvent(date(2024, time.February, 15), "Review", 0xFF81C784)
	require.NoError(t, err)
	assert.Equal(t, "2 events today", app.TrayStatusItem.Label)

	app.Preferences.SetString(config.PrefLanguage, "ko")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	assert.Equal(t, "오늘 일정 2개", app.TrayStatusItem.Label)
	assert.Equal(t, "캘린더 열기", app.TrayOpenItem.Label)
}

func TestDayChanged_RefreshesToday(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()
	app.ShowMainWindow()

	_, err := app.AddEvent(date(2024, time.February, 16), "Tomorrow", 0xFFE57373)
	require.NoError(t, err)
	assert.Equal(t, "No events today", app.TrayStatusItem.Label)

	app.Clock = MockClock{CurrentTime: testToday.AddDate(0, 0, 1)}
	app.onDayChanged()
	assert.Equal(t, "1 event today", app.TrayStatusItem.Label)
}

// -----------------------------------------------------------------------------
// Adding events
// -----------------------------------------------------------------------------

func TestAddEvent_PublishesAndSelects(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()
	assert.Equal(t, -1, app.Server.Count(), "nothing published before the first event")

	ev, err := app.AddEvent(date(2024, time.February, 20), "  Dentist ", 0xFFE57373)
	require.NoError(t, err)

	assert.Equal(t, int64(1), ev.ID)
	assert.Equal(t, "Dentist", ev.Title)
	assert.Equal(t, date(2024, time.February, 20), app.Selected)
	assert.Equal(t, 1, app.Store.Len())
	assert.Equal(t, 1, app.Server.Count())

	// Feb 2024 with a Monday start has 3 leading days.
	cell := app.view.cells[3+19]
	assert.Equal(t, "20", cell.Caption)
	assert.Equal(t, []engine.Color{0xFFE57373}, cell.Colors)
	assert.Equal(t, cellSelected, cell.Style)
}

func TestAddEvent_RejectsBlankTitle(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	_, err := app.AddEvent(date(2024, time.February, 20), "   ", 0xFFE57373)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)
	assert.Zero(t, app.Store.Len())
	assert.Equal(t, -1, app.Server.Count())
	assert.Equal(t, date(2024, time.February, 15), app.Selected, "selection must not move")
}

func TestAddEvent_OtherMonthMovesPager(t *testing.T) {
	app, _ := setupTestApp(t)

	_, err := app.AddEvent(date(2025, time.July, 4), "Trip", 0xFF81C784)
	require.NoError(t, err)
	assert.Equal(t, engine.YearMonth{Year: 2025, Month: time.July}, app.Pager.Current())
}

func TestEventForm(t *testing.T) {
	app, _ := setupTestApp(t)
	f := app.newEventForm()

	assert.Error(t, f.title.Validator(""))
	assert.Error(t, f.title.Validator("  "))
	assert.NoError(t, f.title.Validator("Lunch"))

	require.Len(t, f.swatches, 1+len(config.EventPalette))
	assert.True(t, f.swatches[0].Selected, "theme color is the default")

	test.Tap(f.swatches[2])
	assert.Equal(t, engine.Color(config.EventPalette[1]), f.chosen)
	assert.False(t, f.swatches[0].Selected)
	assert.True(t, f.swatches[2].Selected)
}

// -----------------------------------------------------------------------------
// Views
// -----------------------------------------------------------------------------

func TestMonthView_Layout(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	cells := app.view.cells
	require.Len(t, cells, 35)
	assert.Equal(t, []string{"29", "30", "31", "1", "2", "3", "4"}, captions(cells[:7]))
	assert.Equal(t, cellMuted, cells[0].Style)
	assert.Equal(t, cellSelected, cells[3+14].Style, "today starts selected")
	assert.Equal(t, "2024 / 2", app.view.title.Text)

	app.Selected = date(2024, time.February, 1)
	app.refreshViews()
	assert.Equal(t, cellToday, app.view.cells[3+14].Style)

	app.Preferences.SetString(config.PrefWeekStart, "sunday")
	app.refreshViews()
	assert.Equal(t, []string{"28", "29", "30", "31", "1", "2", "3"}, captions(app.view.cells[:7]))
}

func TestMonthView_PaddingCellsShowEvents(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	_, err := app.Store.AddEvent(date(2024, time.January, 31), "Rent", engine.Color(config.EventPalette[0]))
	require.NoError(t, err)
	_, err = app.Store.AddEvent(date(2024, time.March, 3), "Trip", engine.Color(config.EventPalette[1]))
	require.NoError(t, err)
	app.refreshViews()

	cells := app.view.cells
	require.Len(t, cells, 35)

	// Monday start: Jan 29-31 lead the grid, Mar 1-3 close it.
	assert.Equal(t, "31", cells[2].Caption)
	assert.Equal(t, cellMuted, cells[2].Style)
	assert.Equal(t, []engine.Color{engine.Color(config.EventPalette[0])}, cells[2].Colors)
	assert.Empty(t, cells[1].Colors)

	assert.Equal(t, "3", cells[34].Caption)
	assert.Equal(t, []engine.Color{engine.Color(config.EventPalette[1])}, cells[34].Colors)
}

func TestMonthView_BarsAreCapped(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		colors := make([]engine.Color, n)
		bars := eventBars(colors, monthBar).(*fyne.Container)
		assert.Len(t, bars.Objects, min(n, config.MaxEventBars))
	}
}

func TestYearView(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	_, err := app.AddEvent(date(2024, time.March, 3), "Spring", 0xFF81C784)
	require.NoError(t, err)

	app.SetMode(ViewYear)
	cells := app.view.cells
	require.Len(t, cells, 12)
	assert.Equal(t, "2024", app.view.title.Text)
	assert.Empty(t, cells[0].Colors)
	assert.Len(t, cells[2].Colors, 1)
	assert.Equal(t, cellToday, cells[1].Style)

	test.Tap(cells[9])
	assert.Equal(t, ViewMonth, app.Mode)
	assert.Equal(t, engine.YearMonth{Year: 2024, Month: time.October}, app.Pager.Current())
}

func TestWeekView(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	app.SetMode(ViewWeek)
	assert.Equal(t,
		[]string{"2/12", "2/13", "2/14", "2/15", "2/16", "2/17", "2/18"},
		captions(app.view.cells))

	app.navigate(1)
	assert.Equal(t, date(2024, time.February, 22), app.Selected)
	assert.Equal(t, "2/19", app.view.cells[0].Caption)

	app.navigate(1)
	assert.Equal(t, date(2024, time.February, 29), app.Selected)
	assert.Equal(t, "3/3", app.view.cells[6].Caption)

	test.Tap(app.view.cells[0])
	assert.Equal(t, date(2024, time.February, 26), app.Selected)
}

func TestWeekView_FollowsPagerMonth(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	app.navigate(2) // April 2024
	app.SetMode(ViewWeek)
	assert.Equal(t, date(2024, time.April, 1), app.Selected)
	assert.Equal(t, "4/1", app.view.cells[0].Caption)
}

func TestNavigate_PerMode(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()

	app.navigate(1)
	assert.Equal(t, engine.YearMonth{Year: 2024, Month: time.March}, app.Pager.Current())

	app.SetMode(ViewYear)
	app.navigate(-1)
	assert.Equal(t, engine.YearMonth{Year: 2023, Month: time.March}, app.Pager.Current())

	// Clamped at the first page.
	app.navigate(-10)
	assert.Equal(t, engine.YearMonth{Year: 2020, Month: time.January}, app.Pager.Current())
}

func TestJumpTo(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowMainWindow()
	app.SetMode(ViewYear)

	assert.True(t, app.JumpTo("2030", "7"))
	assert.Equal(t, engine.YearMonth{Year: 2030, Month: time.July}, app.Pager.Current())
	assert.Equal(t, ViewMonth, app.Mode)
	assert.Equal(t, date(2030, time.July, 1), app.Selected)

	assert.True(t, app.JumpTo("x", "3"))
	assert.Equal(t, engine.YearMonth{Year: 2024, Month: time.March}, app.Pager.Current())

	assert.False(t, app.JumpTo("1999", "1"))
	assert.Equal(t, engine.YearMonth{Year: 2024, Month: time.March}, app.Pager.Current())
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

func TestWeekStart_Precedence(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.Equal(t, time.Monday, app.WeekStart())

	app.Settings.WeekStart = "sunday"
	assert.Equal(t, time.Sunday, app.WeekStart(), "config file applies without a preference")

	app.Preferences.SetString(config.PrefWeekStart, "saturday")
	assert.Equal(t, time.Saturday, app.WeekStart(), "preference wins")
}

func TestPortValidator(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		input string
		want  string
	}{
		{"18081", ""},
		{"1", ""},
		{"65535", ""},
		{"", "Port is required"},
		{"80a", "Port must be a number"},
		{"0", "Port must be between 1 and 65535"},
		{"65536", "Port must be between 1 and 65535"},
	}
	for _, tt := range tests {
		err := app.portValidator(tt.input)
		if tt.want == "" {
			assert.NoError(t, err, tt.input)
			continue
		}
		assert.EqualError(t, err, tt.want, tt.input)
		// Same verdict as the config file loader.
		assert.Error(t, config.ValidatePort(tt.input), tt.input)
	}
}

func TestSettings_Save(t *testing.T) {
	app, _ := setupTestApp(t)
	app.setupTrayMenu()
	app.ShowMainWindow()

	sw := app.newSettingsWidgets()
	assert.Equal(t, "Mon", sw.weekSelect.Selected)
	assert.True(t, sw.checkFeed.Checked)
	assert.Contains(t, sw.feedURL.Text, "http://127.0.0.1:18081/")

	sw.langSelect.SetSelected("ko")
	sw.weekSelect.SetSelected("Sun")
	sw.checkFeed.SetChecked(false)
	assert.Empty(t, sw.feedURL.Text)

	app.saveSettings(sw)

	assert.Equal(t, "ko", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, "sunday", app.Preferences.String(config.PrefWeekStart))
	assert.False(t, app.FeedEnabled())
	assert.Nil(t, app.Server, "disabling the feed stops the server")

	assert.Equal(t, "설정...", app.TraySettingsItem.Label)
	assert.Equal(t, "28", app.view.cells[0].Caption, "month grid follows the new week start")
}

func TestSettingsWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	first := app.settingsWindow
	require.NotNil(t, first)

	app.ShowSettingsWindow()
	assert.Same(t, first, app.settingsWindow)

	first.Close()
	assert.Nil(t, app.settingsWindow)
}

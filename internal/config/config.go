package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Calendar"
	AppID             = "com.github.tartampluch.go-calendar"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ConfigFileName    = "config.yaml"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the YAML configuration file (optional)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar Range & Defaults
// -----------------------------------------------------------------------------

const (
	// MinYear and MaxYear bound every calendar value accepted by the engine.
	MinYear = 1
	MaxYear = 9999

	DaysPerWeek  = 7
	MonthsInYear = 12

	DefaultStartYear  = 2020
	DefaultTotalYears = 20
	DefaultWeekStart  = "monday"
	DefaultLanguage   = "en"
	DefaultPort       = "18081"
	DefaultFeed       = true

	// MaxEventBars caps the color bars drawn under a day cell.
	MaxEventBars = 3
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ko"}

// WeekStartChoices lists the weekday names accepted for the first grid column.
var WeekStartChoices = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// EventPalette holds the fixed ARGB swatches offered next to the theme color.
var EventPalette = []uint32{
	0xFFE57373,
	0xFF64B5F6,
	0xFF81C784,
	0xFFFFB74D,
	0xFFBA68C8,
}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 480
	MainWindowHeight    = 720
	SettingsWindowWidth = 420

	// Preference Keys
	PrefLanguage    = "language"
	PrefWeekStart   = "week_start"
	PrefServerPort  = "server_port"
	PrefFeedEnabled = "feed_enabled"
	PrefLastRun     = "last_run_version"

	// Layout
	YearGridColumns   = 3
	LayoutColumnsPair = 2
	BarWidthMonth     = 14
	BarWidthWeek      = 20
	BarHeightMonth    = 4
	BarHeightWeek     = 6
	BarWidthYear      = 36
	SwatchSize        = 28
	MinCellSize       = 44

	// WeekBoxFormat renders "month/day" in week boxes.
	WeekBoxFormat = "%d/%d"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyAppTitle       = "app_title"
	TKeyTitleYear      = "title_year"  // Requires Year
	TKeyTitleMonth     = "title_month" // Requires Year, Month
	TKeyTitleWeek      = "title_week"  // Requires Year, Month
	TKeyViewYear       = "view_year"
	TKeyViewMonth      = "view_month"
	TKeyViewWeek       = "view_week"
	TKeyMenuViews      = "menu_views"
	TKeyMenuOpen       = "menu_open"
	TKeyMenuToday      = "menu_today"
	TKeyMenuSettings   = "menu_settings"
	TKeyMenuJump       = "menu_jump"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyMonthTile      = "month_tile"       // Requires Month
	TKeyDowMon         = "dow_mon"
	TKeyDowTue         = "dow_tue"
	TKeyDowWed         = "dow_wed"
	TKeyDowThu         = "dow_thu"
	TKeyDowFri         = "dow_fri"
	TKeyDowSat         = "dow_sat"
	TKeyDowSun         = "dow_sun"

	// Add Event Dialog
	TKeyAddTitle    = "add_title" // Requires Year, Month, Day
	TKeyLblTitle    = "lbl_event_title"
	TKeyLblColor    = "lbl_color"
	TKeyBtnAdd      = "btn_add"
	TKeyBtnCancel   = "btn_cancel"
	TKeyBtnMore     = "btn_more_colors"
	TKeyErrTitleReq = "err_title_required"

	// Jump Dialog
	TKeyJumpTitle = "jump_title"
	TKeyLblYear   = "lbl_year"
	TKeyLblMonth  = "lbl_month"
	TKeyBtnGo     = "btn_go"

	// Settings
	TKeyWinSettings  = "win_settings_title"
	TKeyLblLanguage  = "lbl_language"
	TKeyLblWeekStart = "lbl_week_start"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyLblFeed      = "lbl_feed_enabled"
	TKeyLblFeedURL   = "lbl_feed_url" // Requires URL
	TKeyLblGeneral   = "lbl_general"
	TKeyBtnSave      = "btn_save"
	TKeyLblFooter    = "lbl_footer"
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Calendar//Engine//EN"
	ICalCalName = "Go Calendar"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocalendar"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropColor      = "X-GOCALENDAR-COLOR"

	FormatUID   = "%d@%s"
	FormatColor = "#%08X"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Scheduling
// -----------------------------------------------------------------------------

const (
	// CronMidnight re-evaluates "today" once per local day.
	CronMidnight = "@midnight"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"
	FeedURLFormat      = "http://%s:%s/"
	MinPort            = 1
	MaxPort            = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidArgument = "invalid argument"
	ErrYearRange       = "year out of range"
	ErrMonthRange      = "month out of range"
	ErrDayRange        = "day out of range"
	ErrBlankTitle      = "event title is blank"

	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrConfigRead       = "failed to read config file"
	ErrConfigParse      = "failed to parse config file"
	ErrWeekStart        = "unknown week start"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrSchedule         = "failed to schedule job"
	ErrAddEvent         = "failed to add event"
	ErrPublish          = "failed to publish calendar feed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayDefault = "Go Calendar (%d today)"
	FallbackTrayLabel   = "Go Calendar"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgConfigLoaded    = "Configuration loaded"
	MsgConfigDefault   = "Configuration file not found, using defaults"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgFeedDisabled    = "Calendar feed disabled"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgEventAdded      = "Event added"
	MsgICalEncoded     = "Calendar encoded"
	MsgViewChanged     = "View changed"
	MsgPageChanged     = "Month page changed"
	MsgJumpIgnored     = "Jump target out of range, ignored"
	MsgMidnight        = "Day changed, refreshing views"
	MsgSchedulerStart  = "Scheduler started"
	MsgSchedulerStop   = "Scheduler stopped"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsSave    = "Saving preferences"
	MsgSettingsFocused = "Settings window already open, requesting focus"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyPath      = "path"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyCount     = "count"
	LogKeyID        = "id"
	LogKeyDate      = "date"
	LogKeyView      = "view"
	LogKeyPage      = "page"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyWeekStart = "week_start"
	LogKeySpec      = "spec"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI     = "ui"
	CompUISet  = "ui_settings"
	CompEngine = "engine"
	CompServer = "server"
	CompWorker = "worker"
	CompMain   = "main"
	CompI18n   = "i18n"
	CompConfig = "config"
)

package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar/internal/config"
	"golang.org/x/text/language"
)

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeExt    = ".json"
)

//go:embed locales/*.json
var localeFS embed.FS

// weekdayKeys maps time.Weekday to its short label key.
var weekdayKeys = [config.DaysPerWeek]string{
	time.Sunday:    config.TKeyDowSun,
	time.Monday:    config.TKeyDowMon,
	time.Tuesday:   config.TKeyDowTue,
	time.Wednesday: config.TKeyDowWed,
	time.Thursday:  config.TKeyDowThu,
	time.Friday:    config.TKeyDowFri,
	time.Saturday:  config.TKeyDowSat,
}

// SetupI18n loads every embedded active.<lang>.json and selects the preferred language.
func (app *CalendarApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err)
		return
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeExt) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}

		lang := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeExt)
		if lang == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(localeDir, name)); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err)
			continue
		}
		langs = append(langs, lang)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang)
	}

	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer follows the language preference, falling back to the config file.
func (app *CalendarApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, app.Settings.Language)
	if lang == "" {
		lang = config.DefaultLanguage
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates a plain key, returning the key itself when missing.
func (app *CalendarApp) GetMsg(key string) string {
	return app.Msg(key, nil)
}

// Msg translates a templated key.
func (app *CalendarApp) Msg(key string, data map[string]any) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return key
	}
	return msg
}

// weekdayLabel returns the short localized name of d.
func (app *CalendarApp) weekdayLabel(d time.Weekday) string {
	return app.GetMsg(weekdayKeys[d%config.DaysPerWeek])
}

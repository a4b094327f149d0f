package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the optional on-disk configuration.
// Values the user can edit at runtime (language, week start, port, feed)
// are only defaults here: Fyne preferences take precedence once written.
type Settings struct {
	// WeekStart names the weekday used as the leftmost grid column
	// ("monday", "sunday", ...).
	WeekStart string `yaml:"week_start"`

	// StartYear and TotalYears bound the month pager.
	StartYear  int `yaml:"start_year"`
	TotalYears int `yaml:"total_years"`

	Language    string `yaml:"language"`
	ServerPort  string `yaml:"server_port"`
	FeedEnabled *bool  `yaml:"feed_enabled,omitempty"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	s := &Settings{}
	s.Normalize()
	return s
}

// Normalize fills in missing or invalid values with defaults so that a
// partially-filled file still behaves correctly.
func (s *Settings) Normalize() {
	if _, err := ParseWeekday(s.WeekStart); err != nil {
		s.WeekStart = DefaultWeekStart
	}
	if s.StartYear < MinYear || s.StartYear > MaxYear {
		s.StartYear = DefaultStartYear
	}
	if s.TotalYears <= 0 {
		s.TotalYears = DefaultTotalYears
	}
	// The pager must never step past MaxYear. Compared without adding so a
	// huge total_years cannot overflow.
	if s.TotalYears > MaxYear-s.StartYear+1 {
		s.TotalYears = MaxYear - s.StartYear + 1
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if ValidatePort(s.ServerPort) != nil {
		s.ServerPort = DefaultPort
	}
	if s.FeedEnabled == nil {
		enabled := DefaultFeed
		s.FeedEnabled = &enabled
	}
}

// Feed reports whether the local ICS feed should be served.
func (s *Settings) Feed() bool {
	return s.FeedEnabled == nil || *s.FeedEnabled
}

// Weekday returns the normalized first day of the week.
func (s *Settings) Weekday() time.Weekday {
	wd, err := ParseWeekday(s.WeekStart)
	if err != nil {
		return time.Monday
	}
	return wd
}

// LoadFile reads the YAML configuration at path.
// A missing file is not an error: defaults are returned instead.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigParse, err)
	}
	s.Normalize()
	return &s, nil
}

// DefaultFilePath returns <UserConfigDir>/<AppID>/config.yaml.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, ConfigFileName), nil
}

// ParseWeekday maps a weekday name (case-insensitive, full or three-letter)
// to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) >= 3 {
		for d := time.Sunday; d <= time.Saturday; d++ {
			full := strings.ToLower(d.String())
			if strings.HasPrefix(full, n) {
				return d, nil
			}
		}
	}
	return time.Sunday, fmt.Errorf("%s: %q", ErrWeekStart, name)
}

// Port validation failures, matched with errors.Is by the settings window.
var (
	ErrPortMissing    = errors.New(ErrPortRequired)
	ErrPortNotNumeric = errors.New(ErrPortNumber)
	ErrPortOutOfRange = errors.New(ErrPortRange)
)

// ValidatePort checks that port is a decimal number in MinPort..MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return ErrPortMissing
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrPortNotNumeric, port)
	}
	if n < MinPort || n > MaxPort {
		return fmt.Errorf("%w: %d", ErrPortOutOfRange, n)
	}
	return nil
}

// WeekdayName is the inverse of ParseWeekday.
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

package engine

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// Store keeps the events of one session, grouped by date in insertion order.
// It only grows: there is no edit or delete.
//
// A single mutex covers both id assignment and append, and every read returns
// a copy, so the Store can be shared with background readers such as the ICS
// feed publisher.
type Store struct {
	mu     sync.RWMutex
	lastID int64
	byDate map[Date][]Event
}

// NewStore returns an empty store whose first event gets id 1.
func NewStore() *Store {
	return &Store{byDate: make(map[Date][]Event)}
}

// AddEvent appends a new event under date and returns it.
// The title is trimmed; a blank title or an invalid date fails with
// ErrInvalidArgument and leaves the store untouched.
func (s *Store) AddEvent(date Date, title string, c Color) (Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, fmt.Errorf("%w: %s", ErrInvalidArgument, config.ErrBlankTitle)
	}
	if err := date.Validate(); err != nil {
		return Event{}, err
	}

	s.mu.Lock()
	s.lastID++
	ev := Event{ID: s.lastID, Date: date, Title: title, Color: c}
	s.byDate[date] = append(s.byDate[date], ev)
	s.mu.Unlock()

	slog.Debug(config.MsgEventAdded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyID, ev.ID,
		config.LogKeyDate, date.String())
	return ev, nil
}

// EventsOn returns the events of date in insertion order.
// The result is a copy and is empty, never nil, when there are none.
func (s *Store) EventsOn(date Date) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.byDate[date]
	out := make([]Event, len(list))
	copy(out, list)
	return out
}

// EventsInMonth returns copies of every non-empty day list of the month.
func (s *Store) EventsInMonth(year int, month time.Month) (map[Date][]Event, error) {
	ym, err := NewYearMonth(year, month)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[Date][]Event)
	for d, list := range s.byDate {
		if ym.Contains(d) && len(list) > 0 {
			out[d] = slices.Clone(list)
		}
	}
	return out, nil
}

// HasEventsInMonth reports whether at least one event falls in the month.
// Out-of-range input simply has no events.
func (s *Store) HasEventsInMonth(year int, month time.Month) bool {
	ym := YearMonth{Year: year, Month: month}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for d, list := range s.byDate {
		if ym.Contains(d) && len(list) > 0 {
			return true
		}
	}
	return false
}

// Events returns every stored event ordered by id (creation order).
func (s *Store) Events() []Event {
	s.mu.RLock()
	out := make([]Event, 0, s.lastID)
	for _, list := range s.byDate {
		out = append(out, list...)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Event) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.lastID)
}

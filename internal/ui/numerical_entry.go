package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts typed digits, up to MaxDigits
// characters when MaxDigits > 0. Pasted text is not filtered: attach a
// Validator when the value matters.
type NumericalEntry struct {
	widget.Entry
	MaxDigits int
}

// NewNumericalEntry creates an unlimited numeric entry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewNumericalEntryWithLimit creates a numeric entry capped at maxDigits characters.
func NewNumericalEntryWithLimit(maxDigits int) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.MaxDigits = maxDigits
	return entry
}

// TypedRune drops anything that is not 0-9 or would exceed MaxDigits.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && len(e.Text) >= e.MaxDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard requests the numeric keypad on mobile.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// Int parses the current text. ok is false for empty or non-numeric text.
func (e *NumericalEntry) Int() (value int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(e.Text))
	if err != nil {
		return 0, false
	}
	return v, true
}

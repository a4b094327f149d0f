package engine

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
)

var testStamp = time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)

func TestEncodeICS_Empty(t *testing.T) {
	data, err := EncodeICS(nil, testStamp)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestEncodeICS_Events(t *testing.T) {
	s := NewStore()
	_, err := s.AddEvent(mustDate(t, 2024, time.February, 15), "Dentist", testRed)
	require.NoError(t, err)
	_, err = s.AddEvent(mustDate(t, 2024, time.February, 29), "Leap party", testBlue)
	require.NoError(t, err)

	data, err := EncodeICS(s.Events(), testStamp)
	require.NoError(t, err)
	out := string(data)

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:1@gocalendar")
	assert.Contains(t, out, "UID:2@gocalendar")
	assert.Contains(t, out, "SUMMARY:Dentist")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240215")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20240229")
	assert.Contains(t, out, "DTSTAMP:20240215T093000Z")
	assert.Contains(t, out, "X-GOCALENDAR-COLOR:#FFE57373")
	assert.Contains(t, out, "X-GOCALENDAR-COLOR:#FF64B5F6")
	assert.NotContains(t, out, "VALUE=TEXT")
	assert.Contains(t, out, config.PropRefresh)
}

// TestEncodeICS_Decodable feeds the output back through the iCalendar decoder,
// as a subscribing client would.
func TestEncodeICS_Decodable(t *testing.T) {
	ev := Event{ID: 7, Date: Date{2025, time.December, 31}, Title: "Lunch, then review; ok", Color: testRed}

	data, err := EncodeICS([]Event{ev}, testStamp)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)

	summary, err := events[0].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, ev.Title, summary)

	colorProp := events[0].Props.Get(config.PropColor)
	require.NotNil(t, colorProp)
	assert.Equal(t, "#FFE57373", colorProp.Value)
	assert.Empty(t, colorProp.Params.Get(ical.ParamValue))

	start, err := events[0].DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, ev.Date, DateOf(start))
}

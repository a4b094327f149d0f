package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-calendar/internal/config"
)

// EncodeICS renders events as an iCalendar feed, one all-day VEVENT each.
// now stamps every event (DTSTAMP). With no events the minimal stub calendar
// is returned so subscribers never see an invalid feed.
func EncodeICS(events []Event, now time.Time) ([]byte, error) {
	if len(events) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, ev := range events {
		cal.Children = append(cal.Children, newVEvent(ev, dtStampProp).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgICalEncoded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(events),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func newVEvent(ev Event, stamp *ical.Prop) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, ev.ID, config.ICalDomain))
	event.Props.Set(stamp)
	event.Props.SetText(config.PropSummary, ev.Title)

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(ev.Date.Time())
	event.Props.Set(start)

	// Built by hand: SetText would tag the unknown X- property with VALUE=TEXT.
	colorProp := ical.NewProp(config.PropColor)
	colorProp.Value = ev.Color.Hex()
	event.Props.Set(colorProp)
	return event
}

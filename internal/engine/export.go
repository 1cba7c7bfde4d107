package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-occasions/internal/config"
)

// Exporter renders every occasion window as an iCalendar feed.
type Exporter struct {
	Resolver *Resolver
}

// Export builds the VCALENDAR for the compiled-in tables. It returns the
// encoded feed and the number of occasions active at now.
func (e *Exporter) Export(ctx context.Context, now time.Time) ([]byte, int, error) {
	start := time.Now()

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

	windows := []struct {
		kind    string
		records []Record
	}{
		{config.KindSeasonal, e.Resolver.Seasonal().Records()},
		{config.KindAcademic, e.Resolver.Academic().Records()},
	}

	for _, w := range windows {
		for _, rec := range w.records {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			event := windowEvent(w.kind, rec)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	anniv := e.anniversaryEvent()
	anniv.Props.Set(dtStampProp)
	cal.Children = append(cal.Children, anniv.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	active := len(e.Resolver.active(now))
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompExport,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyEvents, len(cal.Children)),
			slog.Int(config.LogKeyActive, active),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), active, nil
}

// windowEvent maps a record onto an all-day event. DTEND is exclusive.
func windowEvent(kind string, rec Record) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(kind, rec.ID))
	event.Props.SetText(config.PropSummary, rec.Name)
	event.Props.SetText(config.PropDescription, rec.Description)
	setCategories(event, kind)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(rec.Start)
	event.Props.Set(dtStartProp)

	dtEndProp := ical.NewProp(config.PropDTEnd)
	dtEndProp.SetDate(rec.End.AddDate(0, 0, 1))
	event.Props.Set(dtEndProp)

	return event
}

// anniversaryEvent is a single all-day event repeating every year.
func (e *Exporter) anniversaryEvent() *ical.Event {
	cal := e.Resolver.Anniversary()
	founding := cal.Founding()

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(config.KindAnniversary, founding.Format(config.DateFormatTable)))
	event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatAnnivSummary, config.OrgName))
	setCategories(event, config.KindAnniversary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(founding)
	event.Props.Set(dtStartProp)

	dtEndProp := ical.NewProp(config.PropDTEnd)
	dtEndProp.SetDate(founding.AddDate(0, 0, 1))
	event.Props.Set(dtEndProp)

	// Set the rule manually to keep the value verbatim.
	rruleProp := ical.NewProp(config.PropRRule)
	rruleProp.Value = cal.RecurrenceRule()
	event.Props.Set(rruleProp)

	return event
}

// setCategories writes a raw CATEGORIES value so commas stay list separators.
func setCategories(event *ical.Event, categories ...string) {
	prop := ical.NewProp(config.PropCategories)
	prop.Value = strings.Join(categories, ",")
	event.Props.Set(prop)
}

// eventUID derives a UID that is stable across refreshes.
func eventUID(kind, id string) string {
	input := fmt.Sprintf(config.FormatHashInput, kind, id, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

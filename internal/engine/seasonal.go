package engine

import (
	"time"

	"github.com/tartampluch/go-occasions/internal/catalog"
	"github.com/tartampluch/go-occasions/internal/config"
)

// SeasonalCalendar serves themed seasonal events from an explicit window list.
type SeasonalCalendar struct {
	*WindowCalendar
	msgs *catalog.Catalog
}

// NewSeasonalCalendar validates records and wraps them in a seasonal calendar.
func NewSeasonalCalendar(records []Record, rnd Randomizer, msgs *catalog.Catalog) (*SeasonalCalendar, error) {
	wc, err := NewWindowCalendar(records, rnd)
	if err != nil {
		return nil, err
	}
	return &SeasonalCalendar{WindowCalendar: wc, msgs: msgs}, nil
}

// Kind implements Source.
func (c *SeasonalCalendar) Kind() string { return config.KindSeasonal }

// Active reports whether a seasonal event is current.
func (c *SeasonalCalendar) Active(now time.Time) bool {
	_, ok := c.current(now)
	return ok
}

// Greeting assembles variant, description and the feature bullets of the
// current event.
func (c *SeasonalCalendar) Greeting(now time.Time) string {
	return windowGreeting(c.WindowCalendar, c.msgs, now, config.TKeyHeaderSeasonal)
}

// Motivation renders one motivation line of the current event.
func (c *SeasonalCalendar) Motivation(now time.Time) string {
	return windowMotivation(c.WindowCalendar, c.msgs, now)
}

// Features returns the feature list of the current event.
func (c *SeasonalCalendar) Features(now time.Time) []string {
	r, ok := c.Current(now)
	if !ok {
		return nil
	}
	return r.Content.Features
}

// MusicThemes returns the theme tags of the current event.
func (c *SeasonalCalendar) MusicThemes(now time.Time) []string {
	r, ok := c.Current(now)
	if !ok {
		return nil
	}
	return r.Content.Themes
}

// StatusLine summarizes the current event in one line.
func (c *SeasonalCalendar) StatusLine(now time.Time) string {
	r, ok := c.current(now)
	if !ok {
		return ""
	}
	return c.msgs.Text(config.TKeyStatusSeasonal, catalog.Data{
		"Name": r.Name, "Description": r.Description,
	})
}

// windowGreeting is the greeting layout shared by window-list calendars.
func windowGreeting(wc *WindowCalendar, msgs *catalog.Catalog, now time.Time, headerKey string) string {
	fallback := msgs.Text(config.TKeyDefaultGreeting, nil)
	r, ok := wc.current(now)
	if !ok {
		return fallback
	}
	variant := wc.PickVariant(now, CategoryGreeting, fallback)
	return variant + config.SectionSeparator +
		r.Description + config.SectionSeparator +
		msgs.Text(headerKey, nil) + config.LineSeparator +
		bullets(r.Content.Features)
}

// windowMotivation prefixes a drawn motivation line with the record name.
func windowMotivation(wc *WindowCalendar, msgs *catalog.Catalog, now time.Time) string {
	fallback := msgs.Text(config.TKeyDefaultMotivation, nil)
	r, ok := wc.current(now)
	if !ok {
		return fallback
	}
	return msgs.Text(config.TKeyMotivationLine, catalog.Data{
		"Name": r.Name,
		"Line": wc.PickVariant(now, CategoryMotivation, fallback),
	})
}

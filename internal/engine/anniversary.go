package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	jnow "github.com/jinzhu/now"
	"github.com/tartampluch/go-occasions/internal/catalog"
	"github.com/tartampluch/go-occasions/internal/config"
	"github.com/teambition/rrule-go"
)

// Anniversary is the occasion generated for a given year since founding.
type Anniversary struct {
	ID          string
	Name        string
	Description string
	Date        time.Time
	YearsSince  int

	Greetings    []string
	Features     []string
	Achievements []string
	FutureGoals  []string
}

// AnniversaryCalendar resolves the founding anniversary by annual recurrence
// rather than by scanning a window list: the anniversary is active for the
// whole founding month of every year from the founding year on.
type AnniversaryCalendar struct {
	founding time.Time
	opt      rrule.ROption
	rule     *rrule.RRule
	rnd      Randomizer
	msgs     *catalog.Catalog
}

// NewAnniversaryCalendar builds the yearly recurrence anchored at founding.
func NewAnniversaryCalendar(founding time.Time, rnd Randomizer, msgs *catalog.Catalog) (*AnniversaryCalendar, error) {
	if founding.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, config.ErrFoundingDate)
	}
	founding = jnow.With(founding).BeginningOfDay()

	opt := rrule.ROption{Freq: rrule.YEARLY, Dtstart: founding}
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRecurrence, err)
	}
	if rnd == nil {
		rnd = GlobalRand{}
	}
	return &AnniversaryCalendar{
		founding: founding,
		opt:      opt,
		rule:     rule,
		rnd:      rnd,
		msgs:     msgs,
	}, nil
}

// Founding returns the anchor date (start of day).
func (c *AnniversaryCalendar) Founding() time.Time {
	return c.founding
}

// RecurrenceRule returns the RFC 5545 RRULE value of the anniversary.
func (c *AnniversaryCalendar) RecurrenceRule() string {
	return c.opt.RRuleString()
}

// Current returns the anniversary when now falls in the founding month of a
// year not before the founding year.
func (c *AnniversaryCalendar) Current(now time.Time) (Anniversary, bool) {
	if now.Month() != c.founding.Month() || now.Year() < c.founding.Year() {
		return Anniversary{}, false
	}
	years := now.Year() - c.founding.Year()
	greetings, features := anniversaryContent(years, config.OrgName)

	return Anniversary{
		ID: fmt.Sprintf("anniversary-%d", years),
		Name: c.msgs.Text(config.TKeyAnnivTitle, catalog.Data{
			"Years": years, "Suffix": OrdinalSuffix(years),
		}),
		Description: c.msgs.Text(config.TKeyAnnivDescription, catalog.Data{
			"Years": years, "Org": config.OrgName,
		}),
		Date:         time.Date(now.Year(), c.founding.Month(), c.founding.Day(), 0, 0, 0, 0, c.founding.Location()),
		YearsSince:   years,
		Greetings:    greetings,
		Features:     features,
		Achievements: anniversaryAchievements(c.founding, config.OrgName, config.BotName),
		FutureGoals:  slices.Clone(anniversaryGoals),
	}, true
}

// Kind implements Source.
func (c *AnniversaryCalendar) Kind() string { return config.KindAnniversary }

// Active reports whether an anniversary is current at now.
func (c *AnniversaryCalendar) Active(now time.Time) bool {
	_, ok := c.Current(now)
	return ok
}

// NextDate returns the next anniversary on or after the start of now's day.
func (c *AnniversaryCalendar) NextDate(now time.Time) time.Time {
	today := jnow.With(now).BeginningOfDay()
	return c.rule.After(today, true)
}

// DaysUntilNext returns the whole-day ceiling distance to the next
// anniversary. It is 0 for the whole anniversary day: the count has day
// granularity and only rolls to next year once that day is over.
func (c *AnniversaryCalendar) DaysUntilNext(now time.Time) int {
	next := c.NextDate(now)
	if next.IsZero() {
		return 0
	}
	days := math.Ceil(next.Sub(now).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return int(days)
}

// Countdown renders the distance to the next anniversary. The long form
// splits days into 365-day years and ignores leap years.
func (c *AnniversaryCalendar) Countdown(now time.Time) string {
	days := c.DaysUntilNext(now)
	switch {
	case days == 0:
		return c.msgs.Text(config.TKeyAnnivToday, nil)
	case days <= config.AnniversarySoonDays:
		return c.msgs.Text(config.TKeyAnnivSoon, catalog.Data{"Days": days})
	default:
		return c.msgs.Text(config.TKeyAnnivLong, catalog.Data{
			"Years": days / config.DaysPerYearApprox,
			"Days":  days % config.DaysPerYearApprox,
		})
	}
}

// Greeting picks a greeting variant and appends the description and the
// feature list. Outside the anniversary month it returns the default greeting.
func (c *AnniversaryCalendar) Greeting(now time.Time) string {
	a, ok := c.Current(now)
	if !ok {
		return c.msgs.Text(config.TKeyDefaultGreeting, nil)
	}
	variant, ok := pick(c.rnd, a.Greetings)
	if !ok {
		return c.msgs.Text(config.TKeyDefaultGreeting, nil)
	}
	return variant + config.SectionSeparator +
		a.Description + config.SectionSeparator +
		c.msgs.Text(config.TKeyHeaderAnniversary, nil) + config.LineSeparator +
		bullets(a.Features)
}

// Motivation returns the fixed anniversary motivation line.
func (c *AnniversaryCalendar) Motivation(now time.Time) string {
	if !c.Active(now) {
		return c.msgs.Text(config.TKeyDefaultMotivation, nil)
	}
	return c.msgs.Text(config.TKeyMotivationAnniv, nil)
}

// Features returns the special features of the current anniversary.
func (c *AnniversaryCalendar) Features(now time.Time) []string {
	a, ok := c.Current(now)
	if !ok {
		return nil
	}
	return a.Features
}

// MusicThemes returns the celebration tags while the anniversary is active.
func (c *AnniversaryCalendar) MusicThemes(now time.Time) []string {
	if !c.Active(now) {
		return nil
	}
	return slices.Clone(anniversaryThemes)
}

// StatusLine summarizes the current anniversary in one line.
func (c *AnniversaryCalendar) StatusLine(now time.Time) string {
	a, ok := c.Current(now)
	if !ok {
		return ""
	}
	return c.msgs.Text(config.TKeyStatusAnniversary, catalog.Data{
		"Name": a.Name, "Years": a.YearsSince,
	})
}

// Info renders the anniversary details, or the countdown when inactive.
func (c *AnniversaryCalendar) Info(now time.Time) string {
	a, ok := c.Current(now)
	if !ok {
		return c.Countdown(now)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 **%s** 🎉", a.Name)
	b.WriteString(config.SectionSeparator + a.Description)
	b.WriteString(config.SectionSeparator + c.msgs.Text(config.TKeyHeaderAchievements, nil))
	b.WriteString(config.LineSeparator + bullets(a.Achievements))
	b.WriteString(config.SectionSeparator + c.msgs.Text(config.TKeyHeaderGoals, nil))
	b.WriteString(config.LineSeparator + bullets(a.FutureGoals))
	return b.String()
}

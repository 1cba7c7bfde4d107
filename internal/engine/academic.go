package engine

import (
	"math"
	"slices"
	"time"

	"github.com/tartampluch/go-occasions/internal/catalog"
	"github.com/tartampluch/go-occasions/internal/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Intensity is the study-pressure tier derived from term progress.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityCritical Intensity = "critical"
)

// IntensityFor maps an elapsed fraction onto a tier. It is monotonic in
// progress.
func IntensityFor(progress float64) Intensity {
	switch {
	case progress < config.IntensityLowBelow:
		return IntensityLow
	case progress < config.IntensityMediumBelow:
		return IntensityMedium
	case progress < config.IntensityHighBelow:
		return IntensityHigh
	default:
		return IntensityCritical
	}
}

// AcademicCalendar serves academic terms and the derived intensity and
// countdown figures.
type AcademicCalendar struct {
	*WindowCalendar
	msgs *catalog.Catalog
}

// NewAcademicCalendar validates records and wraps them in an academic calendar.
func NewAcademicCalendar(records []Record, rnd Randomizer, msgs *catalog.Catalog) (*AcademicCalendar, error) {
	wc, err := NewWindowCalendar(records, rnd)
	if err != nil {
		return nil, err
	}
	return &AcademicCalendar{WindowCalendar: wc, msgs: msgs}, nil
}

// Kind implements Source.
func (c *AcademicCalendar) Kind() string { return config.KindAcademic }

// Active reports whether a term is current.
func (c *AcademicCalendar) Active(now time.Time) bool {
	_, ok := c.current(now)
	return ok
}

// Intensity returns the tier of the current term, or medium when none is.
func (c *AcademicCalendar) Intensity(now time.Time) Intensity {
	r, ok := c.current(now)
	if !ok {
		return IntensityMedium
	}
	return IntensityFor(r.Progress(now))
}

// DaysRemaining returns ceil((end-now)/24h) for the current term.
func (c *AcademicCalendar) DaysRemaining(now time.Time) (int, bool) {
	r, ok := c.current(now)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(r.End.Sub(now).Hours() / 24)), true
}

// Countdown renders the tiered end-of-term message. Each bound is inclusive
// toward the more urgent tier.
func (c *AcademicCalendar) Countdown(now time.Time) string {
	days, ok := c.DaysRemaining(now)
	if !ok {
		return c.msgs.Text(config.TKeyTermNone, nil)
	}
	return c.msgs.Text(countdownKey(days), catalog.Data{"Days": days})
}

func countdownKey(days int) string {
	switch {
	case days <= 0:
		return config.TKeyTermDone
	case days <= config.TermFinalWeekDays:
		return config.TKeyTermFinalWeek
	case days <= config.TermTwoWeeksDays:
		return config.TKeyTermTwoWeeks
	case days <= config.TermMonthDays:
		return config.TKeyTermMonth
	default:
		return config.TKeyTermLong
	}
}

// PreparationTips returns the tip list for the current tier.
func (c *AcademicCalendar) PreparationTips(now time.Time) []string {
	if tips, ok := preparationTips[c.Intensity(now)]; ok {
		return slices.Clone(tips)
	}
	return slices.Clone(preparationTips[IntensityMedium])
}

// IsExamPeriod reports whether the current tier is high or critical.
func (c *AcademicCalendar) IsExamPeriod(now time.Time) bool {
	switch c.Intensity(now) {
	case IntensityHigh, IntensityCritical:
		return true
	default:
		return false
	}
}

// StudyPlan renders the tier plan wrapped in the term name. Without a
// current term the general plan is returned.
func (c *AcademicCalendar) StudyPlan(now time.Time) string {
	r, ok := c.current(now)
	if !ok {
		return c.msgs.Text(config.TKeyDefaultStudyPlan, nil)
	}
	plan := studyPlans[IntensityFor(r.Progress(now))]
	return c.msgs.Text(config.TKeyStudyPlanTitle, catalog.Data{"Name": r.Name}) +
		config.SectionSeparator + plan.Heading + config.LineSeparator + bullets(plan.Items)
}

// Greeting assembles variant, description and the feature bullets of the
// current term.
func (c *AcademicCalendar) Greeting(now time.Time) string {
	return windowGreeting(c.WindowCalendar, c.msgs, now, config.TKeyHeaderAcademic)
}

// Motivation renders one motivation line of the current term.
func (c *AcademicCalendar) Motivation(now time.Time) string {
	return windowMotivation(c.WindowCalendar, c.msgs, now)
}

// Features returns the feature list of the current term.
func (c *AcademicCalendar) Features(now time.Time) []string {
	r, ok := c.Current(now)
	if !ok {
		return nil
	}
	return r.Content.Features
}

// MusicThemes looks up extra tags by the current term's season.
func (c *AcademicCalendar) MusicThemes(now time.Time) []string {
	r, ok := c.Current(now)
	if !ok {
		return nil
	}
	return slices.Clone(seasonThemes[r.Content.Season])
}

// StatusLine summarizes the current term with its upper-cased intensity.
// A Caser is stateful, so one is built per call.
func (c *AcademicCalendar) StatusLine(now time.Time) string {
	r, ok := c.current(now)
	if !ok {
		return ""
	}
	return c.msgs.Text(config.TKeyStatusAcademic, catalog.Data{
		"Name":      r.Name,
		"Intensity": cases.Upper(language.English).String(string(IntensityFor(r.Progress(now)))),
	})
}

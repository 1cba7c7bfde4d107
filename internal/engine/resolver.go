package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-occasions/internal/catalog"
	"github.com/tartampluch/go-occasions/internal/config"
)

// Source is one occasion calendar as seen by the resolver.
type Source interface {
	Kind() string
	Active(now time.Time) bool
	Greeting(now time.Time) string
	Motivation(now time.Time) string
	Features(now time.Time) []string
	MusicThemes(now time.Time) []string
	StatusLine(now time.Time) string
}

// Precedence ranks of the built-in sources. Lower ranks win.
const (
	RankAnniversary = 1
	RankSeasonal    = 2
	RankAcademic    = 3
)

type rankedSource struct {
	rank int
	src  Source
}

// Options configures NewResolver. Zero values select the compiled-in tables,
// the founding date from config and the global random source.
type Options struct {
	Random   Randomizer
	Catalog  *catalog.Catalog
	Founding time.Time
	Seasonal []Record
	Academic []Record
}

// Resolver owns one calendar of each kind and composes their output.
type Resolver struct {
	anniversary *AnniversaryCalendar
	seasonal    *SeasonalCalendar
	academic    *AcademicCalendar

	sources []rankedSource
	msgs    *catalog.Catalog
}

// NewResolver builds and validates every calendar. A defective table or a
// missing catalog message rejects construction.
func NewResolver(opts Options) (*Resolver, error) {
	msgs := opts.Catalog
	if msgs == nil {
		var err error
		if msgs, err = catalog.New(config.DefaultLanguage); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrCatalog, err)
		}
	}
	if err := msgs.Require(config.RequiredMessages...); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalog, err)
	}

	rnd := opts.Random
	if rnd == nil {
		rnd = GlobalRand{}
	}

	founding := opts.Founding
	if founding.IsZero() {
		var err error
		if founding, err = time.Parse(config.DateFormatTable, config.FoundingDate); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrFoundingDate, err)
		}
	}

	seasonalRecords := opts.Seasonal
	if seasonalRecords == nil {
		seasonalRecords = SeasonalEventTable()
	}
	academicRecords := opts.Academic
	if academicRecords == nil {
		academicRecords = AcademicTermTable()
	}

	anniversary, err := NewAnniversaryCalendar(founding, rnd, msgs)
	if err != nil {
		return nil, err
	}
	seasonal, err := NewSeasonalCalendar(seasonalRecords, rnd, msgs)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", config.ErrTableInvalid, config.KindSeasonal, err)
	}
	academic, err := NewAcademicCalendar(academicRecords, rnd, msgs)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", config.ErrTableInvalid, config.KindAcademic, err)
	}

	r := &Resolver{
		anniversary: anniversary,
		seasonal:    seasonal,
		academic:    academic,
		msgs:        msgs,
	}
	r.register(RankAnniversary, anniversary)
	r.register(RankSeasonal, seasonal)
	r.register(RankAcademic, academic)

	slog.Debug(config.MsgTablesLoaded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySeasonal, seasonal.Len(),
		config.LogKeyAcademic, academic.Len(),
	)
	return r, nil
}

// register inserts src keeping the table sorted by rank.
func (r *Resolver) register(rank int, src Source) {
	r.sources = append(r.sources, rankedSource{rank: rank, src: src})
	slices.SortStableFunc(r.sources, func(a, b rankedSource) int {
		return a.rank - b.rank
	})
	slog.Debug(config.MsgSourceAdded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyKind, src.Kind(),
		config.LogKeyCount, len(r.sources),
	)
}

// Anniversary, Seasonal and Academic expose the owned calendars read-only.
func (r *Resolver) Anniversary() *AnniversaryCalendar { return r.anniversary }
func (r *Resolver) Seasonal() *SeasonalCalendar       { return r.seasonal }
func (r *Resolver) Academic() *AcademicCalendar       { return r.academic }

// Catalog returns the message catalog used by the calendars.
func (r *Resolver) Catalog() *catalog.Catalog { return r.msgs }

// active returns the sources active at now, in precedence order.
func (r *Resolver) active(now time.Time) []Source {
	var out []Source
	for _, rs := range r.sources {
		if rs.src.Active(now) {
			out = append(out, rs.src)
		}
	}
	return out
}

// Primary returns the kind of the winning occasion, or config.KindNone.
func (r *Resolver) Primary(now time.Time) string {
	for _, rs := range r.sources {
		if rs.src.Active(now) {
			return rs.src.Kind()
		}
	}
	return config.KindNone
}

// PrimaryGreeting returns the greeting of the highest-ranked active source
// only, or the default greeting.
func (r *Resolver) PrimaryGreeting(now time.Time) string {
	for _, rs := range r.sources {
		if rs.src.Active(now) {
			return rs.src.Greeting(now)
		}
	}
	return r.msgs.Text(config.TKeyDefaultGreeting, nil)
}

// Motivation joins the motivation line of every active source.
func (r *Resolver) Motivation(now time.Time) string {
	var lines []string
	for _, src := range r.active(now) {
		lines = append(lines, src.Motivation(now))
	}
	if len(lines) == 0 {
		return r.msgs.Text(config.TKeyDefaultMotivation, nil)
	}
	return strings.Join(lines, config.SectionSeparator)
}

// MusicThemes unions the base tags with the tags of every active source,
// de-duplicated in first-seen order. Sources contribute in the order
// seasonal event, academic season, anniversary.
func (r *Resolver) MusicThemes(now time.Time) []string {
	themes := slices.Clone(baseThemes)
	seen := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		seen[t] = struct{}{}
	}
	for _, src := range []Source{r.seasonal, r.academic, r.anniversary} {
		for _, t := range src.MusicThemes(now) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			themes = append(themes, t)
		}
	}
	return themes
}

// StatusSummary lists one line per active source.
func (r *Resolver) StatusSummary(now time.Time) string {
	var lines []string
	for _, src := range r.active(now) {
		lines = append(lines, src.StatusLine(now))
	}
	if len(lines) == 0 {
		return r.msgs.Text(config.TKeyStatusNone, nil)
	}
	return strings.Join(lines, config.SectionSeparator)
}

// IsAnySpecialEventActive reports whether any source is active.
func (r *Resolver) IsAnySpecialEventActive(now time.Time) bool {
	return len(r.active(now)) > 0
}

// Features unions the feature lists of every active source.
func (r *Resolver) Features(now time.Time) []string {
	var out []string
	for _, src := range r.active(now) {
		out = append(out, src.Features(now)...)
	}
	if len(out) == 0 {
		return slices.Clone(defaultFeatures)
	}
	return out
}

// StudyPlan returns the academic plan of the current term.
func (r *Resolver) StudyPlan(now time.Time) string {
	return r.academic.StudyPlan(now)
}

// ExamCountdown returns the end-of-term countdown.
func (r *Resolver) ExamCountdown(now time.Time) string {
	return r.academic.Countdown(now)
}

// ExamTips returns preparation tips, or general habits outside any term.
func (r *Resolver) ExamTips(now time.Time) []string {
	if !r.academic.Active(now) {
		return slices.Clone(defaultExamTips)
	}
	return r.academic.PreparationTips(now)
}

// UpcomingEvents lists the next seasonal events, the next terms and the
// distance to the next anniversary.
func (r *Resolver) UpcomingEvents(now time.Time) []string {
	var out []string
	for _, rec := range r.seasonal.Upcoming(now, config.UpcomingSeasonalLimit) {
		out = append(out, r.msgs.Text(config.TKeyUpcomingSeasonal, catalog.Data{
			"Name": rec.Name, "Date": rec.Start.Format(config.DateFormatUpcoming),
		}))
	}
	for _, rec := range r.academic.Upcoming(now, config.UpcomingAcademicLimit) {
		out = append(out, r.msgs.Text(config.TKeyUpcomingAcademic, catalog.Data{
			"Name": rec.Name, "Date": rec.Start.Format(config.DateFormatUpcoming),
		}))
	}
	if days := r.anniversary.DaysUntilNext(now); days > 0 {
		out = append(out, r.msgs.Text(config.TKeyUpcomingAnniv, catalog.Data{"Days": days}))
	}
	return out
}

// AnniversaryInfo returns the anniversary details or its countdown.
func (r *Resolver) AnniversaryInfo(now time.Time) string {
	return r.anniversary.Info(now)
}

package engine_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-occasions/internal/engine"
)

var (
	// tripleOverlap: October anniversary, Halloween event and the fall term.
	tripleOverlap = utc(2024, 10, 15, 12)
	// quiet lies outside every table window and the founding month.
	quiet = utc(2028, 2, 10, 12)
)

func newResolver(t *testing.T, rnd engine.Randomizer) *engine.Resolver {
	t.Helper()
	r, err := engine.NewResolver(engine.Options{Random: rnd, Catalog: newCatalog(t)})
	require.NoError(t, err)
	return r
}

func TestResolver_Precedence(t *testing.T) {
	r := newResolver(t, fixedRand(0))

	tests := []struct {
		name      string
		now       string
		wantKind  string
		wantStart string
	}{
		{"anniversary beats everything", "2024-10-15", "anniversary", "🎉 **Happy 2nd Anniversary gunnchos LLC-S!** 🎉"},
		{"seasonal beats academic", "2024-11-15", "seasonal", "🦃 **Gobble Gobble!** Time to feast on knowledge!"},
		{"academic alone", "2025-01-20", "academic", "🌸 **Spring into Action!** Let's make this semester bloom!"},
		{"nothing active", "2028-02-10", "none", "🌟 **gunnchAI3k is here!** Ready to help you study! 🌟"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := mustDate(t, tt.now)
			assert.Equal(t, tt.wantKind, r.Primary(now))
			assert.True(t, strings.HasPrefix(r.PrimaryGreeting(now), tt.wantStart), r.PrimaryGreeting(now))
		})
	}
}

func TestResolver_TripleOverlapGreetingIsExclusive(t *testing.T) {
	r := newResolver(t, engine.NewSeededRand(1))

	for i := 0; i < 20; i++ {
		g := r.PrimaryGreeting(tripleOverlap)
		assert.Contains(t, g, "🎯 **Special Anniversary Features:**")
		assert.NotContains(t, g, "Spooky study sessions")
		assert.NotContains(t, g, "🎯 **Seasonal Features:**")
		assert.NotContains(t, g, "🎯 **Special Features:**")
	}
}

func TestResolver_MotivationUnion(t *testing.T) {
	r := newResolver(t, fixedRand(0))

	m := r.Motivation(tripleOverlap)
	parts := strings.Split(m, "\n\n")
	require.Len(t, parts, 3)
	assert.Equal(t, "🎉 **Anniversary Celebration!** Let's make this year legendary!", parts[0])
	assert.Equal(t, "🎯 **🎃 Halloween Study Spooktacular Motivation:** Don't let your grades be a horror story!", parts[1])
	assert.Equal(t, "🎯 **🍂 Fall Semester 2024 Motivation:** Fall into academic excellence!", parts[2])

	assert.Equal(t, "Keep studying hard! Your success is inevitable!", r.Motivation(quiet))
}

func TestResolver_MusicThemes(t *testing.T) {
	r := newResolver(t, nil)

	want := []string{
		"study", "focus", "motivation",
		"spooky", "halloween", "thriller", "monster mash",
		"autumn", "harvest", "thanksgiving",
		"celebration", "achievement", "success",
	}
	assert.Equal(t, want, r.MusicThemes(tripleOverlap))
	assert.Equal(t, []string{"study", "focus", "motivation"}, r.MusicThemes(quiet))

	// Thanksgiving and the fall term both contribute "autumn" and "thanksgiving".
	got := r.MusicThemes(utc(2024, 11, 10, 0))
	assert.Equal(t, []string{
		"study", "focus", "motivation",
		"autumn", "grateful", "harvest", "thanksgiving",
	}, got)
}

func TestResolver_StatusSummary(t *testing.T) {
	r := newResolver(t, nil)

	want := "🎉 **🎉 2nd Anniversary Celebration** - Celebrating 2 years of gunnchos LLC-S!\n\n" +
		"🎭 **🎃 Halloween Study Spooktacular** - Spooky study sessions with ghostly motivation!\n\n" +
		"📚 **🍂 Fall Semester 2024** - Intensity: MEDIUM"
	assert.Equal(t, want, r.StatusSummary(tripleOverlap))
	assert.Equal(t, "🌟 **gunnchAI3k is ready!** No special events active.", r.StatusSummary(quiet))
}

func TestResolver_NoOccasion(t *testing.T) {
	r := newResolver(t, nil)

	assert.Equal(t, "🌟 **gunnchAI3k is here!** Ready to help you study! 🌟", r.PrimaryGreeting(quiet))
	assert.False(t, r.IsAnySpecialEventActive(quiet))
	assert.True(t, r.IsAnySpecialEventActive(tripleOverlap))

	assert.Equal(t, []string{
		"🧠 Smart study assistance",
		"📚 Personalized learning plans",
		"🎯 Goal tracking and motivation",
		"💫 AI-powered study companion",
	}, r.Features(quiet))
	assert.Contains(t, r.StudyPlan(quiet), "📚 **General Study Plan:**")
	assert.Contains(t, r.ExamCountdown(quiet), "No active semester detected.")
	assert.Equal(t, "📚 Build strong study habits", r.ExamTips(quiet)[0])
}

func TestResolver_FeaturesUnion(t *testing.T) {
	r := newResolver(t, nil)

	f := r.Features(tripleOverlap)
	require.Len(t, f, 12)
	assert.Equal(t, "🎉 **2 Years Strong!** - Celebrating decades of innovation!", f[0])
	assert.Equal(t, "👻 Ghostly study reminders", f[4])
	assert.Equal(t, "🍂 Autumn-themed study sessions", f[8])
}

func TestResolver_AcademicPassThrough(t *testing.T) {
	r := newResolver(t, nil)

	assert.Contains(t, r.StudyPlan(tripleOverlap), "📚 **🍂 Fall Semester 2024 Study Plan:**\n\n⚡ **Mid-Semester Plan:**")
	assert.Contains(t, r.ExamCountdown(tripleOverlap), "📚 **62 days left in the semester!** 📚")
	assert.Equal(t, "⚡ Increase study intensity gradually", r.ExamTips(tripleOverlap)[0])
}

func TestResolver_UpcomingEvents(t *testing.T) {
	r := newResolver(t, nil)

	want := []string{
		"🎭 **🎃 Halloween Study Spooktacular** - 10/1/2024",
		"🎭 **🦃 Thanksgiving Gratitude Study** - 11/1/2024",
		"🎭 **🎄 Christmas Study Wonderland** - 12/1/2024",
		"📚 **🍂 Fall Semester 2024** - 8/15/2024",
		"📚 **🌸 Spring Semester 2025** - 1/15/2025",
		"🎉 **Next Anniversary** - 83 days",
	}
	assert.Equal(t, want, r.UpcomingEvents(utc(2024, 8, 1, 0)))

	// On the anniversary day the countdown entry is omitted.
	for _, line := range r.UpcomingEvents(utc(2025, 10, 23, 6)) {
		assert.NotContains(t, line, "Next Anniversary")
	}
}

func TestResolver_AnniversaryInfo(t *testing.T) {
	r := newResolver(t, nil)
	assert.Contains(t, r.AnniversaryInfo(tripleOverlap), "**Achievements:**")
	assert.Contains(t, r.AnniversaryInfo(quiet), "until the next anniversary!")
}

// TestResolver_ThirdAnniversary checks the 2025 anniversary month.
func TestResolver_ThirdAnniversary(t *testing.T) {
	r := newResolver(t, fixedRand(0))
	now := utc(2025, 10, 15, 0)

	a, ok := r.Anniversary().Current(now)
	require.True(t, ok)
	assert.Equal(t, 3, a.YearsSince)
	assert.Contains(t, r.PrimaryGreeting(now), "3rd")
}

func TestNewResolver_RejectsDefectiveTables(t *testing.T) {
	bad := record("bad", utc(2025, 2, 1, 0), utc(2025, 1, 1, 0))
	empty := record("empty", utc(2025, 1, 1, 0), utc(2025, 2, 1, 0))
	empty.Content.Motivation = []string{}

	tests := []struct {
		name    string
		opts    engine.Options
		wantErr error
	}{
		{"seasonal inverted", engine.Options{Seasonal: []engine.Record{bad}}, engine.ErrInvertedWindow},
		{"academic empty motivation", engine.Options{Academic: []engine.Record{empty}}, engine.ErrEmptyVariants},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Catalog = newCatalog(t)
			r, err := engine.NewResolver(tt.opts)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNewResolver_Defaults(t *testing.T) {
	r, err := engine.NewResolver(engine.Options{})
	require.NoError(t, err)
	assert.Equal(t, founding, r.Anniversary().Founding())
	assert.Equal(t, len(engine.SeasonalEventTable()), r.Seasonal().Len())
	assert.Equal(t, len(engine.AcademicTermTable()), r.Academic().Len())
	assert.NotNil(t, r.Catalog())
}

func TestNewResolver_LogsRegisteredSources(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	newResolver(t, nil)

	var kinds []string
	var counts []float64
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["msg"] != "Occasion source registered" {
			continue
		}
		kinds = append(kinds, entry["kind"].(string))
		counts = append(counts, entry["count"].(float64))
	}
	assert.Equal(t, []string{"anniversary", "seasonal", "academic"}, kinds)
	assert.Equal(t, []float64{1, 2, 3}, counts)
}

// TestResolver_ReturnedSlicesAreCopies writes into everything handed out and
// checks that a fresh resolver still sees the compiled tables.
func TestResolver_ReturnedSlicesAreCopies(t *testing.T) {
	snapshot := func(r *engine.Resolver) map[string][]string {
		a, ok := r.Anniversary().Current(tripleOverlap)
		require.True(t, ok)
		return map[string][]string{
			"tips":        r.ExamTips(tripleOverlap),
			"prep":        r.Academic().PreparationTips(quiet),
			"themes":      r.MusicThemes(tripleOverlap),
			"term themes": r.Academic().MusicThemes(tripleOverlap),
			"anniv theme": r.Anniversary().MusicThemes(tripleOverlap),
			"features":    r.Features(tripleOverlap),
			"event feats": r.Seasonal().Features(tripleOverlap),
			"term feats":  r.Academic().Features(tripleOverlap),
			"goals":       a.FutureGoals,
		}
	}

	r := newResolver(t, fixedRand(0))
	want := make(map[string][]string)
	for name, list := range snapshot(r) {
		want[name] = append([]string(nil), list...)
	}
	for name, list := range snapshot(r) {
		require.NotEmpty(t, list, name)
		for i := range list {
			list[i] = "mutated"
		}
	}
	for _, rec := range r.Seasonal().Records() {
		rec.Content.Greetings[0] = "mutated"
	}

	assert.Equal(t, want, snapshot(r))
	assert.Equal(t, want, snapshot(newResolver(t, fixedRand(0))))
	assert.NotContains(t, r.PrimaryGreeting(utc(2024, 12, 10, 0)), "mutated")
}

// TestResolver_Concurrent hammers one resolver from many goroutines; run
// with -race.
func TestResolver_Concurrent(t *testing.T) {
	for name, rnd := range map[string]engine.Randomizer{
		"global": engine.GlobalRand{},
		"seeded": engine.NewSeededRand(99),
	} {
		t.Run(name, func(t *testing.T) {
			r := newResolver(t, rnd)
			cur, ok := r.Seasonal().Current(utc(2024, 12, 10, 0))
			require.True(t, ok)

			var wg conc.WaitGroup
			for i := 0; i < 32; i++ {
				wg.Go(func() {
					for j := 0; j < 50; j++ {
						g := r.PrimaryGreeting(utc(2024, 12, 10, 0))
						first, _, _ := strings.Cut(g, "\n\n")
						assert.Contains(t, cur.Content.Greetings, first)
						_ = r.Motivation(tripleOverlap)
						_ = r.MusicThemes(tripleOverlap)
						_ = r.StatusSummary(tripleOverlap)
					}
				})
			}
			wg.Wait()
		})
	}
}

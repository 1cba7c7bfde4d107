package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-occasions/internal/engine"
)

var (
	termStart = utc(2025, 1, 1, 0)
	termEnd   = utc(2025, 3, 2, 0)
)

func newTermCalendar(t *testing.T) *engine.AcademicCalendar {
	t.Helper()
	term := record("term", termStart, termEnd)
	term.Content.Season = engine.SeasonSpring
	cal, err := engine.NewAcademicCalendar([]engine.Record{term}, fixedRand(0), newCatalog(t))
	require.NoError(t, err)
	return cal
}

func TestAcademicCalendar_CountdownTiers(t *testing.T) {
	cal := newTermCalendar(t)
	day := 24 * time.Hour

	tests := []struct {
		name     string
		now      time.Time
		wantDays int
		want     string
	}{
		{"term end", termEnd, 0, "🎉 **Semester Complete!** 🎉"},
		{"exactly 7 is final week", termEnd.Add(-7 * day), 7, "🚨 **FINAL WEEK!** 🚨\n\n7 days left in the semester!"},
		{"just over 7", termEnd.Add(-7*day - time.Hour), 8, "⚡ **TWO WEEKS LEFT!** ⚡\n\n8 days remaining!"},
		{"exactly 14 is two weeks", termEnd.Add(-14 * day), 14, "⚡ **TWO WEEKS LEFT!** ⚡\n\n14 days remaining!"},
		{"just over 14", termEnd.Add(-14*day - time.Hour), 15, "📅 **15 days left in the semester!** 📅"},
		{"exactly 30 is generic", termEnd.Add(-30 * day), 30, "📅 **30 days left in the semester!** 📅"},
		{"just over 30", termEnd.Add(-30*day - time.Hour), 31, "📚 **31 days left in the semester!** 📚"},
		{"fractional day rounds up", termEnd.Add(-36 * time.Hour), 2, "🚨 **FINAL WEEK!** 🚨\n\n2 days left"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := cal.DaysRemaining(tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.wantDays, days)
			assert.Contains(t, cal.Countdown(tt.now), tt.want)
		})
	}

	_, ok := cal.DaysRemaining(termEnd.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, "📅 **No active semester detected.**\n\nStay ready for the next academic season!",
		cal.Countdown(termEnd.Add(time.Second)))
}

func TestAcademicCalendar_Intensity(t *testing.T) {
	cal := newTermCalendar(t)
	outside := utc(2025, 6, 1, 0)

	assert.Equal(t, engine.IntensityLow, cal.Intensity(termStart))
	assert.Equal(t, engine.IntensityCritical, cal.Intensity(termEnd))
	assert.Equal(t, engine.IntensityMedium, cal.Intensity(outside), "no current term defaults to medium")

	// Idempotent for the same instant.
	mid := termStart.Add(termEnd.Sub(termStart) / 2)
	assert.Equal(t, cal.Intensity(mid), cal.Intensity(mid))
	assert.Equal(t, engine.IntensityMedium, cal.Intensity(mid))

	assert.False(t, cal.IsExamPeriod(termStart))
	assert.False(t, cal.IsExamPeriod(outside))
	assert.True(t, cal.IsExamPeriod(termEnd))
}

func TestAcademicCalendar_TipsAndPlan(t *testing.T) {
	cal := newTermCalendar(t)
	outside := utc(2025, 6, 1, 0)

	assert.Equal(t, "📚 Start building good study habits early", cal.PreparationTips(termStart)[0])
	assert.Len(t, cal.PreparationTips(termEnd), 5)
	assert.Equal(t, "⚡ Increase study intensity gradually", cal.PreparationTips(outside)[0])

	want := "📚 **Name term Study Plan:**\n\n🌱 **Early Semester Plan:**\n" +
		"• Build strong foundations\n• Develop good study habits\n• Set achievable goals\n• Stay consistent"
	assert.Equal(t, want, cal.StudyPlan(termStart))
	assert.Contains(t, cal.StudyPlan(termEnd), "🔥 **CRITICAL EXAM MODE:**")
	assert.Equal(t, "📚 **General Study Plan:**\n\n• Set clear goals\n• Create a study schedule\n• Stay consistent\n• Practice regularly",
		cal.StudyPlan(outside))
}

func TestAcademicCalendar_Text(t *testing.T) {
	cal := newTermCalendar(t)

	assert.Equal(t, "academic", cal.Kind())
	assert.Equal(t, "hello term\n\nDescription term\n\n🎯 **Seasonal Features:**\n• feature term", cal.Greeting(termStart))
	assert.Equal(t, "🎯 **Name term Motivation:** push term", cal.Motivation(termStart))
	assert.Equal(t, "📚 **Name term** - Intensity: LOW", cal.StatusLine(termStart))
	assert.Equal(t, "📚 **Name term** - Intensity: CRITICAL", cal.StatusLine(termEnd))
	assert.Equal(t, []string{"spring", "bloom", "renewal"}, cal.MusicThemes(termStart))
	assert.Equal(t, []string{"feature term"}, cal.Features(termStart))
	assert.Empty(t, cal.MusicThemes(utc(2025, 6, 1, 0)))
}

func TestAcademicCalendar_Table(t *testing.T) {
	cal, err := engine.NewAcademicCalendar(engine.AcademicTermTable(), nil, newCatalog(t))
	require.NoError(t, err)

	cur, ok := cal.Current(utc(2024, 10, 15, 12))
	require.True(t, ok)
	assert.Equal(t, "fall-2024", cur.ID)
	assert.Equal(t, engine.SeasonFall, cur.Content.Season)

	// Between the spring term end and the summer session start.
	_, ok = cal.Current(utc(2025, 5, 17, 0))
	assert.False(t, ok)

	next := cal.Upcoming(utc(2025, 5, 17, 0), 2)
	require.Len(t, next, 2)
	assert.Equal(t, "summer-2025", next[0].ID)
	assert.Equal(t, "fall-2025", next[1].ID)
}

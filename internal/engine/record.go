package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-occasions/internal/config"
)

// Sentinel errors returned by calendar constructors. They always indicate a
// defect in a compiled-in table, never a runtime condition.
var (
	ErrInvalidRecord  = errors.New("invalid occasion record")
	ErrDuplicateID    = errors.New("duplicate record id")
	ErrEmptyVariants  = errors.New("empty variant list")
	ErrInvertedWindow = errors.New("window starts after it ends")
)

// Category names a pick-one text list of a record.
type Category int

const (
	CategoryGreeting Category = iota
	CategoryMotivation
)

func (c Category) String() string {
	switch c {
	case CategoryGreeting:
		return "greeting"
	case CategoryMotivation:
		return "motivation"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Season is the academic season of a term record.
type Season string

const (
	SeasonFall   Season = "fall"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
)

// Content is the calendar-specific payload of a record.
type Content struct {
	Greetings  []string
	Motivation []string
	Features   []string

	// Themes are music-theme tags (seasonal events only).
	Themes []string

	// Season and ExamTypes are set on academic terms only.
	Season    Season
	ExamTypes []string
}

// Variants returns the list for a pick-one category.
func (c Content) Variants(cat Category) []string {
	switch cat {
	case CategoryGreeting:
		return c.Greetings
	case CategoryMotivation:
		return c.Motivation
	default:
		return nil
	}
}

// Record is a named time window with its content. Start and End are both
// inclusive.
type Record struct {
	ID          string
	Name        string
	Description string
	Start       time.Time
	End         time.Time
	Content     Content
}

// clone copies every list so the result shares no backing array with c.
func (c Content) clone() Content {
	c.Greetings = slices.Clone(c.Greetings)
	c.Motivation = slices.Clone(c.Motivation)
	c.Features = slices.Clone(c.Features)
	c.Themes = slices.Clone(c.Themes)
	c.ExamTypes = slices.Clone(c.ExamTypes)
	return c
}

func (r Record) clone() Record {
	r.Content = r.Content.clone()
	return r
}

func cloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.clone()
	}
	return out
}

// Contains reports whether now lies within [Start, End].
func (r Record) Contains(now time.Time) bool {
	return !now.Before(r.Start) && !now.After(r.End)
}

// Progress is the elapsed fraction of the window at now, clamped to [0, 1].
// A zero-length window counts as fully elapsed.
func (r Record) Progress(now time.Time) float64 {
	length := r.End.Sub(r.Start)
	if length <= 0 {
		return 1
	}
	p := float64(now.Sub(r.Start)) / float64(length)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// validate rejects records a live query could not answer from.
func (r Record) validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id (name %q)", ErrInvalidRecord, r.Name)
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidRecord, r.ID, ErrInvertedWindow)
	}
	for _, cat := range []Category{CategoryGreeting, CategoryMotivation} {
		if len(r.Content.Variants(cat)) == 0 {
			return fmt.Errorf("%w: %s: %s: %w", ErrInvalidRecord, r.ID, cat, ErrEmptyVariants)
		}
	}
	return nil
}

// bullets renders items as "• item" lines.
func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = config.BulletPrefix + item
	}
	return strings.Join(lines, config.LineSeparator)
}

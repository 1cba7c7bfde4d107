package engine

import (
	"fmt"
	"slices"
	"time"
)

// WindowCalendar resolves occasions from an explicit list of time windows.
//
// The list is kept in declared order and is never assumed sorted. When
// windows overlap, the first declared match wins.
type WindowCalendar struct {
	records []Record
	rnd     Randomizer
}

// NewWindowCalendar validates records and takes a private copy of them.
// Any invalid record rejects the whole table.
func NewWindowCalendar(records []Record, rnd Randomizer) (*WindowCalendar, error) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: %w: %s", ErrInvalidRecord, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	if rnd == nil {
		rnd = GlobalRand{}
	}
	return &WindowCalendar{
		records: cloneRecords(records),
		rnd:     rnd,
	}, nil
}

// Len returns the number of records in the table.
func (c *WindowCalendar) Len() int {
	return len(c.records)
}

// Records returns a deep copy of the table in declared order.
func (c *WindowCalendar) Records() []Record {
	return cloneRecords(c.records)
}

// Current returns a copy of the first record in declared order containing now.
func (c *WindowCalendar) Current(now time.Time) (Record, bool) {
	if r, ok := c.current(now); ok {
		return r.clone(), true
	}
	return Record{}, false
}

// current returns the stored record itself; callers must not modify it.
func (c *WindowCalendar) current(now time.Time) (Record, bool) {
	for _, r := range c.records {
		if r.Contains(now) {
			return r, true
		}
	}
	return Record{}, false
}

// Upcoming returns up to limit records starting strictly after now, ordered
// by start time. Records sharing a start keep their declared order.
func (c *WindowCalendar) Upcoming(now time.Time, limit int) []Record {
	if limit <= 0 {
		return nil
	}
	var out []Record
	for _, r := range c.records {
		if r.Start.After(now) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return a.Start.Compare(b.Start)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return cloneRecords(out)
}

// IsActive reports whether the record with id exists and contains now.
func (c *WindowCalendar) IsActive(id string, now time.Time) bool {
	for _, r := range c.records {
		if r.ID == id {
			return r.Contains(now)
		}
	}
	return false
}

// PickVariant draws one string of cat from the current record. It returns
// fallback when nothing is current.
func (c *WindowCalendar) PickVariant(now time.Time, cat Category, fallback string) string {
	r, ok := c.current(now)
	if !ok {
		return fallback
	}
	if v, ok := pick(c.rnd, r.Content.Variants(cat)); ok {
		return v
	}
	return fallback
}

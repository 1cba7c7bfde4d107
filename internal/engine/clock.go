package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Outer adapters read it once per request and pass the instant down; the
// calendars themselves only ever receive an explicit now.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time in UTC, the single zone of the occasion tables.
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

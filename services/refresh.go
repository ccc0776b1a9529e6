package services

import (
	"log"
	"time"
)

// RefreshBoundary is the fixed daily wall-clock instant that anchors cache
// expiry and the freshness fields reported to clients. It is a pure function
// of the current time, not stored state.
type RefreshBoundary struct {
	Hour     int
	Location *time.Location
}

// NewRefreshBoundary creates a boundary at the given hour in the given
// timezone, falling back to UTC when the timezone is unknown.
func NewRefreshBoundary(hour int, timezone string) *RefreshBoundary {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("Unknown timezone %q, falling back to UTC: %v", timezone, err)
		loc = time.UTC
	}
	return &RefreshBoundary{Hour: hour, Location: loc}
}

// Last returns the most recent boundary instant at or before now.
func (b *RefreshBoundary) Last(now time.Time) time.Time {
	local := now.In(b.Location)
	boundary := time.Date(local.Year(), local.Month(), local.Day(), b.Hour, 0, 0, 0, b.Location)
	if local.Before(boundary) {
		boundary = boundary.AddDate(0, 0, -1)
	}
	return boundary
}

// Next returns the first boundary instant strictly after now.
func (b *RefreshBoundary) Next(now time.Time) time.Time {
	return b.Last(now).AddDate(0, 0, 1)
}

// SecondsUntilNext returns the whole seconds remaining until the next
// boundary crossing.
func (b *RefreshBoundary) SecondsUntilNext(now time.Time) int {
	return int(b.Next(now).Sub(now).Seconds())
}

// FormatStamp renders a boundary instant the way the dashboard displays it,
// e.g. "2026-08-28 08:00 AM EST". The zone suffix is fixed regardless of
// daylight saving, matching what clients already parse.
func (b *RefreshBoundary) FormatStamp(t time.Time) string {
	return t.In(b.Location).Format("2006-01-02 03:04 PM") + " EST"
}

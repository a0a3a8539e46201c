package booking

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// endOfDay is the exclusive end-of-day boundary.  A booking or closing
// time may end exactly at midnight; it is stored as "24:00" so the
// half-open interval stays on one calendar date.
const endOfDay = "24:00"

// parseClock converts a "HH:MM" string to minutes since midnight.
// "24:00" is accepted and yields 1440; no later minute exists.
func parseClock(s string) (int, error) {
	if s == endOfDay {
		return 24 * 60, nil
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock renders minutes since midnight as "HH:MM".  This is the
// canonical minute-precision representation every stored time uses;
// 1440 renders as "24:00" and round-trips through parseClock.
func formatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// parseDate parses a "YYYY-MM-DD" calendar date in UTC.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// startAt combines a reservation date and start time into an absolute
// UTC instant.  Used by the grace-period and early-seating guards.
func startAt(date, clock string) (time.Time, error) {
	return time.Parse(dateLayout+" "+clockLayout, date+" "+clock)
}

// overlaps reports whether two half-open minute intervals intersect.
// Touching boundaries do not conflict: [10:00,12:00) and [12:00,14:00)
// coexist on the same table.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

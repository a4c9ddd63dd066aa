package generic

import (
	"time"
)

// =============================================================================
// CALENDAR DATES - Records carry dates as "YYYY-MM-DD" strings
// =============================================================================

// DateLayout is the wire format of every calendar date field. Dates in this
// format sort correctly as plain strings.
const DateLayout = "2006-01-02"

// Clock returns the current time. Handlers take one so tests can pin "today".
type Clock func() time.Time

// Today formats the clock's current UTC date.
func (c Clock) Today() string {
	if c == nil {
		c = time.Now
	}
	return c().UTC().Format(DateLayout)
}

// ParseDate parses a calendar date field.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// IsDate reports whether s is a valid calendar date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// DaysBetween counts whole days from -> to (negative if to is earlier).
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

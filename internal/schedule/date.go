package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Weekday names as stored on courts. Indexed by time.Weekday (Sunday = 0).
var weekdayNames = [7]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// IsWeekdayName reports whether s is one of the seven weekday names.
func IsWeekdayName(s string) bool {
	for _, n := range weekdayNames {
		if s == n {
			return true
		}
	}
	return false
}

// Date is a zone-less calendar day in "YYYY-MM-DD" form. The fixed-width,
// zero-padded layout makes lexicographic comparison equal to chronological
// comparison, so Date values compare with plain < and >.
type Date string

// ParseDate validates s as a real calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", ErrMalformedDate
	}
	// time.Parse tolerates some non-canonical inputs; re-render to be strict.
	if t.Format(dateLayout) != s {
		return "", ErrMalformedDate
	}
	return Date(s), nil
}

// Weekday returns the Spanish lowercase weekday name for the date,
// e.g. "lunes" for a Monday. Returns "" for a zero or malformed Date.
func (d Date) Weekday() string {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return ""
	}
	return weekdayNames[t.Weekday()]
}

// Before reports whether d falls before o.
func (d Date) Before(o Date) bool {
	return string(d) < string(o)
}

func (d Date) String() string {
	return string(d)
}

// Clock supplies "today" so that every past/future comparison in the system
// agrees on the same anchor. Production uses a single operational timezone;
// tests inject a fixed date.
type Clock interface {
	Today() Date
}

type tzClock struct {
	loc *time.Location
}

// NewClock creates a Clock pinned to the named IANA timezone.
func NewClock(timezone string) (Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &tzClock{loc: loc}, nil
}

func (c *tzClock) Today() Date {
	return Date(time.Now().In(c.loc).Format(dateLayout))
}

// FixedClock is a Clock that always reports the same day.
type FixedClock Date

func (c FixedClock) Today() Date {
	return Date(c)
}

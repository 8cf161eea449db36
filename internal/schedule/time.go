package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTime = errors.New("malformed time, expected HH:MM")
	ErrMalformedDate = errors.New("malformed date, expected YYYY-MM-DD")
)

// BlockMinutes is the booking granularity: the operating window of a court is
// divided into one-hour blocks for occupancy reporting.
const BlockMinutes = 60

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrMalformedTime
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrMalformedTime
		}
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')

	if hour > 23 || minute > 59 {
		return 0, ErrMalformedTime
	}

	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Interval is a half-open [Start, End) range of minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
// A booking ending at 10:00 does not conflict with one starting at 10:00.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains reports whether o lies entirely within i.
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

// Minutes returns the length of the interval.
func (i Interval) Minutes() int {
	return i.End - i.Start
}

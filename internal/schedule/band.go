package schedule

import "errors"

var ErrUnknownBand = errors.New("unknown time band")

// Band is a named coarse subdivision of the day used for availability search.
type Band string

const (
	BandMorning   Band = "morning"
	BandAfternoon Band = "afternoon"
	BandEvening   Band = "evening"
)

// bandIntervals binds each band to its fixed window. Extending this set also
// requires updating the caller-facing documentation of the enumeration.
var bandIntervals = map[Band]Interval{
	BandMorning:   {Start: 8 * 60, End: 12 * 60},
	BandAfternoon: {Start: 12 * 60, End: 18 * 60},
	BandEvening:   {Start: 18 * 60, End: 22 * 60},
}

// ParseBand validates a band name and returns its interval.
func ParseBand(s string) (Band, Interval, error) {
	b := Band(s)
	iv, ok := bandIntervals[b]
	if !ok {
		return "", Interval{}, ErrUnknownBand
	}
	return b, iv, nil
}

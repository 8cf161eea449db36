package reservation

import (
	"github.com/canchapp/canchapp-backend/internal/court"
	"github.com/canchapp/canchapp-backend/internal/schedule"
)

// parseSlot turns the wire form of a booking slot into domain values.
func parseSlot(dateStr, startStr, endStr string) (schedule.Date, schedule.Interval, error) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return "", schedule.Interval{}, ErrMalformedDate
	}
	start, err := schedule.ParseClock(startStr)
	if err != nil {
		return "", schedule.Interval{}, ErrMalformedTime
	}
	end, err := schedule.ParseClock(endStr)
	if err != nil {
		return "", schedule.Interval{}, ErrMalformedTime
	}
	return date, schedule.Interval{Start: start, End: end}, nil
}

// ParseFilterDate validates a date query parameter in YYYY-MM-DD form.
func ParseFilterDate(s string) (schedule.Date, error) {
	d, err := schedule.ParseDate(s)
	if err != nil {
		return "", ErrMalformedDate
	}
	return d, nil
}

// checkSlot enforces the court-specific constraints for a candidate booking.
// Each rule reports its own distinct error.
func checkSlot(c *court.Court, date schedule.Date, iv schedule.Interval, peopleCount int) error {
	if iv.Start >= iv.End {
		return ErrInvalidInterval
	}
	if !c.Bookable() {
		return ErrCourtUnavailable
	}
	if !c.OperatesOn(date.Weekday()) {
		return ErrNonOperatingDay
	}
	if !c.Window().Contains(iv) {
		return ErrOutOfWindow
	}
	if peopleCount < 1 || peopleCount > c.PlayerCapacity {
		return ErrCapacityExceeded
	}
	return nil
}

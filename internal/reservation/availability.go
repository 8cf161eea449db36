package reservation

import (
	"sort"

	"github.com/canchapp/canchapp-backend/internal/schedule"
)

// OccupiedBlocks partitions the operating window into fixed-size blocks and
// returns the start minute of every block that intersects a non-cancelled
// reservation, in ascending order.
func OccupiedBlocks(window schedule.Interval, reservations []*Reservation) []int {
	var occupied []int
	for block := window.Start; block+schedule.BlockMinutes <= window.End; block += schedule.BlockMinutes {
		bi := schedule.Interval{Start: block, End: block + schedule.BlockMinutes}
		for _, r := range reservations {
			if r.Status == StatusCancelled {
				continue
			}
			if bi.Overlaps(r.Interval()) {
				occupied = append(occupied, block)
				break
			}
		}
	}
	return occupied
}

// FullyBookedDates returns, in ascending order, every date whose summed
// non-cancelled reservation minutes reach the length of the operating window.
//
// This is a known approximation: it does not consider a minimum booking
// length, so a date whose remaining free gaps are individually too short to
// book is still reported as available.
func FullyBookedDates(window schedule.Interval, reservations []*Reservation) []schedule.Date {
	total := window.Minutes()
	if total <= 0 {
		return nil
	}

	booked := make(map[schedule.Date]int)
	for _, r := range reservations {
		if r.Status == StatusCancelled {
			continue
		}
		booked[r.Date] += r.Interval().Minutes()
	}

	var dates []schedule.Date
	for d, minutes := range booked {
		if minutes >= total {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

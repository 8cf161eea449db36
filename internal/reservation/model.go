package reservation

import (
	"net/http"
	"time"

	"github.com/canchapp/canchapp-backend/internal/pkg/apperror"
	"github.com/canchapp/canchapp-backend/internal/schedule"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "reservation not found")
	ErrCourtNotFound    = apperror.New(http.StatusNotFound, "court not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrMalformedDate    = apperror.New(http.StatusBadRequest, "invalid date format, use YYYY-MM-DD")
	ErrMalformedTime    = apperror.New(http.StatusBadRequest, "invalid time format, use HH:MM")
	ErrInvalidInterval  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrOutOfWindow      = apperror.New(http.StatusBadRequest, "requested time is outside the court operating hours")
	ErrNonOperatingDay  = apperror.New(http.StatusBadRequest, "court does not operate on that day")
	ErrCapacityExceeded = apperror.New(http.StatusBadRequest, "people count is outside the court capacity")
	ErrCourtUnavailable = apperror.New(http.StatusBadRequest, "court is not available for reservations")
	ErrPastDate         = apperror.New(http.StatusBadRequest, "cannot book past dates")
	ErrCourtConflict    = apperror.New(http.StatusConflict, "court already reserved in that time slot")
	ErrSelfConflict     = apperror.New(http.StatusConflict, "you already hold a reservation in that time slot for this court")
	ErrTerminalState    = apperror.New(http.StatusBadRequest, "reservation is already used or cancelled")
	ErrInvalidBand      = apperror.New(http.StatusBadRequest, "invalid time band")
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusConfirmed Status = "confirmed" // initial state, slot is held
	StatusUsed      Status = "used"      // checked in via verification code
	StatusCancelled Status = "cancelled" // released; no longer blocks the slot
)

// Terminal reports whether the status permits no further mutation.
func (s Status) Terminal() bool {
	return s == StatusUsed || s == StatusCancelled
}

// CanTransitionTo is the single transition table every mutator consults.
// confirmed -> confirmed covers edits: the record is replaced in place after
// re-validation.
func (s Status) CanTransitionTo(to Status) bool {
	if s != StatusConfirmed {
		return false
	}
	switch to {
	case StatusConfirmed, StatusUsed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Reservation is a claim on a court for one date and a half-open time
// interval within that date.
type Reservation struct {
	ID                string
	CourtID           string
	CourtName         string // joined, read-only
	UserID            string
	Date              schedule.Date
	StartMin          int // minutes since midnight
	EndMin            int
	PeopleCount       int
	ReservedFor       string
	VerifyCode        string // short numeric secret for walk-in check-in
	IdentificationNum string // requester's identification, used for check-in lookup
	Status            Status
	CancelledBy       *string
	CancelReason      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Interval returns the booked time range.
func (r *Reservation) Interval() schedule.Interval {
	return schedule.Interval{Start: r.StartMin, End: r.EndMin}
}

// Filter defines parameters for staff reservation listings.
type Filter struct {
	UserID   string
	CourtID  string
	Status   string
	DateFrom schedule.Date
	DateTo   schedule.Date
	Page     int
	PageSize int
}

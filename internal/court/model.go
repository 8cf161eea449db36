package court

import (
	"errors"
	"time"

	"github.com/canchapp/canchapp-backend/internal/schedule"
)

var (
	ErrNotFound            = errors.New("court not found")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrInvalidSportType    = errors.New("invalid sport type")
	ErrInvalidWindow       = errors.New("opening hour must be before closing hour")
	ErrInvalidOperatingDay = errors.New("invalid operating day name")
	ErrInvalidCapacity     = errors.New("player capacity must be at least 1")
	ErrInvalidStatus       = errors.New("invalid court status")
	ErrAlreadyDeleted      = errors.New("court is already deleted")
)

// Status is the activation state of a court. A court under maintenance is
// kept out of every availability and reservation path.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
)

// ValidSportTypes is the closed set of sport categories.
var ValidSportTypes = []string{"baloncesto", "voleibol"}

// Court represents a bookable physical court with a fixed daily operating
// window and the weekdays on which it operates.
type Court struct {
	ID             string
	Name           string
	SportType      string
	Location       string
	Indoor         bool
	PlayerCapacity int
	HourStart      int // minutes since midnight, inclusive
	HourEnd        int // minutes since midnight, exclusive
	OperatingDays  []string
	Status         Status
	HasLight       bool
	Description    *string
	ImagePath      *string
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Window returns the daily operating window as a half-open interval.
func (c *Court) Window() schedule.Interval {
	return schedule.Interval{Start: c.HourStart, End: c.HourEnd}
}

// OperatesOn reports whether the court operates on the given weekday name.
func (c *Court) OperatesOn(day string) bool {
	for _, d := range c.OperatingDays {
		if d == day {
			return true
		}
	}
	return false
}

// Bookable reports whether the court may accept new reservations at all.
func (c *Court) Bookable() bool {
	return c.Status == StatusActive && !c.IsDeleted
}

// Filter defines parameters for listing courts. Soft-deleted courts are
// always excluded.
type Filter struct {
	SportType string
	Page      int
	PageSize  int
}

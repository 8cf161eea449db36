package http

import (
	"time"

	"github.com/canchapp/canchapp-backend/internal/pkg/request"
	"github.com/canchapp/canchapp-backend/internal/reservation"
	"github.com/canchapp/canchapp-backend/internal/schedule"
)

type CreateReservationRequest struct {
	CourtID     string `json:"court_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	PeopleCount int    `json:"people_count" binding:"required,min=1"`
	ReservedFor string `json:"reserved_for" binding:"omitempty,max=120"`
}

type EditReservationRequest struct {
	CourtID     string `json:"court_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	PeopleCount int    `json:"people_count" binding:"required,min=1"`
	ReservedFor string `json:"reserved_for" binding:"omitempty,max=120"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=300"`
}

// VerifyRequest carries the walk-in check-in credentials.
type VerifyRequest struct {
	IdentificationNum string `json:"identification_num" binding:"required"`
	VerifyCode        string `json:"verify_code" binding:"required,len=4,numeric"`
}

type ListReservationsRequest struct {
	request.ListParams
	CourtID  string `form:"court_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=confirmed used cancelled"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type AvailableCourtsRequest struct {
	Date      string `form:"date" binding:"required"`
	Band      string `form:"band" binding:"required,oneof=morning afternoon evening"`
	SportType string `form:"sport_type" binding:"required,oneof=baloncesto voleibol"`
}

type ReservationResponse struct {
	ID           string    `json:"id"`
	CourtID      string    `json:"court_id"`
	CourtName    string    `json:"court_name"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	PeopleCount  int       `json:"people_count"`
	ReservedFor  string    `json:"reserved_for"`
	VerifyCode   string    `json:"verify_code,omitempty"`
	Status       string    `json:"status"`
	CancelReason *string   `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		CourtID:      r.CourtID,
		CourtName:    r.CourtName,
		UserID:       r.UserID,
		Date:         r.Date.String(),
		StartTime:    schedule.FormatClock(r.StartMin),
		EndTime:      schedule.FormatClock(r.EndMin),
		PeopleCount:  r.PeopleCount,
		ReservedFor:  r.ReservedFor,
		VerifyCode:   r.VerifyCode,
		Status:       string(r.Status),
		CancelReason: r.CancelReason,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FoundReservationResponse is the front-desk lookup view. It omits the
// requester identity and the verification code on purpose: the caller
// already holds the code, and the desk only needs the slot details.
type FoundReservationResponse struct {
	ID          string `json:"id"`
	CourtName   string `json:"court_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	PeopleCount int    `json:"people_count"`
	ReservedFor string `json:"reserved_for"`
	Status      string `json:"status"`
}

func NewFoundReservationResponse(r *reservation.Reservation) FoundReservationResponse {
	return FoundReservationResponse{
		ID:          r.ID,
		CourtName:   r.CourtName,
		Date:        r.Date.String(),
		StartTime:   schedule.FormatClock(r.StartMin),
		EndTime:     schedule.FormatClock(r.EndMin),
		PeopleCount: r.PeopleCount,
		ReservedFor: r.ReservedFor,
		Status:      string(r.Status),
	}
}

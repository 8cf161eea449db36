package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/canchapp/canchapp-backend/internal/auth"
	courtHttp "github.com/canchapp/canchapp-backend/internal/court/http"
	"github.com/canchapp/canchapp-backend/internal/pkg/request"
	"github.com/canchapp/canchapp-backend/internal/pkg/response"
	"github.com/canchapp/canchapp-backend/internal/reservation"
	"github.com/canchapp/canchapp-backend/internal/user"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func isStaff(c *gin.Context) bool {
	role := auth.GetUserRole(c)
	return role == string(user.RoleStaff) || role == string(user.RoleAdmin)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), reservation.CreateRequest{
		UserID:      auth.GetUserID(c),
		CourtID:     body.CourtID,
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		PeopleCount: body.PeopleCount,
		ReservedFor: body.ReservedFor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if r.UserID != auth.GetUserID(c) && !isStaff(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

// List is the staff view over all reservations.
func (h *Handler) List(c *gin.Context) {
	var q ListReservationsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := reservation.Filter{
		UserID:   q.UserID,
		CourtID:  q.CourtID,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.DateFrom != "" {
		d, err := reservation.ParseFilterDate(q.DateFrom)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateFrom = d
	}
	if q.DateTo != "" {
		d, err := reservation.ParseFilterDate(q.DateTo)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.DateTo = d
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ReservationResponse, len(items))
	for i, r := range items {
		out[i] = NewReservationResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(out, q.Page, q.PageSize, total))
}

// ListMine returns the caller's own reservations.
func (h *Handler) ListMine(c *gin.Context) {
	var q ListReservationsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := reservation.Filter{
		UserID:   auth.GetUserID(c),
		CourtID:  q.CourtID,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]ReservationResponse, len(items))
	for i, r := range items {
		out[i] = NewReservationResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(out, q.Page, q.PageSize, total))
}

func (h *Handler) Edit(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	var body EditReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if existing.UserID != auth.GetUserID(c) && !isStaff(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	r, err := h.service.Edit(c.Request.Context(), params.ID, reservation.EditRequest{
		CourtID:     body.CourtID,
		Date:        body.Date,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
		PeopleCount: body.PeopleCount,
		ReservedFor: body.ReservedFor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Cancel(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	// The body is optional; cancelling without a reason is fine.
	var body CancelReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	existing, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if existing.UserID != auth.GetUserID(c) && !isStaff(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	r, err := h.service.Cancel(c.Request.Context(), params.ID, auth.GetUserID(c), body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

// Verify redeems a reservation at the front desk: the visitor presents
// their identification number and the 4-digit code from the booking mail.
func (h *Handler) Verify(c *gin.Context) {
	var body VerifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.CheckIn(c.Request.Context(), body.IdentificationNum, body.VerifyCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r))
}

// Find looks up a confirmed reservation by the same credentials without
// consuming it.
func (h *Handler) Find(c *gin.Context) {
	var body VerifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.FindByVerification(c.Request.Context(), body.IdentificationNum, body.VerifyCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewFoundReservationResponse(r))
}

// AvailableCourts lists the courts free for a whole time band on a date.
func (h *Handler) AvailableCourts(c *gin.Context) {
	var q AvailableCourtsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	courts, err := h.service.AvailableCourts(c.Request.Context(), q.Date, q.Band, q.SportType)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]courtHttp.CourtResponse, len(courts))
	for i, ct := range courts {
		out[i] = courtHttp.NewCourtResponse(ct)
	}
	c.JSON(http.StatusOK, gin.H{"courts": out})
}

// OccupiedTimes lists the start of every occupied hour block for a court on
// a date, as HH:MM strings.
func (h *Handler) OccupiedTimes(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	date := c.Query("date")
	blocks, err := h.service.OccupiedBlocks(c.Request.Context(), params.ID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	if blocks == nil {
		blocks = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"occupied_times": blocks})
}

// UnavailableDates lists dates on which the court has no free time left.
func (h *Handler) UnavailableDates(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	dates, err := h.service.FullyBookedDates(c.Request.Context(), params.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	c.JSON(http.StatusOK, gin.H{"unavailable_dates": out})
}

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/canchapp/canchapp-backend/internal/court"
	"github.com/canchapp/canchapp-backend/internal/pkg/request"
	"github.com/canchapp/canchapp-backend/internal/pkg/response"
	"github.com/canchapp/canchapp-backend/internal/pkg/storage"
	"github.com/canchapp/canchapp-backend/internal/schedule"
)

const (
	maxImageBytes  = 5 << 20
	imageMaxWidth  = 1280
	imageMaxHeight = 1280
)

type Handler struct {
	service court.Service
	storage storage.Storage
}

func NewHandler(service court.Service, st storage.Storage) *Handler {
	return &Handler{service: service, storage: st}
}

// courtError maps domain errors to HTTP responses.
func courtError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, court.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
	case errors.Is(err, court.ErrEmptyName),
		errors.Is(err, court.ErrInvalidSportType),
		errors.Is(err, court.ErrInvalidWindow),
		errors.Is(err, court.ErrInvalidOperatingDay),
		errors.Is(err, court.ErrInvalidCapacity),
		errors.Is(err, court.ErrInvalidStatus),
		errors.Is(err, court.ErrAlreadyDeleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		response.Error(c, err)
	}
}

func parseWindow(startStr, endStr string) (int, int, error) {
	start, err := schedule.ParseClock(startStr)
	if err != nil {
		return 0, 0, err
	}
	end, err := schedule.ParseClock(endStr)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, end, err := parseWindow(body.HourStart, body.HourEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time format, use HH:MM"})
		return
	}

	created, err := h.service.Create(c.Request.Context(), court.CreateRequest{
		Name:           body.Name,
		SportType:      body.SportType,
		Location:       body.Location,
		Indoor:         body.Indoor,
		PlayerCapacity: body.PlayerCapacity,
		HourStart:      start,
		HourEnd:        end,
		OperatingDays:  body.OperatingDays,
		HasLight:       body.HasLight,
		Description:    body.Description,
	})
	if err != nil {
		courtError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCourtResponse(created))
}

func (h *Handler) Get(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		courtError(c, err)
		return
	}
	if ct.IsDeleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) List(c *gin.Context) {
	var q ListCourtsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	courts, total, err := h.service.List(c.Request.Context(), court.Filter{
		SportType: q.SportType,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		courtError(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	var body UpdateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := court.UpdateRequest{
		Name:           body.Name,
		SportType:      body.SportType,
		Location:       body.Location,
		Indoor:         body.Indoor,
		PlayerCapacity: body.PlayerCapacity,
		OperatingDays:  body.OperatingDays,
		HasLight:       body.HasLight,
		Description:    body.Description,
	}
	if body.HourStart != nil {
		start, err := schedule.ParseClock(*body.HourStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time format, use HH:MM"})
			return
		}
		req.HourStart = &start
	}
	if body.HourEnd != nil {
		end, err := schedule.ParseClock(*body.HourEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time format, use HH:MM"})
			return
		}
		req.HourEnd = &end
	}
	if body.Status != nil {
		st := court.Status(*body.Status)
		req.Status = &st
	}

	updated, err := h.service.Update(c.Request.Context(), params.ID, req)
	if err != nil {
		courtError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), params.ID); err != nil {
		courtError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage stores a normalized court photo and records its path.
func (h *Handler) UploadImage(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	normalized, err := storage.NormalizeImage(file, imageMaxWidth, imageMaxHeight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}

	path := fmt.Sprintf("courts/%s/%s.jpg", params.ID, uuid.NewString())
	if err := h.storage.Save(c.Request.Context(), path, normalized); err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.service.SetImage(c.Request.Context(), params.ID, path)
	if err != nil {
		// The court row could not be updated; do not leave the file behind.
		_ = h.storage.Delete(c.Request.Context(), path)
		courtError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(updated))
}

// GetImage streams the stored court photo.
func (h *Handler) GetImage(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid court id"})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), params.ID)
	if err != nil {
		courtError(c, err)
		return
	}
	if ct.ImagePath == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "court has no image"})
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), *ct.ImagePath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

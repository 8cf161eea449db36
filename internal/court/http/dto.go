package http

import (
	"time"

	"github.com/canchapp/canchapp-backend/internal/court"
	"github.com/canchapp/canchapp-backend/internal/pkg/request"
	"github.com/canchapp/canchapp-backend/internal/schedule"
)

type CreateCourtRequest struct {
	Name           string   `json:"name" binding:"required,max=120"`
	SportType      string   `json:"sport_type" binding:"required,oneof=baloncesto voleibol"`
	Location       string   `json:"location" binding:"omitempty,max=200"`
	Indoor         bool     `json:"indoor"`
	PlayerCapacity int      `json:"player_capacity" binding:"required,min=1"`
	HourStart      string   `json:"hour_start" binding:"required"`
	HourEnd        string   `json:"hour_end" binding:"required"`
	OperatingDays  []string `json:"operating_days" binding:"required,min=1"`
	HasLight       bool     `json:"has_light"`
	Description    *string  `json:"description" binding:"omitempty,max=500"`
}

type UpdateCourtRequest struct {
	Name           *string  `json:"name" binding:"omitempty,max=120"`
	SportType      *string  `json:"sport_type" binding:"omitempty,oneof=baloncesto voleibol"`
	Location       *string  `json:"location" binding:"omitempty,max=200"`
	Indoor         *bool    `json:"indoor"`
	PlayerCapacity *int     `json:"player_capacity" binding:"omitempty,min=1"`
	HourStart      *string  `json:"hour_start"`
	HourEnd        *string  `json:"hour_end"`
	OperatingDays  []string `json:"operating_days"`
	Status         *string  `json:"status" binding:"omitempty,oneof=active maintenance"`
	HasLight       *bool    `json:"has_light"`
	Description    *string  `json:"description" binding:"omitempty,max=500"`
}

type ListCourtsRequest struct {
	request.ListParams
	SportType string `form:"sport_type" binding:"omitempty,oneof=baloncesto voleibol"`
}

type CourtResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SportType      string    `json:"sport_type"`
	Location       string    `json:"location"`
	Indoor         bool      `json:"indoor"`
	PlayerCapacity int       `json:"player_capacity"`
	HourStart      string    `json:"hour_start"`
	HourEnd        string    `json:"hour_end"`
	OperatingDays  []string  `json:"operating_days"`
	Status         string    `json:"status"`
	HasLight       bool      `json:"has_light"`
	Description    *string   `json:"description,omitempty"`
	ImagePath      *string   `json:"image_path,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:             c.ID,
		Name:           c.Name,
		SportType:      c.SportType,
		Location:       c.Location,
		Indoor:         c.Indoor,
		PlayerCapacity: c.PlayerCapacity,
		HourStart:      schedule.FormatClock(c.HourStart),
		HourEnd:        schedule.FormatClock(c.HourEnd),
		OperatingDays:  c.OperatingDays,
		Status:         string(c.Status),
		HasLight:       c.HasLight,
		Description:    c.Description,
		ImagePath:      c.ImagePath,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

package court

import (
	"context"
	"strings"

	"github.com/canchapp/canchapp-backend/internal/schedule"
)

type CreateRequest struct {
	Name           string
	SportType      string
	Location       string
	Indoor         bool
	PlayerCapacity int
	HourStart      int
	HourEnd        int
	OperatingDays  []string
	HasLight       bool
	Description    *string
}

// UpdateRequest carries optional replacements; nil fields are left untouched.
type UpdateRequest struct {
	Name           *string
	SportType      *string
	Location       *string
	Indoor         *bool
	PlayerCapacity *int
	HourStart      *int
	HourEnd        *int
	OperatingDays  []string
	Status         *Status
	HasLight       *bool
	Description    *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	// ListBookable returns every active, non-deleted court of the given
	// sport type, without pagination. Used by availability search.
	ListBookable(ctx context.Context, sportType string) ([]*Court, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	SoftDelete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id string, path string) (*Court, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validSportType(t string) bool {
	for _, v := range ValidSportTypes {
		if t == v {
			return true
		}
	}
	return false
}

func validateCore(name string, sportType string, capacity, hourStart, hourEnd int, days []string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if !validSportType(sportType) {
		return ErrInvalidSportType
	}
	if capacity < 1 {
		return ErrInvalidCapacity
	}
	if hourStart >= hourEnd {
		return ErrInvalidWindow
	}
	for _, d := range days {
		if !schedule.IsWeekdayName(d) {
			return ErrInvalidOperatingDay
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if err := validateCore(req.Name, req.SportType, req.PlayerCapacity, req.HourStart, req.HourEnd, req.OperatingDays); err != nil {
		return nil, err
	}

	c := &Court{
		Name:           strings.TrimSpace(req.Name),
		SportType:      req.SportType,
		Location:       req.Location,
		Indoor:         req.Indoor,
		PlayerCapacity: req.PlayerCapacity,
		HourStart:      req.HourStart,
		HourEnd:        req.HourEnd,
		OperatingDays:  req.OperatingDays,
		Status:         StatusActive,
		HasLight:       req.HasLight,
		Description:    req.Description,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListBookable(ctx context.Context, sportType string) ([]*Court, error) {
	return s.repo.ListBookable(ctx, sportType)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.SportType != nil {
		c.SportType = *req.SportType
	}
	if req.Location != nil {
		c.Location = *req.Location
	}
	if req.Indoor != nil {
		c.Indoor = *req.Indoor
	}
	if req.PlayerCapacity != nil {
		c.PlayerCapacity = *req.PlayerCapacity
	}
	if req.HourStart != nil {
		c.HourStart = *req.HourStart
	}
	if req.HourEnd != nil {
		c.HourEnd = *req.HourEnd
	}
	if req.OperatingDays != nil {
		c.OperatingDays = req.OperatingDays
	}
	if req.Status != nil {
		if *req.Status != StatusActive && *req.Status != StatusMaintenance {
			return nil, ErrInvalidStatus
		}
		c.Status = *req.Status
	}
	if req.HasLight != nil {
		c.HasLight = *req.HasLight
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	// The merged record must still satisfy every invariant.
	if err := validateCore(c.Name, c.SportType, c.PlayerCapacity, c.HourStart, c.HourEnd, c.OperatingDays); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) SoftDelete(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.IsDeleted {
		return ErrAlreadyDeleted
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) SetImage(ctx context.Context, id string, path string) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ImagePath = &path
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

package reservation

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/canchapp/canchapp-backend/internal/court"
	"github.com/canchapp/canchapp-backend/internal/mailer"
	"github.com/canchapp/canchapp-backend/internal/schedule"
	"github.com/canchapp/canchapp-backend/internal/user"
)

const defaultCancelReason = "cancelled by administration"

type CreateRequest struct {
	UserID      string
	CourtID     string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	PeopleCount int
	ReservedFor string // optional; defaults to the requester's full name
}

// EditRequest replaces the slot of a confirmed reservation wholesale; it is
// re-validated exactly as a fresh booking, with the reservation itself
// excluded from the overlap set.
type EditRequest struct {
	CourtID     string
	Date        string
	StartTime   string
	EndTime     string
	PeopleCount int
	ReservedFor string // optional; empty keeps the current value
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	Edit(ctx context.Context, id string, req EditRequest) (*Reservation, error)
	Cancel(ctx context.Context, id, actorID, reason string) (*Reservation, error)
	CheckIn(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error)
	FindByVerification(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	AvailableCourts(ctx context.Context, date, band, sportType string) ([]*court.Court, error)
	OccupiedBlocks(ctx context.Context, courtID, date string) ([]string, error)
	FullyBookedDates(ctx context.Context, courtID string) ([]schedule.Date, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	userService  user.Service
	clock        schedule.Clock
	notifier     mailer.Notifier
}

func NewService(repo Repository, courtService court.Service, userService user.Service, clock schedule.Clock, notifier mailer.Notifier) Service {
	return &service{
		repo:         repo,
		courtService: courtService,
		userService:  userService,
		clock:        clock,
		notifier:     notifier,
	}
}

// newVerifyCode generates the 4-digit walk-in PIN.
func newVerifyCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("generate verify code failed: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

func (s *service) getCourt(ctx context.Context, id string) (*court.Court, error) {
	c, err := s.courtService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return c, nil
}

// checkOverlaps runs the two conflict queries for the court's day: the
// requester's own bookings first, so re-booking your own slot reports that,
// then the court-level set. Both are same-court scoped; the same slot on
// another court is a valid booking. excludeID skips the reservation being
// edited.
func (s *service) checkOverlaps(ctx context.Context, courtID string, date schedule.Date, iv schedule.Interval, excludeID, userID string) error {
	own, err := s.repo.FindOverlap(ctx, courtID, date, iv, excludeID, userID)
	if err != nil {
		return err
	}
	if own != nil {
		return ErrSelfConflict
	}

	conflicting, err := s.repo.FindOverlap(ctx, courtID, date, iv, excludeID, "")
	if err != nil {
		return err
	}
	if conflicting != nil {
		return ErrCourtConflict
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	date, iv, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if date.Before(s.clock.Today()) {
		return nil, ErrPastDate
	}

	c, err := s.getCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if err := checkSlot(c, date, iv, req.PeopleCount); err != nil {
		return nil, err
	}
	if err := s.checkOverlaps(ctx, c.ID, date, iv, "", req.UserID); err != nil {
		return nil, err
	}

	u, err := s.userService.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reservedFor := strings.TrimSpace(req.ReservedFor)
	if reservedFor == "" {
		reservedFor = u.FullName()
	}

	code, err := newVerifyCode()
	if err != nil {
		return nil, err
	}

	r := &Reservation{
		CourtID:           c.ID,
		CourtName:         c.Name,
		UserID:            u.ID,
		Date:              date,
		StartMin:          iv.Start,
		EndMin:            iv.End,
		PeopleCount:       req.PeopleCount,
		ReservedFor:       reservedFor,
		VerifyCode:        code,
		IdentificationNum: u.IdentificationNum,
		Status:            StatusConfirmed,
	}

	// The storage layer holds the authoritative slot guard: a racing insert
	// for an overlapping slot comes back as ErrCourtConflict here, even when
	// the pre-check above saw the slot free.
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.notify(func() error {
		return s.notifier.ReservationConfirmed(mailer.ReservationEmail{
			To:          u.Email,
			Name:        u.Name,
			CourtName:   c.Name,
			Date:        r.Date.String(),
			StartTime:   schedule.FormatClock(r.StartMin),
			EndTime:     schedule.FormatClock(r.EndMin),
			ReservedFor: r.ReservedFor,
			VerifyCode:  r.VerifyCode,
		})
	})

	return r, nil
}

func (s *service) Edit(ctx context.Context, id string, req EditRequest) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Status.CanTransitionTo(StatusConfirmed) {
		return nil, ErrTerminalState
	}

	date, iv, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if date.Before(s.clock.Today()) {
		return nil, ErrPastDate
	}

	c, err := s.getCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if err := checkSlot(c, date, iv, req.PeopleCount); err != nil {
		return nil, err
	}
	if err := s.checkOverlaps(ctx, c.ID, date, iv, r.ID, r.UserID); err != nil {
		return nil, err
	}

	r.CourtID = c.ID
	r.CourtName = c.Name
	r.Date = date
	r.StartMin = iv.Start
	r.EndMin = iv.End
	r.PeopleCount = req.PeopleCount
	if strings.TrimSpace(req.ReservedFor) != "" {
		r.ReservedFor = strings.TrimSpace(req.ReservedFor)
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if u, err := s.userService.GetByID(ctx, r.UserID); err == nil {
		s.notify(func() error {
			return s.notifier.ReservationModified(mailer.ReservationEmail{
				To:          u.Email,
				Name:        u.Name,
				CourtName:   c.Name,
				Date:        r.Date.String(),
				StartTime:   schedule.FormatClock(r.StartMin),
				EndTime:     schedule.FormatClock(r.EndMin),
				ReservedFor: r.ReservedFor,
			})
		})
	}

	return r, nil
}

func (s *service) Cancel(ctx context.Context, id, actorID, reason string) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.Status.CanTransitionTo(StatusCancelled) {
		return nil, ErrTerminalState
	}

	if strings.TrimSpace(reason) == "" {
		reason = defaultCancelReason
	}

	r.Status = StatusCancelled
	r.CancelledBy = &actorID
	r.CancelReason = &reason

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if u, err := s.userService.GetByID(ctx, r.UserID); err == nil {
		s.notify(func() error {
			return s.notifier.ReservationCancelled(mailer.ReservationEmail{
				To:        u.Email,
				Name:      u.Name,
				CourtName: r.CourtName,
				Date:      r.Date.String(),
				StartTime: schedule.FormatClock(r.StartMin),
				EndTime:   schedule.FormatClock(r.EndMin),
				Reason:    reason,
			})
		})
	}

	return r, nil
}

func (s *service) CheckIn(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error) {
	r, err := s.repo.GetByVerification(ctx, identificationNum, verifyCode)
	if err != nil {
		return nil, err
	}
	if !r.Status.CanTransitionTo(StatusUsed) {
		return nil, ErrTerminalState
	}
	// A reservation for a past date can no longer be redeemed.
	if r.Date.Before(s.clock.Today()) {
		return nil, ErrPastDate
	}

	r.Status = StatusUsed

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) FindByVerification(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error) {
	r, err := s.repo.GetByVerification(ctx, identificationNum, verifyCode)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusConfirmed {
		return nil, ErrTerminalState
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) AvailableCourts(ctx context.Context, dateStr, bandStr, sportType string) ([]*court.Court, error) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, ErrMalformedDate
	}
	_, bandIv, err := schedule.ParseBand(bandStr)
	if err != nil {
		return nil, ErrInvalidBand
	}

	candidates, err := s.courtService.ListBookable(ctx, sportType)
	if err != nil {
		return nil, err
	}

	day := date.Weekday()
	available := make([]*court.Court, 0, len(candidates))
	for _, c := range candidates {
		if !c.OperatesOn(day) {
			continue
		}
		conflicting, err := s.repo.FindOverlap(ctx, c.ID, date, bandIv, "", "")
		if err != nil {
			return nil, err
		}
		if conflicting == nil {
			available = append(available, c)
		}
	}
	return available, nil
}

func (s *service) OccupiedBlocks(ctx context.Context, courtID, dateStr string) ([]string, error) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		return nil, ErrMalformedDate
	}
	c, err := s.getCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListForCourtDate(ctx, c.ID, date)
	if err != nil {
		return nil, err
	}

	blocks := OccupiedBlocks(c.Window(), reservations)
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = schedule.FormatClock(b)
	}
	return out, nil
}

func (s *service) FullyBookedDates(ctx context.Context, courtID string) ([]schedule.Date, error) {
	c, err := s.getCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	reservations, err := s.repo.ListActiveByCourt(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return FullyBookedDates(c.Window(), reservations), nil
}

// notify runs a mail send in the background; delivery failures are logged
// and never affect the reservation outcome.
func (s *service) notify(send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("reservation mail failed: %v", err)
		}
	}()
}

package reservation

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canchapp/canchapp-backend/internal/court"
	"github.com/canchapp/canchapp-backend/internal/mailer"
	"github.com/canchapp/canchapp-backend/internal/schedule"
	"github.com/canchapp/canchapp-backend/internal/user"
)

// memRepo is an in-memory Repository. Create and Update enforce the same
// no-overlap rule the database exclusion constraint enforces, so conflict
// behavior under concurrency is testable without a database.
type memRepo struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*Reservation
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[string]*Reservation)}
}

func (m *memRepo) overlapLocked(r *Reservation) bool {
	for _, other := range m.rows {
		if other.ID == r.ID || other.Status == StatusCancelled {
			continue
		}
		if other.CourtID == r.CourtID && other.Date == r.Date && other.Interval().Overlaps(r.Interval()) {
			return true
		}
	}
	return false
}

func (m *memRepo) Create(ctx context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Status != StatusCancelled && m.overlapLocked(r) {
		return ErrCourtConflict
	}

	m.seq++
	r.ID = "res-" + strconv.Itoa(m.seq)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	stored := *r
	m.rows[r.ID] = &stored
	return nil
}

func (m *memRepo) Update(ctx context.Context, r *Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[r.ID]; !ok {
		return ErrNotFound
	}
	if r.Status != StatusCancelled && m.overlapLocked(r) {
		return ErrCourtConflict
	}
	r.UpdatedAt = time.Now()
	stored := *r
	m.rows[r.ID] = &stored
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) GetByVerification(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rows {
		if r.IdentificationNum == identificationNum && r.VerifyCode == verifyCode {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Reservation
	for _, r := range m.rows {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.CourtID != "" && r.CourtID != filter.CourtID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memRepo) FindOverlap(ctx context.Context, courtID string, date schedule.Date, iv schedule.Interval, excludeID, userID string) (*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rows {
		if r.Status == StatusCancelled || r.Date != date || r.CourtID != courtID {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if userID != "" && r.UserID != userID {
			continue
		}
		if r.Interval().Overlaps(iv) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ListForCourtDate(ctx context.Context, courtID string, date schedule.Date) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Reservation
	for _, r := range m.rows {
		if r.CourtID == courtID && r.Date == date && r.Status != StatusCancelled {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memRepo) ListActiveByCourt(ctx context.Context, courtID string) ([]*Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Reservation
	for _, r := range m.rows {
		if r.CourtID == courtID && r.Status != StatusCancelled {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCourtService struct {
	courts map[string]*court.Court
}

func (f *fakeCourtService) GetByID(ctx context.Context, id string) (*court.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, court.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourtService) ListBookable(ctx context.Context, sportType string) ([]*court.Court, error) {
	var out []*court.Court
	for _, c := range f.courts {
		if c.Bookable() && c.SportType == sportType {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCourtService) Create(ctx context.Context, req court.CreateRequest) (*court.Court, error) {
	return nil, errors.New("not supported")
}

func (f *fakeCourtService) List(ctx context.Context, filter court.Filter) ([]*court.Court, int, error) {
	return nil, 0, errors.New("not supported")
}

func (f *fakeCourtService) Update(ctx context.Context, id string, req court.UpdateRequest) (*court.Court, error) {
	return nil, errors.New("not supported")
}

func (f *fakeCourtService) SoftDelete(ctx context.Context, id string) error {
	return errors.New("not supported")
}

func (f *fakeCourtService) SetImage(ctx context.Context, id, path string) (*court.Court, error) {
	return nil, errors.New("not supported")
}

type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	return nil, errors.New("not supported")
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	return nil, errors.New("not supported")
}

// Test fixture: one basketball court open 08:00-22:00 every day except
// martes, plus a second court, and one under maintenance.
func newTestService(t *testing.T) (Service, *memRepo) {
	t.Helper()

	days := []string{"domingo", "lunes", "miércoles", "jueves", "viernes", "sábado"}
	courts := map[string]*court.Court{
		"court-1": {
			ID: "court-1", Name: "Cancha Central", SportType: "baloncesto",
			PlayerCapacity: 10, HourStart: 480, HourEnd: 1320,
			OperatingDays: days, Status: court.StatusActive,
		},
		"court-2": {
			ID: "court-2", Name: "Cancha Norte", SportType: "baloncesto",
			PlayerCapacity: 12, HourStart: 480, HourEnd: 1320,
			OperatingDays: days, Status: court.StatusActive,
		},
		"court-closed": {
			ID: "court-closed", Name: "Cancha Sur", SportType: "voleibol",
			PlayerCapacity: 12, HourStart: 480, HourEnd: 1320,
			OperatingDays: days, Status: court.StatusMaintenance,
		},
	}
	users := map[string]*user.User{
		"user-1": {
			ID: "user-1", Name: "Ana", LastName: "García",
			IdentificationNum: "001-1234567-8", Email: "ana@example.com",
			Role: user.RoleCustomer, IsActive: true,
		},
		"user-2": {
			ID: "user-2", Name: "Luis", LastName: "Pérez",
			IdentificationNum: "001-7654321-0", Email: "luis@example.com",
			Role: user.RoleCustomer, IsActive: true,
		},
	}

	repo := newMemRepo()
	svc := NewService(repo, &fakeCourtService{courts: courts}, &fakeUserService{users: users},
		schedule.FixedClock("2026-02-09"), mailer.Noop{})
	return svc, repo
}

func createReq(userID, courtID string) CreateRequest {
	return CreateRequest{
		UserID:      userID,
		CourtID:     courtID,
		Date:        "2026-02-11", // miércoles
		StartTime:   "09:00",
		EndTime:     "10:00",
		PeopleCount: 4,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		assert.NotEmpty(t, r.ID)
		assert.Equal(t, StatusConfirmed, r.Status)
		assert.Equal(t, schedule.Date("2026-02-11"), r.Date)
		assert.Equal(t, 540, r.StartMin)
		assert.Equal(t, 600, r.EndMin)
		assert.Equal(t, "Cancha Central", r.CourtName)
		assert.Equal(t, "001-1234567-8", r.IdentificationNum)
		assert.Equal(t, "Ana García", r.ReservedFor, "defaults to the requester's full name")

		require.Len(t, r.VerifyCode, 4)
		code, err := strconv.Atoi(r.VerifyCode)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 1000)
		assert.LessOrEqual(t, code, 9999)
	})

	t.Run("explicit reserved_for wins", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := createReq("user-1", "court-1")
		req.ReservedFor = "Equipo Juvenil"
		r, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "Equipo Juvenil", r.ReservedFor)
	})

	t.Run("input validation", func(t *testing.T) {
		svc, _ := newTestService(t)

		cases := []struct {
			name    string
			mutate  func(*CreateRequest)
			wantErr error
		}{
			{"bad date", func(r *CreateRequest) { r.Date = "11-02-2026" }, ErrMalformedDate},
			{"bad time", func(r *CreateRequest) { r.StartTime = "9:00" }, ErrMalformedTime},
			{"inverted interval", func(r *CreateRequest) { r.StartTime, r.EndTime = "10:00", "09:00" }, ErrInvalidInterval},
			{"zero-length interval", func(r *CreateRequest) { r.EndTime = r.StartTime }, ErrInvalidInterval},
			{"past date", func(r *CreateRequest) { r.Date = "2026-02-08" }, ErrPastDate},
			{"unknown court", func(r *CreateRequest) { r.CourtID = "nope" }, ErrCourtNotFound},
			{"maintenance court", func(r *CreateRequest) { r.CourtID = "court-closed" }, ErrCourtUnavailable},
			{"non-operating day", func(r *CreateRequest) { r.Date = "2026-02-10" }, ErrNonOperatingDay}, // martes
			{"before opening", func(r *CreateRequest) { r.StartTime, r.EndTime = "07:00", "08:30" }, ErrOutOfWindow},
			{"past closing", func(r *CreateRequest) { r.StartTime, r.EndTime = "21:30", "22:30" }, ErrOutOfWindow},
			{"too many people", func(r *CreateRequest) { r.PeopleCount = 11 }, ErrCapacityExceeded},
			{"zero people", func(r *CreateRequest) { r.PeopleCount = 0 }, ErrCapacityExceeded},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := createReq("user-1", "court-1")
				tc.mutate(&req)
				_, err := svc.Create(ctx, req)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("booking today is allowed", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := createReq("user-1", "court-1")
		req.Date = "2026-02-09" // lunes, the fixed "today"
		_, err := svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("slot touching the closing time is allowed", func(t *testing.T) {
		svc, _ := newTestService(t)

		req := createReq("user-1", "court-1")
		req.StartTime, req.EndTime = "21:00", "22:00"
		_, err := svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("overlapping another user's booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		req := createReq("user-2", "court-1")
		req.StartTime, req.EndTime = "09:30", "10:30"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrCourtConflict)
	})

	t.Run("back-to-back bookings do not conflict", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		req := createReq("user-2", "court-1")
		req.StartTime, req.EndTime = "10:00", "11:00"
		_, err = svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("same user re-booking their own slot on the same court", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		req := createReq("user-1", "court-1")
		req.StartTime, req.EndTime = "09:30", "10:30"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrSelfConflict)
	})

	t.Run("same user may book the same slot on another court", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq("user-1", "court-2"))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		svc, _ := newTestService(t)

		first, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, first.ID, "user-1", "")
		require.NoError(t, err)

		_, err = svc.Create(ctx, createReq("user-2", "court-1"))
		assert.NoError(t, err)
	})
}

func TestCreateReservationConcurrent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const attempts = 10
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		userID := "user-1"
		if i%2 == 1 {
			userID = "user-2"
		}
		go func(uid string) {
			defer wg.Done()
			_, err := svc.Create(ctx, createReq(uid, "court-1"))
			errs <- err
		}(userID)
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCourtConflict), errors.Is(err, ErrSelfConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok, "exactly one racing request may win the slot")
	assert.Equal(t, attempts-1, conflicts)
}

func TestEditReservation(t *testing.T) {
	ctx := context.Background()

	editReq := func(r *Reservation, start, end string) EditRequest {
		return EditRequest{
			CourtID:     r.CourtID,
			Date:        r.Date.String(),
			StartTime:   start,
			EndTime:     end,
			PeopleCount: r.PeopleCount,
		}
	}

	t.Run("move to a free slot", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		updated, err := svc.Edit(ctx, r.ID, editReq(r, "11:00", "12:00"))
		require.NoError(t, err)
		assert.Equal(t, 660, updated.StartMin)
		assert.Equal(t, 720, updated.EndMin)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("unchanged slot does not conflict with itself", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		_, err = svc.Edit(ctx, r.ID, editReq(r, "09:00", "10:00"))
		assert.NoError(t, err)
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		other := createReq("user-2", "court-1")
		other.StartTime, other.EndTime = "11:00", "12:00"
		_, err = svc.Create(ctx, other)
		require.NoError(t, err)

		_, err = svc.Edit(ctx, r.ID, editReq(r, "11:30", "12:30"))
		assert.ErrorIs(t, err, ErrCourtConflict)
	})

	t.Run("edited slot is re-validated", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		_, err = svc.Edit(ctx, r.ID, editReq(r, "23:00", "23:30"))
		assert.ErrorIs(t, err, ErrOutOfWindow)
	})

	t.Run("cancelled reservation cannot be edited", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, r.ID, "user-1", "")
		require.NoError(t, err)

		_, err = svc.Edit(ctx, r.ID, editReq(r, "11:00", "12:00"))
		assert.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Edit(ctx, "missing", EditRequest{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel with explicit reason", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		cancelled, err := svc.Cancel(ctx, r.ID, "staff-1", "rain")
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, "staff-1", *cancelled.CancelledBy)
		require.NotNil(t, cancelled.CancelReason)
		assert.Equal(t, "rain", *cancelled.CancelReason)
	})

	t.Run("empty reason gets the default", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		cancelled, err := svc.Cancel(ctx, r.ID, "user-1", "  ")
		require.NoError(t, err)
		require.NotNil(t, cancelled.CancelReason)
		assert.Equal(t, defaultCancelReason, *cancelled.CancelReason)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		_, err = svc.Cancel(ctx, r.ID, "user-1", "")
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, r.ID, "user-1", "")
		assert.ErrorIs(t, err, ErrTerminalState)
	})
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials redeem the reservation", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		used, err := svc.CheckIn(ctx, r.IdentificationNum, r.VerifyCode)
		require.NoError(t, err)
		assert.Equal(t, StatusUsed, used.Status)
	})

	t.Run("wrong code", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		wrong := "0000"
		if r.VerifyCode == wrong {
			wrong = "0001"
		}
		_, err = svc.CheckIn(ctx, r.IdentificationNum, wrong)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already used", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, r.IdentificationNum, r.VerifyCode)
		require.NoError(t, err)
		_, err = svc.CheckIn(ctx, r.IdentificationNum, r.VerifyCode)
		assert.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run("expired reservation", func(t *testing.T) {
		svc, repo := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		// Push the booked date into the past behind the service's back.
		stored, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		stored.Date = "2026-02-01"
		require.NoError(t, repo.Update(ctx, stored))

		_, err = svc.CheckIn(ctx, r.IdentificationNum, r.VerifyCode)
		assert.ErrorIs(t, err, ErrPastDate)
	})
}

func TestFindByVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed reservation is found", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)

		found, err := svc.FindByVerification(ctx, r.IdentificationNum, r.VerifyCode)
		require.NoError(t, err)
		assert.Equal(t, r.ID, found.ID)
	})

	t.Run("cancelled reservation is not served", func(t *testing.T) {
		svc, _ := newTestService(t)

		r, err := svc.Create(ctx, createReq("user-1", "court-1"))
		require.NoError(t, err)
		_, err = svc.Cancel(ctx, r.ID, "user-1", "")
		require.NoError(t, err)

		_, err = svc.FindByVerification(ctx, r.IdentificationNum, r.VerifyCode)
		assert.ErrorIs(t, err, ErrTerminalState)
	})
}

func TestAvailableCourts(t *testing.T) {
	ctx := context.Background()

	t.Run("free courts are listed", func(t *testing.T) {
		svc, _ := newTestService(t)

		courts, err := svc.AvailableCourts(ctx, "2026-02-11", "morning", "baloncesto")
		require.NoError(t, err)

		var names []string
		for _, c := range courts {
			names = append(names, c.Name)
		}
		assert.ElementsMatch(t, []string{"Cancha Central", "Cancha Norte"}, names)
	})

	t.Run("a booking inside the band removes the court", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq("user-1", "court-1")) // 09:00-10:00
		require.NoError(t, err)

		courts, err := svc.AvailableCourts(ctx, "2026-02-11", "morning", "baloncesto")
		require.NoError(t, err)
		require.Len(t, courts, 1)
		assert.Equal(t, "Cancha Norte", courts[0].Name)
	})

	t.Run("the same booking does not block other bands", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Create(ctx, createReq("user-1", "court-1")) // 09:00-10:00
		require.NoError(t, err)

		courts, err := svc.AvailableCourts(ctx, "2026-02-11", "evening", "baloncesto")
		require.NoError(t, err)
		assert.Len(t, courts, 2)
	})

	t.Run("non-operating day lists nothing", func(t *testing.T) {
		svc, _ := newTestService(t)

		courts, err := svc.AvailableCourts(ctx, "2026-02-10", "morning", "baloncesto") // martes
		require.NoError(t, err)
		assert.Empty(t, courts)
	})

	t.Run("invalid band", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AvailableCourts(ctx, "2026-02-11", "midnight", "baloncesto")
		assert.ErrorIs(t, err, ErrInvalidBand)
	})

	t.Run("courts in maintenance never appear", func(t *testing.T) {
		svc, _ := newTestService(t)

		courts, err := svc.AvailableCourts(ctx, "2026-02-11", "morning", "voleibol")
		require.NoError(t, err)
		assert.Empty(t, courts)
	})
}

func TestOccupiedBlocksEndpointFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	req := createReq("user-1", "court-1")
	req.StartTime, req.EndTime = "09:30", "10:30"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	blocks, err := svc.OccupiedBlocks(ctx, "court-1", "2026-02-11")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, blocks)

	blocks, err = svc.OccupiedBlocks(ctx, "court-1", "2026-02-12")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestFullyBookedDatesEndpointFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Fill the whole 08:00-22:00 window of court-1 on one day.
	for h := 8; h < 22; h++ {
		req := createReq("user-1", "court-1")
		req.StartTime = schedule.FormatClock(h * 60)
		req.EndTime = schedule.FormatClock((h + 1) * 60)
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	dates, err := svc.FullyBookedDates(ctx, "court-1")
	require.NoError(t, err)
	assert.Equal(t, []schedule.Date{"2026-02-11"}, dates)

	dates, err = svc.FullyBookedDates(ctx, "court-2")
	require.NoError(t, err)
	assert.Empty(t, dates)
}

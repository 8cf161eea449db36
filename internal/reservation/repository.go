package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/canchapp/canchapp-backend/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	GetByVerification(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Update(ctx context.Context, r *Reservation) error

	// FindOverlap returns a non-cancelled reservation on the court whose
	// interval overlaps iv on the given date, or nil when the slot is free.
	// excludeID skips the reservation being edited; a non-empty userID
	// restricts the search to that user's own bookings.
	FindOverlap(ctx context.Context, courtID string, date schedule.Date, iv schedule.Interval, excludeID, userID string) (*Reservation, error)

	// ListForCourtDate returns all non-cancelled reservations for one court
	// on one date.
	ListForCourtDate(ctx context.Context, courtID string, date schedule.Date) ([]*Reservation, error)

	// ListActiveByCourt returns every non-cancelled reservation for the
	// court, across all dates.
	ListActiveByCourt(ctx context.Context, courtID string) ([]*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var reservationColumns = []string{
	"r.id", "r.court_id", "c.name", "r.user_id",
	"r.date", "r.start_min", "r.end_min", "r.people_count",
	"r.reserved_for", "r.verify_code", "r.identification_num", "r.status",
	"r.cancelled_by", "r.cancel_reason", "r.created_at", "r.updated_at",
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	err := row.Scan(
		&res.ID, &res.CourtID, &res.CourtName, &res.UserID,
		&res.Date, &res.StartMin, &res.EndMin, &res.PeopleCount,
		&res.ReservedFor, &res.VerifyCode, &res.IdentificationNum, &res.Status,
		&res.CancelledBy, &res.CancelReason, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// mapSlotError converts the slot exclusion constraint violation into the
// domain conflict error. The constraint is the authority on double booking:
// two transactions can both pass the service pre-check, only one can commit.
func mapSlotError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
		return ErrCourtConflict
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns(
			"court_id", "user_id", "date", "start_min", "end_min",
			"people_count", "reserved_for", "verify_code", "identification_num", "status",
		).
		Values(
			res.CourtID, res.UserID, res.Date, res.StartMin, res.EndMin,
			res.PeopleCount, res.ReservedFor, res.VerifyCode, res.IdentificationNum, res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		if mapped := mapSlotError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) GetByVerification(ctx context.Context, identificationNum, verifyCode string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id").
		Where(squirrel.Eq{"r.identification_num": identificationNum}).
		Where(squirrel.Eq{"r.verify_code": verifyCode}).
		OrderBy("r.date DESC", "r.start_min DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build verification query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find reservation by verification failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(reservationColumns, "count(*) OVER() AS total_count")...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"r.court_id": filter.CourtID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}
	if filter.DateFrom != "" {
		query = query.Where(squirrel.GtOrEq{"r.date": filter.DateFrom})
	}
	if filter.DateTo != "" {
		query = query.Where(squirrel.LtOrEq{"r.date": filter.DateTo})
	}

	query = query.OrderBy("r.date DESC", "r.start_min DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var result []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.CourtID, &res.CourtName, &res.UserID,
			&res.Date, &res.StartMin, &res.EndMin, &res.PeopleCount,
			&res.ReservedFor, &res.VerifyCode, &res.IdentificationNum, &res.Status,
			&res.CancelledBy, &res.CancelReason, &res.CreatedAt, &res.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		result = append(result, &res)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("court_id", res.CourtID).
		Set("date", res.Date).
		Set("start_min", res.StartMin).
		Set("end_min", res.EndMin).
		Set("people_count", res.PeopleCount).
		Set("reserved_for", res.ReservedFor).
		Set("status", res.Status).
		Set("cancelled_by", res.CancelledBy).
		Set("cancel_reason", res.CancelReason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapSlotError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) FindOverlap(ctx context.Context, courtID string, date schedule.Date, iv schedule.Interval, excludeID, userID string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(reservationColumns...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id").
		Where(squirrel.Eq{"r.court_id": courtID}).
		Where(squirrel.Eq{"r.date": date}).
		Where(squirrel.NotEq{"r.status": StatusCancelled}).
		Where(squirrel.Lt{"r.start_min": iv.End}).
		Where(squirrel.Gt{"r.end_min": iv.Start})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"r.id": excludeID})
	}
	if userID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": userID})
	}

	sql, args, err := query.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("check overlap failed: %w", err)
	}
	return res, nil
}

func (r *pgxRepository) ListForCourtDate(ctx context.Context, courtID string, date schedule.Date) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(reservationColumns...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id").
		Where(squirrel.Eq{"r.court_id": courtID}).
		Where(squirrel.Eq{"r.date": date}).
		Where(squirrel.NotEq{"r.status": StatusCancelled}).
		OrderBy("r.start_min").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build court day query failed: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) ListActiveByCourt(ctx context.Context, courtID string) ([]*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(reservationColumns...).
		From("public.reservations r").
		Join("public.courts c ON r.court_id = c.id").
		Where(squirrel.Eq{"r.court_id": courtID}).
		Where(squirrel.NotEq{"r.status": StatusCancelled}).
		OrderBy("r.date", "r.start_min").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active reservations query failed: %w", err)
	}

	return r.queryMany(ctx, sql, args)
}

func (r *pgxRepository) queryMany(ctx context.Context, sql string, args []any) ([]*Reservation, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var result []*Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		result = append(result, res)
	}
	return result, nil
}

package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	ListBookable(ctx context.Context, sportType string) ([]*Court, error)
	Update(ctx context.Context, c *Court) error
	SoftDelete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const courtColumns = `
	id, name, sport_type, location, indoor, player_capacity,
	hour_start, hour_end, operating_days, status, has_light,
	description, image_path, is_deleted, created_at, updated_at
`

func scanCourt(row pgx.Row) (*Court, error) {
	var c Court
	err := row.Scan(
		&c.ID, &c.Name, &c.SportType, &c.Location, &c.Indoor, &c.PlayerCapacity,
		&c.HourStart, &c.HourEnd, &c.OperatingDays, &c.Status, &c.HasLight,
		&c.Description, &c.ImagePath, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	const query = `
		INSERT INTO public.courts
			(name, sport_type, location, indoor, player_capacity,
			 hour_start, hour_end, operating_days, status, has_light, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		c.Name, c.SportType, c.Location, c.Indoor, c.PlayerCapacity,
		c.HourStart, c.HourEnd, c.OperatingDays, c.Status, c.HasLight, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query := `SELECT ` + courtColumns + ` FROM public.courts WHERE id = $1`

	c, err := scanCourt(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	var args []any
	query := `SELECT ` + courtColumns + `, count(*) OVER() AS total_count
		FROM public.courts
		WHERE is_deleted = false`
	paramIndex := 1

	if filter.SportType != "" {
		query += fmt.Sprintf(" AND sport_type = $%d", paramIndex)
		args = append(args, filter.SportType)
		paramIndex++
	}

	query += " ORDER BY created_at DESC"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var result []*Court
	var total int

	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.Name, &c.SportType, &c.Location, &c.Indoor, &c.PlayerCapacity,
			&c.HourStart, &c.HourEnd, &c.OperatingDays, &c.Status, &c.HasLight,
			&c.Description, &c.ImagePath, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		result = append(result, &c)
	}

	return result, total, nil
}

func (r *pgxRepository) ListBookable(ctx context.Context, sportType string) ([]*Court, error) {
	query := `SELECT ` + courtColumns + `
		FROM public.courts
		WHERE is_deleted = false AND status = 'active' AND sport_type = $1
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query, sportType)
	if err != nil {
		return nil, fmt.Errorf("list bookable courts failed: %w", err)
	}
	defer rows.Close()

	var result []*Court
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan court failed: %w", err)
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	const query = `
		UPDATE public.courts
		SET name = $1, sport_type = $2, location = $3, indoor = $4,
			player_capacity = $5, hour_start = $6, hour_end = $7,
			operating_days = $8, status = $9, has_light = $10,
			description = $11, image_path = $12, updated_at = now()
		WHERE id = $13
	`
	ct, err := r.pool.Exec(ctx, query,
		c.Name, c.SportType, c.Location, c.Indoor,
		c.PlayerCapacity, c.HourStart, c.HourEnd,
		c.OperatingDays, c.Status, c.HasLight,
		c.Description, c.ImagePath, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
		UPDATE public.courts
		SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND is_deleted = false
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

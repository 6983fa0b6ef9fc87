package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// HolidayCalendarRepo persists which countries a user enabled for which year.
type HolidayCalendarRepo interface {
	// Enable records (userID, code, year). Returns domain.ErrConflict if the
	// country is already enabled for that year.
	Enable(ctx context.Context, userID uuid.UUID, code string, year int) (domain.HolidayCalendar, error)

	// Disable removes the row. Returns domain.ErrNotFound if it was not enabled.
	Disable(ctx context.Context, userID uuid.UUID, code string, year int) error

	// List returns the user's enabled countries for a year, ordered by country code.
	List(ctx context.Context, userID uuid.UUID, year int) ([]domain.HolidayCalendar, error)
}

type pgHolidayCalendarRepo struct {
	db db
}

// NewHolidayCalendarRepo constructs a HolidayCalendarRepo backed by the provided db connection.
func NewHolidayCalendarRepo(db db) HolidayCalendarRepo {
	return &pgHolidayCalendarRepo{db: db}
}

// Enable inserts the row. On a duplicate DO NOTHING makes RETURNING yield no
// row, which is reported as a conflict.
func (r *pgHolidayCalendarRepo) Enable(ctx context.Context, userID uuid.UUID, code string, year int) (domain.HolidayCalendar, error) {
	const q = `
		INSERT INTO holiday_calendars (user_id, country_code, year)
		VALUES (@user_id, @country_code, @year)
		ON CONFLICT ON CONSTRAINT uq_holiday_calendar DO NOTHING
		RETURNING id, user_id, country_code, year, created_at`

	args := pgx.NamedArgs{"user_id": userID, "country_code": code, "year": year}
	result, err := scanHolidayCalendar(r.db.QueryRow(ctx, q, args))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.HolidayCalendar{}, fmt.Errorf("repo.HolidayCalendarRepo.Enable: %w", domain.ErrConflict)
	}
	if err != nil {
		return domain.HolidayCalendar{}, fmt.Errorf("repo.HolidayCalendarRepo.Enable: %w", err)
	}
	return result, nil
}

func (r *pgHolidayCalendarRepo) Disable(ctx context.Context, userID uuid.UUID, code string, year int) error {
	const q = `
		DELETE FROM holiday_calendars
		WHERE user_id = @user_id AND country_code = @country_code AND year = @year`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"user_id": userID, "country_code": code, "year": year})
	if err != nil {
		return fmt.Errorf("repo.HolidayCalendarRepo.Disable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.HolidayCalendarRepo.Disable: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgHolidayCalendarRepo) List(ctx context.Context, userID uuid.UUID, year int) ([]domain.HolidayCalendar, error) {
	const q = `
		SELECT id, user_id, country_code, year, created_at
		FROM holiday_calendars
		WHERE user_id = @user_id AND year = @year
		ORDER BY country_code`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "year": year})
	if err != nil {
		return nil, fmt.Errorf("repo.HolidayCalendarRepo.List: %w", err)
	}
	defer rows.Close()

	cals := []domain.HolidayCalendar{}
	for rows.Next() {
		c, err := scanHolidayCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.HolidayCalendarRepo.List: scan: %w", err)
		}
		cals = append(cals, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HolidayCalendarRepo.List: rows: %w", err)
	}
	return cals, nil
}

func scanHolidayCalendar(s scanner) (domain.HolidayCalendar, error) {
	var (
		c          domain.HolidayCalendar
		id, userID pgtype.UUID
		year       int32
	)
	err := s.Scan(&id, &userID, &c.CountryCode, &year, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HolidayCalendar{}, domain.ErrNotFound
		}
		return domain.HolidayCalendar{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	c.UserID = uuid.UUID(userID.Bytes)
	c.Year = int(year)
	return c, nil
}

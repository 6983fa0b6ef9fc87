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

// CustomDayRepo defines the persistence operations for CustomDays.
// Every operation is scoped by user.
type CustomDayRepo interface {
	// Create inserts a custom day and returns the persisted record.
	Create(ctx context.Context, day domain.CustomDay) (domain.CustomDay, error)

	// ListForYear returns the user's one-off days dated in year plus all of
	// their recurring days, ordered by month and day.
	ListForYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.CustomDay, error)

	// Delete removes a custom day owned by userID.
	// Returns domain.ErrNotFound if no such day exists for that user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pgCustomDayRepo struct {
	db db
}

// NewCustomDayRepo constructs a CustomDayRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewCustomDayRepo(db db) CustomDayRepo {
	return &pgCustomDayRepo{db: db}
}

func (r *pgCustomDayRepo) Create(ctx context.Context, day domain.CustomDay) (domain.CustomDay, error) {
	const q = `
		INSERT INTO custom_days (user_id, name, date, recurring)
		VALUES (@user_id, @name, @date, @recurring)
		RETURNING id, user_id, name, date, recurring, created_at`

	args := pgx.NamedArgs{
		"user_id":   day.UserID,
		"name":      day.Name,
		"date":      day.Date,
		"recurring": day.Recurring,
	}
	result, err := scanCustomDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CustomDay{}, fmt.Errorf("repo.CustomDayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCustomDayRepo) ListForYear(ctx context.Context, userID uuid.UUID, year int) ([]domain.CustomDay, error) {
	const q = `
		SELECT id, user_id, name, date, recurring, created_at
		FROM custom_days
		WHERE user_id = @user_id
		  AND (recurring OR EXTRACT(YEAR FROM date) = @year)
		ORDER BY EXTRACT(MONTH FROM date), EXTRACT(DAY FROM date), created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "year": year})
	if err != nil {
		return nil, fmt.Errorf("repo.CustomDayRepo.ListForYear: %w", err)
	}
	defer rows.Close()

	days := []domain.CustomDay{}
	for rows.Next() {
		d, err := scanCustomDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CustomDayRepo.ListForYear: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CustomDayRepo.ListForYear: rows: %w", err)
	}
	return days, nil
}

func (r *pgCustomDayRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM custom_days WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.CustomDayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CustomDayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCustomDay(s scanner) (domain.CustomDay, error) {
	var (
		d          domain.CustomDay
		id, userID pgtype.UUID
		date       pgtype.Date
	)
	err := s.Scan(&id, &userID, &d.Name, &date, &d.Recurring, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CustomDay{}, domain.ErrNotFound
		}
		return domain.CustomDay{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.UserID = uuid.UUID(userID.Bytes)
	d.Date = date.Time
	return d, nil
}

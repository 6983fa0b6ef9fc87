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

// TripMemberRepo persists the membership rows of trips. Access rules live in
// the service; every method here is scoped to one trip.
type TripMemberRepo interface {
	// List returns the trip's members, oldest first.
	List(ctx context.Context, tripID uuid.UUID) ([]domain.TripMember, error)

	// Add inserts a membership. Returns domain.ErrConflict if the user is
	// already a member of the trip.
	Add(ctx context.Context, tripID, userID uuid.UUID, role domain.MemberRole) (domain.TripMember, error)

	// Get returns one membership row by its ID within the trip, or
	// domain.ErrNotFound.
	Get(ctx context.Context, tripID, memberID uuid.UUID) (domain.TripMember, error)

	// UpdateRole changes a member's role. Returns domain.ErrNotFound if the
	// row does not belong to the trip.
	UpdateRole(ctx context.Context, tripID, memberID uuid.UUID, role domain.MemberRole) (domain.TripMember, error)

	// Remove deletes a membership. Returns domain.ErrNotFound if the row does
	// not belong to the trip.
	Remove(ctx context.Context, tripID, memberID uuid.UUID) error
}

type pgTripMemberRepo struct {
	db db
}

// NewTripMemberRepo constructs a TripMemberRepo backed by the provided db connection.
func NewTripMemberRepo(db db) TripMemberRepo {
	return &pgTripMemberRepo{db: db}
}

const memberColumns = `id, trip_id, user_id, role, created_at`

func (r *pgTripMemberRepo) List(ctx context.Context, tripID uuid.UUID) ([]domain.TripMember, error) {
	const q = `
		SELECT ` + memberColumns + `
		FROM trip_members
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripMemberRepo.List: %w", err)
	}
	defer rows.Close()

	members := []domain.TripMember{}
	for rows.Next() {
		m, err := scanTripMember(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripMemberRepo.List: scan: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripMemberRepo.List: rows: %w", err)
	}
	return members, nil
}

// Add relies on the (trip_id, user_id) unique constraint: a duplicate makes
// RETURNING yield no row, which is reported as a conflict.
func (r *pgTripMemberRepo) Add(ctx context.Context, tripID, userID uuid.UUID, role domain.MemberRole) (domain.TripMember, error) {
	const q = `
		INSERT INTO trip_members (trip_id, user_id, role)
		VALUES (@trip_id, @user_id, @role)
		ON CONFLICT ON CONSTRAINT trip_members_unique DO NOTHING
		RETURNING ` + memberColumns

	args := pgx.NamedArgs{"trip_id": tripID, "user_id": userID, "role": string(role)}
	m, err := scanTripMember(r.db.QueryRow(ctx, q, args))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.TripMember{}, fmt.Errorf("repo.TripMemberRepo.Add: %w", domain.ErrConflict)
	}
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("repo.TripMemberRepo.Add: %w", err)
	}
	return m, nil
}

func (r *pgTripMemberRepo) Get(ctx context.Context, tripID, memberID uuid.UUID) (domain.TripMember, error) {
	const q = `SELECT ` + memberColumns + ` FROM trip_members WHERE id = @id AND trip_id = @trip_id`

	m, err := scanTripMember(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": memberID, "trip_id": tripID}))
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("repo.TripMemberRepo.Get: %w", err)
	}
	return m, nil
}

func (r *pgTripMemberRepo) UpdateRole(ctx context.Context, tripID, memberID uuid.UUID, role domain.MemberRole) (domain.TripMember, error) {
	const q = `
		UPDATE trip_members SET role = @role
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + memberColumns

	args := pgx.NamedArgs{"id": memberID, "trip_id": tripID, "role": string(role)}
	m, err := scanTripMember(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("repo.TripMemberRepo.UpdateRole: %w", err)
	}
	return m, nil
}

func (r *pgTripMemberRepo) Remove(ctx context.Context, tripID, memberID uuid.UUID) error {
	const q = `DELETE FROM trip_members WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": memberID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TripMemberRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripMemberRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

func scanTripMember(s scanner) (domain.TripMember, error) {
	var (
		m                  domain.TripMember
		id, tripID, userID pgtype.UUID
		role               string
	)
	if err := s.Scan(&id, &tripID, &userID, &role, &m.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripMember{}, domain.ErrNotFound
		}
		return domain.TripMember{}, err
	}
	m.ID = uuid.UUID(id.Bytes)
	m.TripID = uuid.UUID(tripID.Bytes)
	m.UserID = uuid.UUID(userID.Bytes)
	m.Role = domain.MemberRole(role)
	return m, nil
}

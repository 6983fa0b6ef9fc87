// Package repo contains all database access logic for the Travel Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips and their membership rows.
// Reads are scoped to trips the given user is a member of.
type TripRepo interface {
	// Create inserts a new trip together with the owner's membership row and
	// returns the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip by primary key. Returns domain.ErrNotFound when
	// no such trip exists. Membership is not checked; see MemberRole.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// MemberRole returns the user's role on a trip, or domain.ErrNotFound when
	// the user is not a member.
	MemberRole(ctx context.Context, tripID, userID uuid.UUID) (domain.MemberRole, error)

	// List returns one page of the user's trips ordered by start_date, and the
	// total count matching the filter.
	List(ctx context.Context, userID uuid.UUID, f domain.TripFilter) ([]domain.Trip, int64, error)

	// ListInRange returns every trip of the user overlapping [from, to],
	// ordered by start_date.
	ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error)

	// Update overwrites the mutable fields of a trip. Status is not touched.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// UpdateStatus moves a trip from one status to another. It returns
	// domain.ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.TripStatus) (domain.Trip, error)

	// AdvanceByDate activates booked trips that have started and completes
	// active trips that have ended, as of today.
	AdvanceByDate(ctx context.Context, today time.Time) (activated, completed int64, err error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is shared by every SELECT and RETURNING so scanTrip stays in sync.
const tripColumns = `
	t.id, t.owner_id, t.type, t.destination, t.start_date, t.end_date, t.status,
	t.notes, t.latitude, t.longitude, t.parent_trip_id,
	(SELECT count(*) FROM trip_members m WHERE m.trip_id = t.id),
	t.created_at, t.updated_at`

// Create inserts the trip and its owner membership in one statement.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		WITH t AS (
			INSERT INTO trips (owner_id, type, destination, start_date, end_date, status,
			                   notes, latitude, longitude, parent_trip_id)
			VALUES (@owner_id, @type, @destination, @start_date, @end_date, @status,
			        @notes, @latitude, @longitude, @parent_trip_id)
			RETURNING *
		), m AS (
			INSERT INTO trip_members (trip_id, user_id, role)
			SELECT id, owner_id, 'owner' FROM t
		)
		SELECT t.id, t.owner_id, t.type, t.destination, t.start_date, t.end_date, t.status,
		       t.notes, t.latitude, t.longitude, t.parent_trip_id, 1,
		       t.created_at, t.updated_at
		FROM t`

	args := pgx.NamedArgs{
		"owner_id":       trip.OwnerID,
		"type":           string(trip.Type),
		"destination":    trip.Destination,
		"start_date":     trip.StartDate,
		"end_date":       trip.EndDate,
		"status":         string(trip.Status),
		"notes":          trip.Notes,
		"latitude":       trip.Latitude,
		"longitude":      trip.Longitude,
		"parent_trip_id": trip.ParentTripID, // nil becomes NULL
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips t WHERE t.id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// MemberRole looks up the membership row for (tripID, userID).
func (r *pgTripRepo) MemberRole(ctx context.Context, tripID, userID uuid.UUID) (domain.MemberRole, error) {
	const q = `SELECT role FROM trip_members WHERE trip_id = @trip_id AND user_id = @user_id`

	var role string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID}).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.TripRepo.MemberRole: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.TripRepo.MemberRole: %w", err)
	}
	return domain.MemberRole(role), nil
}

// List returns one page of the user's trips. The optional status filter uses a
// NULL-tolerant predicate so the same statement serves both cases.
func (r *pgTripRepo) List(ctx context.Context, userID uuid.UUID, f domain.TripFilter) ([]domain.Trip, int64, error) {
	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	args := pgx.NamedArgs{
		"user_id": userID,
		"status":  status,
		"limit":   f.Limit,
		"offset":  f.Offset(),
	}

	const countQ = `
		SELECT count(*)
		FROM trips t
		JOIN trip_members tm ON tm.trip_id = t.id
		WHERE tm.user_id = @user_id
		  AND (@status::text IS NULL OR t.status = @status::text)`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}

	q := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN trip_members tm ON tm.trip_id = t.id
		WHERE tm.user_id = @user_id
		  AND (@status::text IS NULL OR t.status = @status::text)
		ORDER BY t.start_date, t.id
		LIMIT @limit OFFSET @offset`

	trips, err := r.queryTrips(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return trips, total, nil
}

// ListInRange returns the user's trips overlapping [from, to].
func (r *pgTripRepo) ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips t
		JOIN trip_members tm ON tm.trip_id = t.id
		WHERE tm.user_id = @user_id
		  AND t.start_date <= @to
		  AND t.end_date >= @from
		ORDER BY t.start_date, t.id`

	trips, err := r.queryTrips(ctx, q, pgx.NamedArgs{"user_id": userID, "from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListInRange: %w", err)
	}
	return trips, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		WITH t AS (
			UPDATE trips
			SET type           = @type,
			    destination    = @destination,
			    start_date     = @start_date,
			    end_date       = @end_date,
			    notes          = @notes,
			    latitude       = @latitude,
			    longitude      = @longitude,
			    parent_trip_id = @parent_trip_id,
			    updated_at     = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT ` + tripColumns + ` FROM t`

	args := pgx.NamedArgs{
		"id":             trip.ID,
		"type":           string(trip.Type),
		"destination":    trip.Destination,
		"start_date":     trip.StartDate,
		"end_date":       trip.EndDate,
		"notes":          trip.Notes,
		"latitude":       trip.Latitude,
		"longitude":      trip.Longitude,
		"parent_trip_id": trip.ParentTripID,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateStatus is a compare-and-set on the status column.
func (r *pgTripRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.TripStatus) (domain.Trip, error) {
	q := `
		WITH t AS (
			UPDATE trips
			SET status = @to, updated_at = now()
			WHERE id = @id AND status = @from
			RETURNING *
		)
		SELECT ` + tripColumns + ` FROM t`

	args := pgx.NamedArgs{"id": id, "from": string(from), "to": string(to)}
	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if errors.Is(err, domain.ErrNotFound) {
		// The row exists (the service loaded it) but its status moved underneath us.
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", domain.ErrConflict)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

// AdvanceByDate runs both date-driven transitions. Completion runs first so a
// trip is never advanced twice in one pass.
func (r *pgTripRepo) AdvanceByDate(ctx context.Context, today time.Time) (int64, int64, error) {
	const completeQ = `
		UPDATE trips SET status = 'completed', updated_at = now()
		WHERE status = 'active' AND end_date < @today`
	const activateQ = `
		UPDATE trips SET status = 'active', updated_at = now()
		WHERE status = 'booked' AND start_date <= @today AND end_date >= @today`

	args := pgx.NamedArgs{"today": today}

	completed, err := r.db.Exec(ctx, completeQ, args)
	if err != nil {
		return 0, 0, fmt.Errorf("repo.TripRepo.AdvanceByDate: complete: %w", err)
	}
	activated, err := r.db.Exec(ctx, activateQ, args)
	if err != nil {
		return 0, 0, fmt.Errorf("repo.TripRepo.AdvanceByDate: activate: %w", err)
	}
	return activated.RowsAffected(), completed.RowsAffected(), nil
}

// Delete removes a trip by primary key. Membership rows cascade.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trips, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single row selected with tripColumns into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t          domain.Trip
		id, owner  pgtype.UUID
		parent     pgtype.UUID
		start, end pgtype.Date
		typ, st    string
		lat, lng   pgtype.Float8
		members    int64
	)

	err := s.Scan(&id, &owner, &typ, &t.Destination, &start, &end, &st,
		&t.Notes, &lat, &lng, &parent, &members, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(owner.Bytes)
	t.Type = domain.TripType(typ)
	t.Status = domain.TripStatus(st)
	t.StartDate = start.Time
	t.EndDate = end.Time
	t.MemberCount = int(members)
	if parent.Valid {
		p := uuid.UUID(parent.Bytes)
		t.ParentTripID = &p
	}
	if lat.Valid {
		v := lat.Float64
		t.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		t.Longitude = &v
	}
	return t, nil
}

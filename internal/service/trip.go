// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

const maxDestinationLen = 255

// TripService implements business logic for Trip operations.
// Every method acts on behalf of userID and enforces trip membership.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip owned by userID.
// Type defaults to vacation and status to dreaming.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.OwnerID = userID
	if trip.Type == "" {
		trip.Type = domain.TripTypeVacation
	}
	if trip.Status == "" {
		trip.Status = domain.TripStatusDreaming
	}
	if !trip.Status.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	if err := validateTrip(&trip); err != nil {
		return domain.Trip{}, err
	}
	if trip.ParentTripID != nil {
		if _, err := s.access(ctx, userID, *trip.ParentTripID); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: parent trip: %w", err)
		}
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Get returns a trip the user is a member of.
func (s *TripService) Get(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.access(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// List returns one page of the user's trips and the total matching count.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, f domain.TripFilter) ([]domain.Trip, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *f.Status)
	}
	trips, total, err := s.repo.List(ctx, userID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	return trips, total, nil
}

// ListInRange returns every trip of the user overlapping [from, to].
func (s *TripService) ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before its start", domain.ErrValidation)
	}
	trips, err := s.repo.ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListInRange: %w", err)
	}
	return trips, nil
}

// Update validates and overwrites the editable fields of a trip.
// Owner and status are kept from the stored trip; use AdvanceStatus for status.
func (s *TripService) Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	current, err := s.access(ctx, userID, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	trip.OwnerID = current.OwnerID
	trip.Status = current.Status
	if trip.Type == "" {
		trip.Type = current.Type
	}
	if err := validateTrip(&trip); err != nil {
		return domain.Trip{}, err
	}
	if trip.ParentTripID != nil {
		if *trip.ParentTripID == trip.ID {
			return domain.Trip{}, fmt.Errorf("%w: a trip cannot be its own parent", domain.ErrValidation)
		}
		if _, err := s.access(ctx, userID, *trip.ParentTripID); err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: parent trip: %w", err)
		}
	}

	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// AdvanceStatus moves a trip one step along its lifecycle.
// Skipping or reversing a step returns domain.ErrInvalidTransition.
func (s *TripService) AdvanceStatus(ctx context.Context, userID, id uuid.UUID, to domain.TripStatus) (domain.Trip, error) {
	if !to.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}
	current, err := s.access(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AdvanceStatus: %w", err)
	}
	if !current.Status.CanAdvanceTo(to) {
		return domain.Trip{}, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.AdvanceStatus: %w", err)
	}
	return updated, nil
}

// Delete removes a trip. Only its owner may delete it.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	role, err := s.repo.MemberRole(ctx, id, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && role != domain.MemberRoleOwner) {
		return fmt.Errorf("service.TripService.Delete: %w: only the owner can delete a trip", domain.ErrForbidden)
	}
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// access loads a trip and checks that userID is a member of it.
// A missing trip is domain.ErrNotFound; a non-member gets domain.ErrForbidden.
func (s *TripService) access(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := s.repo.MemberRole(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("%w: not a member of this trip", domain.ErrForbidden)
		}
		return domain.Trip{}, err
	}
	return trip, nil
}

// validateTrip normalises and checks the user-editable fields of a trip.
func validateTrip(trip *domain.Trip) error {
	trip.Destination = strings.TrimSpace(trip.Destination)
	trip.Notes = strings.TrimSpace(trip.Notes)

	switch {
	case trip.Destination == "":
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	case utf8.RuneCountInString(trip.Destination) > maxDestinationLen:
		return fmt.Errorf("%w: destination must be at most %d characters", domain.ErrValidation, maxDestinationLen)
	case !trip.Type.Valid():
		return fmt.Errorf("%w: unknown trip type %q", domain.ErrValidation, trip.Type)
	case trip.StartDate.IsZero() || trip.EndDate.IsZero():
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	case trip.EndDate.Before(trip.StartDate):
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	case (trip.Latitude == nil) != (trip.Longitude == nil):
		return fmt.Errorf("%w: latitude and longitude must be set together", domain.ErrValidation)
	case trip.Latitude != nil && (*trip.Latitude < -90 || *trip.Latitude > 90):
		return fmt.Errorf("%w: latitude out of range", domain.ErrValidation)
	case trip.Longitude != nil && (*trip.Longitude < -180 || *trip.Longitude > 180):
		return fmt.Errorf("%w: longitude out of range", domain.ErrValidation)
	}
	return nil
}

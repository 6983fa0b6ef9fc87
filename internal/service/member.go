package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// MemberService manages who belongs to a trip. Any member may list the
// membership; only owners may change it. The row of the user who created the
// trip cannot be removed or demoted.
type MemberService struct {
	trips   repo.TripRepo
	members repo.TripMemberRepo
}

// NewMemberService constructs a MemberService over the trip and membership repos.
func NewMemberService(trips repo.TripRepo, members repo.TripMemberRepo) *MemberService {
	return &MemberService{trips: trips, members: members}
}

// List returns the members of a trip the user belongs to.
func (s *MemberService) List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TripMember, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.MemberService.List: %w", err)
	}
	if _, err := s.trips.MemberRole(ctx, tripID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("service.MemberService.List: %w: not a member of this trip", domain.ErrForbidden)
		}
		return nil, fmt.Errorf("service.MemberService.List: %w", err)
	}

	members, err := s.members.List(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MemberService.List: %w", err)
	}
	return members, nil
}

// Add makes newUserID a plain member of the trip.
// Returns domain.ErrConflict if they already belong to it.
func (s *MemberService) Add(ctx context.Context, userID, tripID, newUserID uuid.UUID) (domain.TripMember, error) {
	if newUserID == uuid.Nil {
		return domain.TripMember{}, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if _, err := s.ownerAccess(ctx, userID, tripID); err != nil {
		return domain.TripMember{}, fmt.Errorf("service.MemberService.Add: %w", err)
	}

	m, err := s.members.Add(ctx, tripID, newUserID, domain.MemberRoleMember)
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("service.MemberService.Add: %w", err)
	}
	return m, nil
}

// UpdateRole changes the role of one membership row.
func (s *MemberService) UpdateRole(ctx context.Context, userID, tripID, memberID uuid.UUID, role domain.MemberRole) (domain.TripMember, error) {
	if !role.Valid() {
		return domain.TripMember{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	trip, err := s.ownerAccess(ctx, userID, tripID)
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("service.MemberService.UpdateRole: %w", err)
	}
	current, err := s.members.Get(ctx, tripID, memberID)
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("service.MemberService.UpdateRole: %w", err)
	}
	if current.UserID == trip.OwnerID && role != domain.MemberRoleOwner {
		return domain.TripMember{}, fmt.Errorf("%w: the trip creator stays an owner", domain.ErrValidation)
	}

	m, err := s.members.UpdateRole(ctx, tripID, memberID, role)
	if err != nil {
		return domain.TripMember{}, fmt.Errorf("service.MemberService.UpdateRole: %w", err)
	}
	return m, nil
}

// Remove deletes one membership row.
func (s *MemberService) Remove(ctx context.Context, userID, tripID, memberID uuid.UUID) error {
	trip, err := s.ownerAccess(ctx, userID, tripID)
	if err != nil {
		return fmt.Errorf("service.MemberService.Remove: %w", err)
	}
	current, err := s.members.Get(ctx, tripID, memberID)
	if err != nil {
		return fmt.Errorf("service.MemberService.Remove: %w", err)
	}
	if current.UserID == trip.OwnerID {
		return fmt.Errorf("%w: the trip creator cannot be removed", domain.ErrValidation)
	}

	if err := s.members.Remove(ctx, tripID, memberID); err != nil {
		return fmt.Errorf("service.MemberService.Remove: %w", err)
	}
	return nil
}

// ownerAccess loads a trip and checks that userID holds the owner role on it.
func (s *MemberService) ownerAccess(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	role, err := s.trips.MemberRole(ctx, tripID, userID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && role != domain.MemberRoleOwner) {
		return domain.Trip{}, fmt.Errorf("%w: only an owner can manage members", domain.ErrForbidden)
	}
	if err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

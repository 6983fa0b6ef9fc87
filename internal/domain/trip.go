// Package domain contains the core data types for the Travel Planner API.
// This package depends only on uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripType classifies a trip.
type TripType string

const (
	TripTypeVacation   TripType = "vacation"
	TripTypeRemoteWeek TripType = "remote_week"
	TripTypeSabbatical TripType = "sabbatical"
	TripTypeEvent      TripType = "event"
)

// Valid reports whether t is a known trip type.
func (t TripType) Valid() bool {
	switch t {
	case TripTypeVacation, TripTypeRemoteWeek, TripTypeSabbatical, TripTypeEvent:
		return true
	}
	return false
}

// TripStatus is the lifecycle stage of a trip.
// Statuses only ever advance one step: dreaming → planning → booked → active → completed.
type TripStatus string

const (
	TripStatusDreaming  TripStatus = "dreaming"
	TripStatusPlanning  TripStatus = "planning"
	TripStatusBooked    TripStatus = "booked"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
)

var statusOrder = []TripStatus{
	TripStatusDreaming,
	TripStatusPlanning,
	TripStatusBooked,
	TripStatusActive,
	TripStatusCompleted,
}

// Valid reports whether s is a known status.
func (s TripStatus) Valid() bool {
	for _, v := range statusOrder {
		if v == s {
			return true
		}
	}
	return false
}

// Next returns the status that follows s. ok is false for completed and unknown statuses.
func (s TripStatus) Next() (next TripStatus, ok bool) {
	for i, v := range statusOrder[:len(statusOrder)-1] {
		if v == s {
			return statusOrder[i+1], true
		}
	}
	return "", false
}

// CanAdvanceTo reports whether moving from s to to is a single forward step.
func (s TripStatus) CanAdvanceTo(to TripStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

// MemberRole is a user's role on a trip.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// Valid reports whether r is a known role.
func (r MemberRole) Valid() bool {
	return r == MemberRoleOwner || r == MemberRoleMember
}

// TripMember is one user's membership row on a trip. Users are identified by
// the subject of their bearer token; profiles live with the identity provider.
type TripMember struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	UserID    uuid.UUID
	Role      MemberRole
	CreatedAt time.Time
}

// Trip is a planned or past journey. StartDate and EndDate are calendar
// dates (midnight UTC) and both ends are inclusive.
type Trip struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Type         TripType
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	Status       TripStatus
	Notes        string
	Latitude     *float64
	Longitude    *float64
	ParentTripID *uuid.UUID
	MemberCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TripFilter narrows a trip listing. Page is 1-indexed; Limit is capped at 100
// by NewTripFilter.
type TripFilter struct {
	Status *TripStatus
	Page   int
	Limit  int
}

// NewTripFilter builds a TripFilter from optional HTTP query params.
// Nil or non-positive page and limit fall back to page=1, limit=50.
func NewTripFilter(status *TripStatus, page, limit *int) TripFilter {
	f := TripFilter{Status: status, Page: 1, Limit: 50}
	if page != nil && *page >= 1 {
		f.Page = *page
	}
	if limit != nil && *limit >= 1 {
		f.Limit = min(*limit, 100)
	}
	return f
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (f TripFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

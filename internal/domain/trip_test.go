package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

func TestTripStatus_Next(t *testing.T) {
	next, ok := domain.TripStatusDreaming.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.TripStatusPlanning, next)

	_, ok = domain.TripStatusCompleted.Next()
	assert.False(t, ok, "completed is terminal")

	_, ok = domain.TripStatus("lost").Next()
	assert.False(t, ok)
}

func TestTripStatus_CanAdvanceTo(t *testing.T) {
	assert.True(t, domain.TripStatusBooked.CanAdvanceTo(domain.TripStatusActive))
	assert.False(t, domain.TripStatusBooked.CanAdvanceTo(domain.TripStatusCompleted), "no skipping")
	assert.False(t, domain.TripStatusActive.CanAdvanceTo(domain.TripStatusBooked), "no going back")
	assert.False(t, domain.TripStatusActive.CanAdvanceTo(domain.TripStatusActive))
}

func TestNewTripFilter(t *testing.T) {
	f := domain.NewTripFilter(nil, nil, nil)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.Limit)
	assert.Equal(t, 0, f.Offset())

	page, limit := 3, 500
	f = domain.NewTripFilter(nil, &page, &limit)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 200, f.Offset())
}

func TestMemberRole_Valid(t *testing.T) {
	assert.True(t, domain.MemberRoleOwner.Valid())
	assert.True(t, domain.MemberRoleMember.Valid())
	assert.False(t, domain.MemberRole("admin").Valid())
	assert.False(t, domain.MemberRole("").Valid())
}

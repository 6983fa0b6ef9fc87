package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// AddMemberRequest is the body of POST /trips/{id}/members. Users are named
// by the subject of their bearer token.
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// MemberRoleRequest is the body of PATCH /trips/{id}/members/{memberID}.
type MemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner member"`
}

// TripMember is the JSON shape of a membership row.
type TripMember struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ListTripMembers handles GET /trips/{id}/members.
func (s *Server) ListTripMembers(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	members, err := s.members.List(r.Context(), user, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := make([]TripMember, len(members))
	for i, m := range members {
		data[i] = memberToResponse(m)
	}
	writeJSON(w, http.StatusOK, data)
}

// AddTripMember handles POST /trips/{id}/members.
func (s *Server) AddTripMember(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body AddMemberRequest
	if !decodeBody(w, r, &body) {
		return
	}

	added, err := s.members.Add(r.Context(), user, tripID, body.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToResponse(added))
}

// UpdateTripMemberRole handles PATCH /trips/{id}/members/{memberID}.
func (s *Server) UpdateTripMemberRole(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, memberID, ok := memberPath(w, r)
	if !ok {
		return
	}
	var body MemberRoleRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.members.UpdateRole(r.Context(), user, tripID, memberID, domain.MemberRole(body.Role))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberToResponse(updated))
}

// RemoveTripMember handles DELETE /trips/{id}/members/{memberID}.
func (s *Server) RemoveTripMember(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, memberID, ok := memberPath(w, r)
	if !ok {
		return
	}

	if err := s.members.Remove(r.Context(), user, tripID, memberID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func memberPath(w http.ResponseWriter, r *http.Request) (tripID, memberID uuid.UUID, ok bool) {
	tripID, err := pathUUID(r, "id")
	if err == nil {
		memberID, err = pathUUID(r, "memberID")
	}
	if err != nil {
		writeError(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}
	return tripID, memberID, true
}

func memberToResponse(m domain.TripMember) TripMember {
	return TripMember{
		ID:        m.ID,
		TripID:    m.TripID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
	}
}

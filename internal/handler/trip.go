package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
type TripRequest struct {
	Destination  string             `json:"destination" validate:"required,max=255"`
	Type         string             `json:"type,omitempty" validate:"omitempty,oneof=vacation remote_week sabbatical event"`
	StartDate    openapi_types.Date `json:"start_date"`
	EndDate      openapi_types.Date `json:"end_date"`
	Notes        *string            `json:"notes,omitempty" validate:"omitempty,max=4000"`
	Latitude     *float64           `json:"destination_latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64           `json:"destination_longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	ParentTripID *uuid.UUID         `json:"parent_trip_id,omitempty"`
}

// StatusRequest is the body of POST /trips/{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=dreaming planning booked active completed"`
}

// Trip is the JSON shape of a trip.
type Trip struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	Type         string             `json:"type"`
	Destination  string             `json:"destination"`
	StartDate    openapi_types.Date `json:"start_date"`
	EndDate      openapi_types.Date `json:"end_date"`
	Status       string             `json:"status"`
	Notes        *string            `json:"notes,omitempty"`
	Latitude     *float64           `json:"destination_latitude,omitempty"`
	Longitude    *float64           `json:"destination_longitude,omitempty"`
	ParentTripID *uuid.UUID         `json:"parent_trip_id,omitempty"`
	MemberCount  int                `json:"member_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), user, requestToTrip(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?status=, ?page= and ?limit= (defaults: page=1, limit=50, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}

	var status *domain.TripStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := domain.TripStatus(raw)
		if !st.Valid() {
			writeError(w, r, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, raw))
			return
		}
		status = &st
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	f := domain.NewTripFilter(status, page, limit)
	trips, total, err := s.trips.List(r.Context(), user, f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data:       data,
		Pagination: Pagination{Page: f.Page, Limit: f.Limit, Total: int(total)},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	trip, err := s.trips.Get(r.Context(), user, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body TripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip := requestToTrip(body)
	trip.ID = id
	updated, err := s.trips.Update(r.Context(), user, trip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// AdvanceTripStatus handles POST /trips/{id}/status.
func (s *Server) AdvanceTripStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body StatusRequest
	if !decodeBody(w, r, &body) {
		return
	}

	trip, err := s.trips.AdvanceStatus(r.Context(), user, id, domain.TripStatus(body.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.trips.Delete(r.Context(), user, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(body TripRequest) domain.Trip {
	t := domain.Trip{
		Destination:  body.Destination,
		Type:         domain.TripType(body.Type),
		StartDate:    body.StartDate.Time,
		EndDate:      body.EndDate.Time,
		Latitude:     body.Latitude,
		Longitude:    body.Longitude,
		ParentTripID: body.ParentTripID,
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}

func tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Type:         string(t.Type),
		Destination:  t.Destination,
		StartDate:    openapi_types.Date{Time: t.StartDate},
		EndDate:      openapi_types.Date{Time: t.EndDate},
		Status:       string(t.Status),
		Latitude:     t.Latitude,
		Longitude:    t.Longitude,
		ParentTripID: t.ParentTripID,
		MemberCount:  t.MemberCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Notes != "" {
		resp.Notes = &t.Notes
	}
	return resp
}

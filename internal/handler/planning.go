package handler

import (
	"fmt"
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/planning"
)

// PlanningEventRequest is the body of POST /planning/events. The controller is
// stateless on the server: the client sends back the state it was last given.
// A missing state starts at the current month.
type PlanningEventRequest struct {
	State *planning.State `json:"state"`
	Event planning.Event  `json:"event"`
}

// GetPlanningMonth handles GET /planning/month?year=&month=. month is 0-based;
// both default to the current date.
func (s *Server) GetPlanningMonth(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	now := s.now()
	year, err := queryIntDefault(r, "year", now.Year())
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := queryIntDefault(r, "month", int(now.Month())-1)
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := s.planning.Month(r.Context(), user, year, month, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetPlanningQuarter handles GET /planning/quarter?year=&quarter=. quarter is 0-based.
func (s *Server) GetPlanningQuarter(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	now := s.now()
	year, err := queryIntDefault(r, "year", now.Year())
	if err != nil {
		writeError(w, r, err)
		return
	}
	quarter, err := queryIntDefault(r, "quarter", planning.QuarterOf(int(now.Month())-1))
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := s.planning.Quarter(r.Context(), user, year, quarter, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetPlanningYear handles GET /planning/year?year=&highlighted=.
func (s *Server) GetPlanningYear(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	now := s.now()
	year, err := queryIntDefault(r, "year", now.Year())
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := s.planning.YearView(r.Context(), user, year, r.URL.Query().Get("highlighted"), now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetPlanningSummary handles GET /planning/summary?zoom=&month=&year=&expanded=.
func (s *Server) GetPlanningSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	now := s.now()
	zoom := planning.ZoomLevel(r.URL.Query().Get("zoom"))
	if zoom == "" {
		zoom = planning.ZoomMonth
	}
	year, err := queryIntDefault(r, "year", now.Year())
	if err != nil {
		writeError(w, r, err)
		return
	}
	month, err := queryIntDefault(r, "month", int(now.Month())-1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	expanded, err := queryBool(r, "expanded")
	if err != nil {
		writeError(w, r, err)
		return
	}

	sum, err := s.planning.Summary(r.Context(), user, zoom, month, year, expanded)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// PostPlanningEvent handles POST /planning/events. The response carries the
// next state, the effects the server carried out, and the rendered view.
func (s *Server) PostPlanningEvent(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	var body PlanningEventRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Event.Kind == "" {
		writeError(w, r, fmt.Errorf("%w: event.kind is required", domain.ErrValidation))
		return
	}

	now := s.now()
	state := planning.NewState(int(now.Month())-1, now.Year())
	if body.State != nil {
		state = *body.State
	}

	frame, err := s.planning.Dispatch(r.Context(), user, state, body.Event, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

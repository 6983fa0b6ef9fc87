// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, member.go, calendar.go, planning.go, export.go) but all
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/middleware"
	"github.com/pkordes/travel-planner/backend/internal/planning"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, f domain.TripFilter) ([]domain.Trip, int64, error)
	Update(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	AdvanceStatus(ctx context.Context, userID, id uuid.UUID, to domain.TripStatus) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// MemberServicer manages the membership of a trip.
type MemberServicer interface {
	List(ctx context.Context, userID, tripID uuid.UUID) ([]domain.TripMember, error)
	Add(ctx context.Context, userID, tripID, newUserID uuid.UUID) (domain.TripMember, error)
	UpdateRole(ctx context.Context, userID, tripID, memberID uuid.UUID, role domain.MemberRole) (domain.TripMember, error)
	Remove(ctx context.Context, userID, tripID, memberID uuid.UUID) error
}

// CalendarServicer is the holiday country and custom day surface.
type CalendarServicer interface {
	Year(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarYear, error)
	SupportedCountries() []domain.Country
	EnableCountry(ctx context.Context, userID uuid.UUID, code string, year int) (domain.HolidayCalendar, error)
	DisableCountry(ctx context.Context, userID uuid.UUID, code string, year int) error
	CreateCustomDay(ctx context.Context, userID uuid.UUID, day domain.CustomDay) (domain.CustomDay, error)
	DeleteCustomDay(ctx context.Context, userID, id uuid.UUID) error
}

// PlanningServicer renders the planning calendar and drives its controller.
type PlanningServicer interface {
	Month(ctx context.Context, userID uuid.UUID, year, month int, now time.Time) (planning.MonthView, error)
	Quarter(ctx context.Context, userID uuid.UUID, year, quarter int, now time.Time) (planning.QuarterView, error)
	YearView(ctx context.Context, userID uuid.UUID, year int, highlighted string, now time.Time) (planning.YearView, error)
	Summary(ctx context.Context, userID uuid.UUID, zoom planning.ZoomLevel, month, year int, expanded bool) (planning.Summary, error)
	Dispatch(ctx context.Context, userID uuid.UUID, state planning.State, ev planning.Event, now time.Time) (service.Frame, error)
}

// ExportServicer assembles the yearly export.
type ExportServicer interface {
	Feed(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarFeed, error)
	ICS(ctx context.Context, userID uuid.UUID, year int, now time.Time) (string, error)
}

// Server holds the services behind every endpoint.
type Server struct {
	trips    TripServicer
	members  MemberServicer
	calendar CalendarServicer
	planning PlanningServicer
	export   ExportServicer
	now      func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, members MemberServicer, calendar CalendarServicer, planning PlanningServicer, export ExportServicer) *Server {
	return &Server{
		trips:    trips,
		members:  members,
		calendar: calendar,
		planning: planning,
		export:   export,
		now:      time.Now,
	}
}

// Routes returns the API router. /healthz and /openapi.yaml are public;
// everything else runs behind auth, which must put a user ID in the context
// (see middleware.NewAuth).
func (s *Server) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Post("/{id}/status", s.AdvanceTripStatus)

			r.Get("/{id}/members", s.ListTripMembers)
			r.Post("/{id}/members", s.AddTripMember)
			r.Patch("/{id}/members/{memberID}", s.UpdateTripMemberRole)
			r.Delete("/{id}/members/{memberID}", s.RemoveTripMember)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/holidays", s.GetCalendarYear)
			r.Get("/countries", s.ListCountries)
			r.Post("/countries", s.EnableCountry)
			r.Delete("/countries/{code}", s.DisableCountry)
			r.Post("/custom-days", s.CreateCustomDay)
			r.Delete("/custom-days/{id}", s.DeleteCustomDay)
			r.Get("/{year}.ics", s.GetCalendarICS)
		})

		r.Route("/planning", func(r chi.Router) {
			r.Get("/month", s.GetPlanningMonth)
			r.Get("/quarter", s.GetPlanningQuarter)
			r.Get("/year", s.GetPlanningYear)
			r.Get("/summary", s.GetPlanningSummary)
			r.Post("/events", s.PostPlanningEvent)
		})

		r.Get("/export", s.GetExport)
	})
	return r
}

// userID returns the authenticated caller or writes a 401.
func userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthorized)
	}
	return id, ok
}

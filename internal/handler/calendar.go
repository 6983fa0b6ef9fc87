package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Country is a holiday country a user can enable.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// EnableCountryRequest is the body of POST /calendar/countries.
type EnableCountryRequest struct {
	CountryCode string `json:"country_code" validate:"required,min=2,max=10"`
	Year        int    `json:"year" validate:"required,min=2000,max=2100"`
}

// HolidayCalendar is an enabled country for one year.
type HolidayCalendar struct {
	ID          uuid.UUID `json:"id"`
	CountryCode string    `json:"country_code"`
	Year        int       `json:"year"`
}

// Holiday is one computed public holiday.
type Holiday struct {
	Date        openapi_types.Date `json:"date"`
	Name        string             `json:"name"`
	CountryCode string             `json:"country_code"`
}

// CustomDayRequest is the body of POST /calendar/custom-days.
type CustomDayRequest struct {
	Name      string             `json:"name" validate:"required,max=255"`
	Date      openapi_types.Date `json:"date"`
	Recurring bool               `json:"recurring"`
}

// CustomDay is a user-defined calendar annotation.
type CustomDay struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Date      openapi_types.Date `json:"date"`
	Recurring bool               `json:"recurring"`
}

// CalendarYear is the body of GET /calendar/holidays.
type CalendarYear struct {
	Year             int               `json:"year"`
	Holidays         []Holiday         `json:"holidays"`
	CustomDays       []CustomDay       `json:"custom_days"`
	EnabledCountries []HolidayCalendar `json:"enabled_countries"`
}

// GetCalendarYear handles GET /calendar/holidays?year=. The year defaults to
// the current one.
func (s *Server) GetCalendarYear(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	year, err := queryIntDefault(r, "year", s.now().Year())
	if err != nil {
		writeError(w, r, err)
		return
	}

	cal, err := s.calendar.Year(r.Context(), user, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calendarYearToResponse(cal))
}

// ListCountries handles GET /calendar/countries.
func (s *Server) ListCountries(w http.ResponseWriter, _ *http.Request) {
	countries := s.calendar.SupportedCountries()
	out := make([]Country, len(countries))
	for i, c := range countries {
		out[i] = Country{Code: c.Code, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// EnableCountry handles POST /calendar/countries. A country already enabled
// for the year is a 409.
func (s *Server) EnableCountry(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	var body EnableCountryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	cal, err := s.calendar.EnableCountry(r.Context(), user, body.CountryCode, body.Year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, holidayCalendarToResponse(cal))
}

// DisableCountry handles DELETE /calendar/countries/{code}?year=.
func (s *Server) DisableCountry(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	year, err := queryIntDefault(r, "year", s.now().Year())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.calendar.DisableCountry(r.Context(), user, chi.URLParam(r, "code"), year); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCustomDay handles POST /calendar/custom-days.
func (s *Server) CreateCustomDay(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	var body CustomDayRequest
	if !decodeBody(w, r, &body) {
		return
	}

	day, err := s.calendar.CreateCustomDay(r.Context(), user, domain.CustomDay{
		Name:      body.Name,
		Date:      body.Date.Time,
		Recurring: body.Recurring,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customDayToResponse(day))
}

// DeleteCustomDay handles DELETE /calendar/custom-days/{id}.
func (s *Server) DeleteCustomDay(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.calendar.DeleteCustomDay(r.Context(), user, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCalendarICS handles GET /calendar/{year}.ics.
func (s *Server) GetCalendarICS(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: year must be an integer", domain.ErrValidation))
		return
	}
	s.writeICS(w, r, user, year)
}

func (s *Server) writeICS(w http.ResponseWriter, r *http.Request, user uuid.UUID, year int) {
	body, err := s.export.ICS(r.Context(), user, year, s.now().UTC())
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="travel-%d.ics"`, year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// --- mapping helpers --------------------------------------------------------

func calendarYearToResponse(c domain.CalendarYear) CalendarYear {
	out := CalendarYear{
		Year:             c.Year,
		Holidays:         holidaysToResponse(c.Holidays),
		CustomDays:       make([]CustomDay, len(c.CustomDays)),
		EnabledCountries: make([]HolidayCalendar, len(c.EnabledCountries)),
	}
	for i, d := range c.CustomDays {
		out.CustomDays[i] = customDayToResponse(d)
	}
	for i, e := range c.EnabledCountries {
		out.EnabledCountries[i] = holidayCalendarToResponse(e)
	}
	return out
}

func holidaysToResponse(hs []domain.HolidayEntry) []Holiday {
	out := make([]Holiday, len(hs))
	for i, h := range hs {
		out[i] = Holiday{Date: openapi_types.Date{Time: h.Date}, Name: h.Name, CountryCode: h.CountryCode}
	}
	return out
}

func holidayCalendarToResponse(c domain.HolidayCalendar) HolidayCalendar {
	return HolidayCalendar{ID: c.ID, CountryCode: c.CountryCode, Year: c.Year}
}

func customDayToResponse(d domain.CustomDay) CustomDay {
	return CustomDay{
		ID:        d.ID,
		Name:      d.Name,
		Date:      openapi_types.Date{Time: d.Date},
		Recurring: d.Recurring,
	}
}

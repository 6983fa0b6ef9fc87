package handler_test

import (
	"context"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	feed func(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarFeed, error)
	ics  func(ctx context.Context, userID uuid.UUID, year int, now time.Time) (string, error)
}

func (m *mockExportServicer) Feed(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarFeed, error) {
	return m.feed(ctx, userID, year)
}
func (m *mockExportServicer) ICS(ctx context.Context, userID uuid.UUID, year int, now time.Time) (string, error) {
	return m.ics(ctx, userID, year, now)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// feedFixture is one trip, one holiday and one recurring custom day in 2026.
func feedFixture() domain.CalendarFeed {
	return domain.CalendarFeed{
		Year:  2026,
		Trips: []domain.Trip{tripFixture()},
		Holidays: []domain.HolidayEntry{
			{Date: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day", CountryCode: "US"},
		},
		CustomDays: []domain.CustomDay{
			{ID: uuid.New(), Name: "Birthday, mine", Date: time.Date(1990, 11, 2, 0, 0, 0, 0, time.UTC), Recurring: true},
		},
	}
}

func exportRouter(svc handler.ExportServicer) http.Handler {
	return newRouter(deps{export: svc})
}

func feedOnly(t *testing.T) *mockExportServicer {
	return &mockExportServicer{
		feed: func(_ context.Context, userID uuid.UUID, year int) (domain.CalendarFeed, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, 2026, year)
			return feedFixture(), nil
		},
	}
}

// ---- GET /export: JSON ------------------------------------------------------

func TestGetExport_DefaultJSON(t *testing.T) {
	rec := do(t, exportRouter(feedOnly(t)), http.MethodGet, "/export?year=2026", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	resp := decode[handler.Export](t, rec)
	assert.Equal(t, 2026, resp.Year)
	require.Len(t, resp.Trips, 1)
	assert.Equal(t, "Lisbon", resp.Trips[0].Destination)
	require.Len(t, resp.Holidays, 1)
	require.Len(t, resp.CustomDays, 1)
	assert.True(t, resp.CustomDays[0].Recurring)
}

func TestGetExport_EmptyJSONArrays(t *testing.T) {
	svc := &mockExportServicer{
		feed: func(_ context.Context, _ uuid.UUID, year int) (domain.CalendarFeed, error) {
			return domain.CalendarFeed{Year: year}, nil
		},
	}

	rec := do(t, exportRouter(svc), http.MethodGet, "/export?year=2026&format=json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trips":[]`)
	assert.Contains(t, rec.Body.String(), `"custom_days":[]`)
}

// ---- GET /export: CSV -------------------------------------------------------

func TestGetExport_CSV(t *testing.T) {
	rec := do(t, exportRouter(feedOnly(t)), http.MethodGet, "/export?year=2026&format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "travel-2026.csv")

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus one row per entry")
	assert.Equal(t, "kind", records[0][0])

	trip := records[1]
	assert.Equal(t, []string{"trip", "Lisbon", "2026-06-01", "2026-06-15", "vacation", "dreaming"},
		[]string{trip[0], trip[2], trip[3], trip[4], trip[5], trip[6]})

	holiday := records[2]
	assert.Equal(t, "holiday", holiday[0])
	assert.Equal(t, "US", holiday[7])

	custom := records[3]
	assert.Equal(t, "Birthday, mine", custom[2], "commas survive quoting")
	assert.Equal(t, "true", custom[8])
}

// ---- GET /export: ICS and errors --------------------------------------------

func TestGetExport_ICS(t *testing.T) {
	svc := &mockExportServicer{
		ics: func(context.Context, uuid.UUID, int, time.Time) (string, error) {
			return "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", nil
		},
	}

	rec := do(t, exportRouter(svc), http.MethodGet, "/export?year=2026&format=ics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
}

func TestGetExport_422_UnknownFormat(t *testing.T) {
	rec := do(t, exportRouter(&mockExportServicer{}), http.MethodGet, "/export?format=xlsx", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, errorCode(t, rec).Message, "format")
}

func TestGetExport_500_ServiceError(t *testing.T) {
	svc := &mockExportServicer{
		feed: func(context.Context, uuid.UUID, int) (domain.CalendarFeed, error) {
			return domain.CalendarFeed{}, assert.AnError
		},
	}

	rec := do(t, exportRouter(svc), http.MethodGet, "/export?year=2026", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

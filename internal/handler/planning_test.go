package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/planning"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

type mockPlanningServicer struct {
	month    func(ctx context.Context, userID uuid.UUID, year, month int, now time.Time) (planning.MonthView, error)
	quarter  func(ctx context.Context, userID uuid.UUID, year, quarter int, now time.Time) (planning.QuarterView, error)
	yearView func(ctx context.Context, userID uuid.UUID, year int, highlighted string, now time.Time) (planning.YearView, error)
	summary  func(ctx context.Context, userID uuid.UUID, zoom planning.ZoomLevel, month, year int, expanded bool) (planning.Summary, error)
	dispatch func(ctx context.Context, userID uuid.UUID, state planning.State, ev planning.Event, now time.Time) (service.Frame, error)
}

func (m *mockPlanningServicer) Month(ctx context.Context, userID uuid.UUID, year, month int, now time.Time) (planning.MonthView, error) {
	return m.month(ctx, userID, year, month, now)
}
func (m *mockPlanningServicer) Quarter(ctx context.Context, userID uuid.UUID, year, quarter int, now time.Time) (planning.QuarterView, error) {
	return m.quarter(ctx, userID, year, quarter, now)
}
func (m *mockPlanningServicer) YearView(ctx context.Context, userID uuid.UUID, year int, highlighted string, now time.Time) (planning.YearView, error) {
	return m.yearView(ctx, userID, year, highlighted, now)
}
func (m *mockPlanningServicer) Summary(ctx context.Context, userID uuid.UUID, zoom planning.ZoomLevel, month, year int, expanded bool) (planning.Summary, error) {
	return m.summary(ctx, userID, zoom, month, year, expanded)
}
func (m *mockPlanningServicer) Dispatch(ctx context.Context, userID uuid.UUID, state planning.State, ev planning.Event, now time.Time) (service.Frame, error) {
	return m.dispatch(ctx, userID, state, ev, now)
}

var _ handler.PlanningServicer = (*mockPlanningServicer)(nil)

func planningRouter(svc handler.PlanningServicer) http.Handler {
	return newRouter(deps{planning: svc})
}

func TestGetPlanningMonth_200(t *testing.T) {
	svc := &mockPlanningServicer{
		month: func(_ context.Context, _ uuid.UUID, year, month int, _ time.Time) (planning.MonthView, error) {
			return planning.MonthView{Year: year, Month: month, Label: planning.PeriodLabel(planning.ZoomMonth, month, year)}, nil
		},
	}

	rec := do(t, planningRouter(svc), http.MethodGet, "/planning/month?year=2026&month=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[planning.MonthView](t, rec)
	assert.Equal(t, "February 2026", v.Label)
}

func TestGetPlanningMonth_DefaultsToNow(t *testing.T) {
	now := time.Now()
	svc := &mockPlanningServicer{
		month: func(_ context.Context, _ uuid.UUID, year, month int, _ time.Time) (planning.MonthView, error) {
			assert.Equal(t, now.Year(), year)
			assert.Equal(t, int(now.Month())-1, month)
			return planning.MonthView{}, nil
		},
	}

	rec := do(t, planningRouter(svc), http.MethodGet, "/planning/month", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPlanningMonth_422(t *testing.T) {
	svc := &mockPlanningServicer{
		month: func(context.Context, uuid.UUID, int, int, time.Time) (planning.MonthView, error) {
			return planning.MonthView{}, domain.ErrValidation
		},
	}

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, planningRouter(svc), http.MethodGet, "/planning/month?month=june", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, planningRouter(svc), http.MethodGet, "/planning/month?month=12", nil).Code)
}

func TestGetPlanningQuarter_200(t *testing.T) {
	svc := &mockPlanningServicer{
		quarter: func(_ context.Context, _ uuid.UUID, year, quarter int, _ time.Time) (planning.QuarterView, error) {
			assert.Equal(t, 3, quarter)
			return planning.QuarterView{Year: year, Quarter: quarter}, nil
		},
	}

	rec := do(t, planningRouter(svc), http.MethodGet, "/planning/quarter?year=2026&quarter=3", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetPlanningYear_200(t *testing.T) {
	svc := &mockPlanningServicer{
		yearView: func(_ context.Context, _ uuid.UUID, year int, highlighted string, _ time.Time) (planning.YearView, error) {
			assert.Equal(t, "abc", highlighted)
			return planning.YearView{Year: year, Label: "2026"}, nil
		},
	}

	rec := do(t, planningRouter(svc), http.MethodGet, "/planning/year?year=2026&highlighted=abc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026", decode[planning.YearView](t, rec).Label)
}

func TestGetPlanningSummary_200(t *testing.T) {
	svc := &mockPlanningServicer{
		summary: func(_ context.Context, _ uuid.UUID, zoom planning.ZoomLevel, month, year int, expanded bool) (planning.Summary, error) {
			assert.Equal(t, planning.ZoomQuarter, zoom)
			assert.Equal(t, 4, month)
			assert.True(t, expanded)
			return planning.Summary{StartDate: "2026-04-01", EndDate: "2026-06-30", Expanded: expanded}, nil
		},
	}

	rec := do(t, planningRouter(svc), http.MethodGet, "/planning/summary?zoom=quarter&month=4&year=2026&expanded=true", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-04-01", decode[planning.Summary](t, rec).StartDate)
}

func TestGetPlanningSummary_422_BadBool(t *testing.T) {
	rec := do(t, planningRouter(&mockPlanningServicer{}), http.MethodGet, "/planning/summary?expanded=maybe", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPostPlanningEvent_200(t *testing.T) {
	svc := &mockPlanningServicer{
		dispatch: func(_ context.Context, userID uuid.UUID, state planning.State, ev planning.Event, _ time.Time) (service.Frame, error) {
			assert.Equal(t, testUser, userID)
			assert.Equal(t, planning.ZoomQuarter, state.Zoom)
			assert.Equal(t, planning.EventNext, ev.Kind)
			next := state
			next.Month = 3
			return service.Frame{
				State:   next,
				Effects: []planning.Effect{},
				Label:   next.Label(),
				Quarter: &planning.QuarterView{Year: next.Year, Quarter: 1},
			}, nil
		},
	}
	state := planning.NewState(0, 2026)
	state.Zoom = planning.ZoomQuarter

	rec := do(t, planningRouter(svc), http.MethodPost, "/planning/events", map[string]any{
		"state": state,
		"event": map[string]any{"kind": "next"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	frame := decode[service.Frame](t, rec)
	assert.Equal(t, "Q2 2026", frame.Label)
	assert.Equal(t, 3, frame.State.Month)
	require.NotNil(t, frame.Quarter)
	assert.Nil(t, frame.Month)
}

func TestPostPlanningEvent_NoStateStartsAtCurrentMonth(t *testing.T) {
	now := time.Now()
	svc := &mockPlanningServicer{
		dispatch: func(_ context.Context, _ uuid.UUID, state planning.State, _ planning.Event, _ time.Time) (service.Frame, error) {
			assert.Equal(t, planning.ZoomMonth, state.Zoom)
			assert.Equal(t, now.Year(), state.Year)
			assert.Equal(t, int(now.Month())-1, state.Month)
			return service.Frame{State: state}, nil
		},
	}

	rec := do(t, planningRouter(svc), http.MethodPost, "/planning/events", map[string]any{
		"event": map[string]any{"kind": "toggle_summary"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPostPlanningEvent_422_MissingKind(t *testing.T) {
	rec := do(t, planningRouter(&mockPlanningServicer{}), http.MethodPost, "/planning/events", map[string]any{
		"event": map[string]any{"date": "2026-01-01"},
	})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, errorCode(t, rec).Message, "event.kind")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/planning"
)

// PlanningTrips is the slice of TripService the planning calendar uses.
type PlanningTrips interface {
	ListInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error)
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// PlanningCalendar is the slice of CalendarService the planning calendar uses.
type PlanningCalendar interface {
	Year(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarYear, error)
	EnableCountry(ctx context.Context, userID uuid.UUID, code string, year int) (domain.HolidayCalendar, error)
	DisableCountry(ctx context.Context, userID uuid.UUID, code string, year int) error
	CreateCustomDay(ctx context.Context, userID uuid.UUID, day domain.CustomDay) (domain.CustomDay, error)
}

// gridSlackDays widens the trip query so leading and trailing days of the
// January and December grids still show their bars.
const gridSlackDays = 14

// PlanningService feeds the planning view engine from the stores and carries
// out the effects the engine's controller emits.
type PlanningService struct {
	trips    PlanningTrips
	calendar PlanningCalendar
	opts     planning.Options
	log      *slog.Logger
}

// NewPlanningService constructs a PlanningService.
func NewPlanningService(trips PlanningTrips, calendar PlanningCalendar, opts planning.Options, log *slog.Logger) *PlanningService {
	if log == nil {
		log = slog.Default()
	}
	return &PlanningService{trips: trips, calendar: calendar, opts: opts, log: log}
}

// Options returns the engine options the service renders with.
func (s *PlanningService) Options() planning.Options {
	return s.opts
}

// Snapshot loads everything the engine needs to render year for userID.
func (s *PlanningService) Snapshot(ctx context.Context, userID uuid.UUID, year int) (planning.Snapshot, error) {
	cal, err := s.calendar.Year(ctx, userID, year)
	if err != nil {
		return planning.Snapshot{}, fmt.Errorf("service.PlanningService.Snapshot: %w", err)
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -gridSlackDays)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, gridSlackDays)
	trips, err := s.trips.ListInRange(ctx, userID, from, to)
	if err != nil {
		return planning.Snapshot{}, fmt.Errorf("service.PlanningService.Snapshot: %w", err)
	}
	return toSnapshot(trips, cal), nil
}

// Month renders the month grid for a 0-based month.
func (s *PlanningService) Month(ctx context.Context, userID uuid.UUID, year, month int, now time.Time) (planning.MonthView, error) {
	if month < 0 || month > 11 {
		return planning.MonthView{}, fmt.Errorf("%w: month must be 0 to 11", domain.ErrValidation)
	}
	data, err := s.Snapshot(ctx, userID, year)
	if err != nil {
		return planning.MonthView{}, err
	}
	return planning.BuildMonthView(s.input(year, month, data, now, nil, "")), nil
}

// Quarter renders the three months of a 0-based quarter.
func (s *PlanningService) Quarter(ctx context.Context, userID uuid.UUID, year, quarter int, now time.Time) (planning.QuarterView, error) {
	if quarter < 0 || quarter > 3 {
		return planning.QuarterView{}, fmt.Errorf("%w: quarter must be 0 to 3", domain.ErrValidation)
	}
	data, err := s.Snapshot(ctx, userID, year)
	if err != nil {
		return planning.QuarterView{}, err
	}
	return planning.BuildQuarterView(s.input(year, quarter*3, data, now, nil, "")), nil
}

// YearView renders twelve compact months and the trip inventory.
func (s *PlanningService) YearView(ctx context.Context, userID uuid.UUID, year int, highlighted string, now time.Time) (planning.YearView, error) {
	data, err := s.Snapshot(ctx, userID, year)
	if err != nil {
		return planning.YearView{}, err
	}
	return planning.BuildYearView(s.input(year, 0, data, now, nil, highlighted)), nil
}

// Summary returns the summary strip for the cursor's period.
func (s *PlanningService) Summary(ctx context.Context, userID uuid.UUID, zoom planning.ZoomLevel, month, year int, expanded bool) (planning.Summary, error) {
	if !zoom.Valid() {
		return planning.Summary{}, fmt.Errorf("%w: unknown zoom %q", domain.ErrValidation, zoom)
	}
	if month < 0 || month > 11 {
		return planning.Summary{}, fmt.Errorf("%w: month must be 0 to 11", domain.ErrValidation)
	}
	data, err := s.Snapshot(ctx, userID, year)
	if err != nil {
		return planning.Summary{}, err
	}
	return planning.BuildSummary(zoom, month, year, expanded, data, s.opts), nil
}

// EffectFailure reports an effect the service could not carry out.
type EffectFailure struct {
	Effect planning.Effect `json:"effect"`
	Error  string          `json:"error"`
}

// Frame is the controller state after an event, rendered.
// Exactly one of Month, Quarter and Year is set, matching State.Zoom.
type Frame struct {
	State   planning.State        `json:"state"`
	Effects []planning.Effect     `json:"effects"`
	Failed  []EffectFailure       `json:"failed,omitempty"`
	Label   string                `json:"label"`
	Month   *planning.MonthView   `json:"month,omitempty"`
	Quarter *planning.QuarterView `json:"quarter,omitempty"`
	Year    *planning.YearView    `json:"year,omitempty"`
	Summary planning.Summary      `json:"summary"`
}

// Dispatch applies ev to state, carries out the resulting effects and renders
// the next state. Effects are attempted in order; a failed effect is reported
// in Frame.Failed and does not stop the rest.
//
// Once data for the displayed year is loaded the holidays_loaded event is
// applied on the user's behalf, so the default holiday country is enabled
// without a second round trip.
func (s *PlanningService) Dispatch(ctx context.Context, userID uuid.UUID, state planning.State, ev planning.Event, now time.Time) (Frame, error) {
	if state.Zoom == "" {
		state.Zoom = planning.ZoomMonth
	}
	if ev.Kind == planning.EventToday && ev.Date == "" {
		ev.Date = s.opts.Today(now)
	}
	if err := validateDispatch(state, ev); err != nil {
		return Frame{}, err
	}

	data, err := s.Snapshot(ctx, userID, state.Year)
	if err != nil {
		return Frame{}, err
	}
	next, effects := planning.Reduce(state, ev, data, s.opts)
	failed := s.apply(ctx, userID, effects)

	if err := validateYear(next.Year); err != nil {
		return Frame{}, err
	}
	if data, err = s.Snapshot(ctx, userID, next.Year); err != nil {
		return Frame{}, err
	}
	if !next.AutoEnabled {
		var auto []planning.Effect
		next, auto = planning.Reduce(next, planning.Event{Kind: planning.EventHolidaysLoaded, Year: next.Year}, data, s.opts)
		if len(auto) > 0 {
			effects = append(effects, auto...)
			failed = append(failed, s.apply(ctx, userID, auto)...)
			if data, err = s.Snapshot(ctx, userID, next.Year); err != nil {
				return Frame{}, err
			}
		}
	}

	frame := Frame{
		State:   next,
		Effects: effects,
		Failed:  failed,
		Label:   next.Label(),
		Summary: planning.BuildSummary(next.Zoom, next.Month, next.Year, next.SummaryExpanded, data, s.opts),
	}
	if frame.Effects == nil {
		frame.Effects = []planning.Effect{}
	}
	in := s.input(next.Year, next.Month, data, now, next.Drag.Selection, next.Highlighted)
	switch next.Zoom {
	case planning.ZoomQuarter:
		v := planning.BuildQuarterView(in)
		frame.Quarter = &v
	case planning.ZoomYear:
		v := planning.BuildYearView(in)
		frame.Year = &v
	default:
		v := planning.BuildMonthView(in)
		frame.Month = &v
	}
	return frame, nil
}

// validateDispatch checks the client-held state and the event dates the
// reducers compare as strings.
func validateDispatch(state planning.State, ev planning.Event) error {
	if !state.Zoom.Valid() {
		return fmt.Errorf("%w: unknown zoom %q", domain.ErrValidation, state.Zoom)
	}
	if state.Month < 0 || state.Month > 11 {
		return fmt.Errorf("%w: state.month must be 0 to 11", domain.ErrValidation)
	}
	if err := validateYear(state.Year); err != nil {
		return err
	}
	if a := state.Drag.Anchor; a != "" && !planning.ValidDate(a) {
		return fmt.Errorf("%w: state.drag.anchor %q is not YYYY-MM-DD", domain.ErrValidation, a)
	}
	if sel := state.Drag.Selection; sel != nil && (!planning.ValidDate(sel.StartDate) || !planning.ValidDate(sel.EndDate)) {
		return fmt.Errorf("%w: state.drag.selection dates must be YYYY-MM-DD", domain.ErrValidation)
	}

	switch ev.Kind {
	case planning.EventToday, planning.EventDragStart, planning.EventDragMove,
		planning.EventDayClick, planning.EventHolidayClick:
		if !planning.ValidDate(ev.Date) {
			return fmt.Errorf("%w: event.date %q is not YYYY-MM-DD", domain.ErrValidation, ev.Date)
		}
	}
	return nil
}

func (s *PlanningService) input(year, month int, data planning.Snapshot, now time.Time, sel *planning.Selection, highlighted string) planning.ViewInput {
	return planning.ViewInput{
		Year:        year,
		Month:       month,
		Data:        data,
		Today:       s.opts.Today(now),
		Selection:   sel,
		Highlighted: highlighted,
		Options:     s.opts,
	}
}

// apply carries out effects that reach the stores. Scroll effects are for the
// client and pass through untouched.
func (s *PlanningService) apply(ctx context.Context, userID uuid.UUID, effects []planning.Effect) []EffectFailure {
	var failed []EffectFailure
	for _, e := range effects {
		if err := s.applyOne(ctx, userID, e); err != nil {
			s.log.WarnContext(ctx, "planning effect failed", "effect", e.Kind, "error", err)
			failed = append(failed, EffectFailure{Effect: e, Error: err.Error()})
		}
	}
	return failed
}

func (s *PlanningService) applyOne(ctx context.Context, userID uuid.UUID, e planning.Effect) error {
	switch e.Kind {
	case planning.EffectEnableCountry:
		_, err := s.calendar.EnableCountry(ctx, userID, e.CountryCode, e.Year)
		if errors.Is(err, domain.ErrConflict) {
			return nil
		}
		return err
	case planning.EffectDisableCountry:
		return s.calendar.DisableCountry(ctx, userID, e.CountryCode, e.Year)
	case planning.EffectCreateTrip:
		if e.Draft == nil {
			return nil
		}
		trip, err := draftToTrip(*e.Draft)
		if err != nil {
			return err
		}
		_, err = s.trips.Create(ctx, userID, trip)
		return err
	case planning.EffectDeleteTrip:
		id, err := uuid.Parse(e.TripID)
		if err != nil {
			return fmt.Errorf("%w: trip_id is not a UUID", domain.ErrValidation)
		}
		return s.trips.Delete(ctx, userID, id)
	case planning.EffectCreateCustomDay:
		if e.CustomDay == nil {
			return nil
		}
		date, err := time.Parse(planning.DateLayout, e.CustomDay.Date)
		if err != nil {
			return fmt.Errorf("%w: custom day date %q", domain.ErrValidation, e.CustomDay.Date)
		}
		_, err = s.calendar.CreateCustomDay(ctx, userID, domain.CustomDay{
			Name:      e.CustomDay.Name,
			Date:      date,
			Recurring: e.CustomDay.Recurring,
		})
		return err
	}
	return nil
}

func draftToTrip(d planning.TripDraft) (domain.Trip, error) {
	start, err := time.Parse(planning.DateLayout, d.StartDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: start_date %q", domain.ErrValidation, d.StartDate)
	}
	end, err := time.Parse(planning.DateLayout, d.EndDate)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: end_date %q", domain.ErrValidation, d.EndDate)
	}
	return domain.Trip{
		Destination: d.Destination,
		Type:        domain.TripType(d.Type),
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// toSnapshot projects domain records onto the engine's string-dated types.
func toSnapshot(trips []domain.Trip, cal domain.CalendarYear) planning.Snapshot {
	snap := planning.Snapshot{
		Trips:            make([]planning.Trip, 0, len(trips)),
		Holidays:         make([]planning.Holiday, 0, len(cal.Holidays)),
		CustomDays:       make([]planning.CustomDay, 0, len(cal.CustomDays)),
		EnabledCountries: make([]string, 0, len(cal.EnabledCountries)),
		HolidaysLoaded:   true,
	}
	for _, t := range trips {
		pt := planning.Trip{
			ID:          t.ID.String(),
			Destination: t.Destination,
			Type:        string(t.Type),
			Status:      string(t.Status),
			StartDate:   t.StartDate.Format(planning.DateLayout),
			EndDate:     t.EndDate.Format(planning.DateLayout),
			Latitude:    t.Latitude,
			Longitude:   t.Longitude,
			MemberCount: t.MemberCount,
		}
		if t.ParentTripID != nil {
			pt.ParentTripID = t.ParentTripID.String()
		}
		snap.Trips = append(snap.Trips, pt)
	}
	for _, h := range cal.Holidays {
		snap.Holidays = append(snap.Holidays, planning.Holiday{
			Date:        h.Date.Format(planning.DateLayout),
			Name:        h.Name,
			CountryCode: h.CountryCode,
		})
	}
	for _, d := range cal.CustomDays {
		snap.CustomDays = append(snap.CustomDays, planning.CustomDay{
			ID:        d.ID.String(),
			Name:      d.Name,
			Date:      d.Date.Format(planning.DateLayout),
			Recurring: d.Recurring,
		})
	}
	for _, c := range cal.EnabledCountries {
		snap.EnabledCountries = append(snap.EnabledCountries, c.CountryCode)
	}
	return snap
}

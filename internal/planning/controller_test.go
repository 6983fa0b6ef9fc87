package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/planning"
)

// run feeds events through Reduce and collects every effect.
func run(s planning.State, data planning.Snapshot, events ...planning.Event) (planning.State, []planning.Effect) {
	var all []planning.Effect
	for _, ev := range events {
		var effects []planning.Effect
		s, effects = planning.Reduce(s, ev, data, planning.DefaultOptions())
		all = append(all, effects...)
	}
	return s, all
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "March 2026", planning.PeriodLabel(planning.ZoomMonth, 2, 2026))
	assert.Equal(t, "Q2 2026", planning.PeriodLabel(planning.ZoomQuarter, 4, 2026))
	assert.Equal(t, "2026", planning.PeriodLabel(planning.ZoomYear, 4, 2026))
}

func TestStep(t *testing.T) {
	cases := []struct {
		name            string
		zoom            planning.ZoomLevel
		month, year     int
		dir             int
		wantM, wantYear int
	}{
		{"month next", planning.ZoomMonth, 4, 2026, 1, 5, 2026},
		{"month rolls forward", planning.ZoomMonth, 11, 2026, 1, 0, 2027},
		{"month rolls back", planning.ZoomMonth, 0, 2026, -1, 11, 2025},
		{"quarter next lands on first month", planning.ZoomQuarter, 4, 2026, 1, 6, 2026},
		{"quarter rolls forward", planning.ZoomQuarter, 10, 2026, 1, 0, 2027},
		{"quarter rolls back", planning.ZoomQuarter, 1, 2026, -1, 9, 2025},
		{"year keeps month", planning.ZoomYear, 7, 2026, -1, 7, 2025},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, y := planning.Step(tc.zoom, tc.month, tc.year, tc.dir)
			assert.Equal(t, tc.wantM, m)
			assert.Equal(t, tc.wantYear, y)
		})
	}
}

func TestReduce_Navigation(t *testing.T) {
	s := planning.NewState(11, 2026)

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventNext})
	assert.Equal(t, "January 2027", s.Label())

	s, _ = run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventSetZoom, Zoom: planning.ZoomQuarter},
		planning.Event{Kind: planning.EventPrev},
	)
	assert.Equal(t, "Q4 2026", s.Label())
	assert.Equal(t, 9, s.Month)
	assert.Equal(t, 3, s.Quarter())

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventDrillMonth, Month: 10})
	assert.Equal(t, planning.ZoomMonth, s.Zoom)
	assert.Equal(t, "November 2026", s.Label())

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventSetZoom, Zoom: "decade"})
	assert.Equal(t, planning.ZoomMonth, s.Zoom, "unknown zoom is ignored")

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventToday, Date: "2030-03-18"})
	assert.Equal(t, "March 2030", s.Label())
}

func TestReduce_DragOpensTripCreate(t *testing.T) {
	s := planning.NewState(2, 2026)
	s.Sidebar = &planning.Sidebar{Kind: planning.SidebarCustomDayForm}

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventDragStart, Date: "2026-03-12"})
	assert.Nil(t, s.Sidebar, "a drag never runs with a sidebar open")
	assert.True(t, s.Drag.Dragging())

	s, effects := run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventDragMove, Date: "2026-03-10"},
		planning.Event{Kind: planning.EventDragMove, Date: "2026-03-08"},
		planning.Event{Kind: planning.EventDragEnd},
	)

	assert.Empty(t, effects)
	require.NotNil(t, s.Sidebar)
	assert.Equal(t, planning.SidebarTripCreate, s.Sidebar.Kind)
	assert.Equal(t, &planning.Selection{StartDate: "2026-03-08", EndDate: "2026-03-12"}, s.Sidebar.Range)
	assert.Equal(t, planning.DragSelected, s.Drag.Phase)
}

func TestReduce_PointerLeaveCompletesDrag(t *testing.T) {
	s, _ := run(planning.NewState(2, 2026), planning.Snapshot{},
		planning.Event{Kind: planning.EventDragStart, Date: "2026-03-02"},
		planning.Event{Kind: planning.EventDragMove, Date: "2026-03-04"},
		planning.Event{Kind: planning.EventPointerLeave},
	)

	assert.False(t, s.Drag.Dragging())
	require.NotNil(t, s.Sidebar)
	assert.Equal(t, "2026-03-04", s.Sidebar.Range.EndDate)

	idle, _ := run(planning.NewState(2, 2026), planning.Snapshot{}, planning.Event{Kind: planning.EventPointerLeave})
	assert.Nil(t, idle.Sidebar)
	assert.Equal(t, planning.DragIdle, idle.Drag.Phase)
}

func TestReduce_DayClick(t *testing.T) {
	data := planning.Snapshot{Holidays: []planning.Holiday{
		{Date: "2026-05-25", Name: "Memorial Day", CountryCode: "US"},
		{Date: "2026-05-25", Name: "Whit Monday", CountryCode: "DE"},
	}}
	s := planning.NewState(4, 2026)
	s.Zoom = planning.ZoomQuarter

	quick, _ := run(s, data, planning.Event{Kind: planning.EventDayClick, Date: "2026-05-11"})
	require.NotNil(t, quick.Sidebar)
	assert.Equal(t, planning.SidebarTripCreate, quick.Sidebar.Kind)
	assert.Equal(t, &planning.Selection{StartDate: "2026-05-11", EndDate: "2026-05-17"}, quick.Sidebar.Range)

	holiday, _ := run(s, data, planning.Event{Kind: planning.EventDayClick, Date: "2026-05-25"})
	require.NotNil(t, holiday.Sidebar)
	assert.Equal(t, planning.SidebarHolidayDetail, holiday.Sidebar.Kind)
	assert.Equal(t, "Whit Monday", holiday.Sidebar.Holiday.Name)

	none, _ := run(s, data, planning.Event{Kind: planning.EventHolidayClick, Date: "2026-05-26"})
	assert.Nil(t, none.Sidebar)
}

func TestReduce_SidebarReplacesAndCloses(t *testing.T) {
	lisbon := trip("lisbon", "2026-03-01", "2026-03-07")
	s, _ := run(planning.NewState(2, 2026), planning.Snapshot{},
		planning.Event{Kind: planning.EventAddCustomDay},
		planning.Event{Kind: planning.EventTripClick, Trip: &lisbon},
	)
	require.NotNil(t, s.Sidebar)
	assert.Equal(t, planning.SidebarTripDetail, s.Sidebar.Kind)
	assert.Equal(t, "lisbon", s.Sidebar.Trip.ID)

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventCloseSidebar})
	assert.Nil(t, s.Sidebar)
}

func TestReduce_SidebarActionsEmitEffects(t *testing.T) {
	s := planning.NewState(2, 2026)
	draft := &planning.TripDraft{Destination: "Porto", Type: "vacation", StartDate: "2026-03-02", EndDate: "2026-03-06"}

	s, effects := run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventDragStart, Date: "2026-03-02"},
		planning.Event{Kind: planning.EventDragEnd},
		planning.Event{Kind: planning.EventCreateTrip, Draft: draft},
	)
	require.Len(t, effects, 1)
	assert.Equal(t, planning.EffectCreateTrip, effects[0].Kind)
	assert.Equal(t, "Porto", effects[0].Draft.Destination)
	assert.Nil(t, s.Sidebar)
	assert.Nil(t, s.Drag.Selection)

	_, effects = run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventDeleteTrip, TripID: "t1"},
		planning.Event{Kind: planning.EventCreateCustomDay, CustomDay: &planning.CustomDay{Name: "Gala", Date: "2026-03-20"}},
	)
	require.Len(t, effects, 2)
	assert.Equal(t, planning.EffectDeleteTrip, effects[0].Kind)
	assert.Equal(t, "t1", effects[0].TripID)
	assert.Equal(t, planning.EffectCreateCustomDay, effects[1].Kind)
}

func TestReduce_ToggleCountry(t *testing.T) {
	data := planning.Snapshot{EnabledCountries: []string{"US"}}
	s := planning.NewState(0, 2026)

	_, effects := run(s, data,
		planning.Event{Kind: planning.EventToggleCountry, CountryCode: "US"},
		planning.Event{Kind: planning.EventToggleCountry, CountryCode: "DE"},
	)

	assert.Equal(t, []planning.Effect{
		{Kind: planning.EffectDisableCountry, CountryCode: "US", Year: 2026},
		{Kind: planning.EffectEnableCountry, CountryCode: "DE", Year: 2026},
	}, effects)
}

func TestReduce_AutoEnableFiresOnce(t *testing.T) {
	s := planning.NewState(0, 2026)
	loaded := planning.Event{Kind: planning.EventHolidaysLoaded, Year: 2026}
	ready := planning.Snapshot{HolidaysLoaded: true}

	_, effects := run(s, ready, planning.Event{Kind: planning.EventHolidaysLoaded, Year: 2025})
	assert.Empty(t, effects, "stale year does not trigger")

	_, effects = run(s, planning.Snapshot{HolidaysLoaded: true, EnabledCountries: []string{"GB"}}, loaded)
	assert.Empty(t, effects, "user already has a country")

	s, effects = run(s, ready, loaded, loaded)
	assert.Equal(t, []planning.Effect{{Kind: planning.EffectEnableCountry, CountryCode: "US", Year: 2026}}, effects)
	assert.True(t, s.AutoEnabled)

	// Later loads never re-arm it.
	_, effects = run(s, ready,
		planning.Event{Kind: planning.EventNext},
		planning.Event{Kind: planning.EventHolidaysLoaded, Year: 2026},
	)
	assert.Empty(t, effects)
}

func TestReduce_AutoEnableWaitsForHolidayData(t *testing.T) {
	s := planning.NewState(0, 2026)

	next, effects := run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventHolidaysLoaded, Year: 2026})

	assert.Empty(t, effects)
	assert.False(t, next.AutoEnabled, "the latch stays open until data has arrived")

	_, effects = run(next, planning.Snapshot{HolidaysLoaded: true}, planning.Event{Kind: planning.EventHolidaysLoaded, Year: 2026})
	assert.Len(t, effects, 1)
}

func TestReduce_InventoryHighlight(t *testing.T) {
	data := planning.Snapshot{Trips: []planning.Trip{trip("oslo", "2026-08-03", "2026-08-09")}}
	s := planning.NewState(0, 2026)
	s.Zoom = planning.ZoomYear

	s, effects := run(s, data, planning.Event{Kind: planning.EventInventoryClick, TripID: "oslo"})
	assert.Equal(t, "oslo", s.Highlighted)
	assert.Equal(t, []planning.Effect{{Kind: planning.EffectScrollToMonth, Month: 7, Year: 2026}}, effects)

	s, effects = run(s, data, planning.Event{Kind: planning.EventInventoryClick, TripID: "oslo"})
	assert.Empty(t, s.Highlighted)
	assert.Empty(t, effects)
}

func TestReduce_PeriodChangeResetsTransientState(t *testing.T) {
	s := planning.NewState(2, 2026)
	s, _ = run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventToggleSummary},
		planning.Event{Kind: planning.EventDragStart, Date: "2026-03-02"},
		planning.Event{Kind: planning.EventDragEnd},
	)
	require.True(t, s.SummaryExpanded)
	require.NotNil(t, s.Drag.Selection)

	s, _ = run(s, planning.Snapshot{}, planning.Event{Kind: planning.EventNext})
	assert.False(t, s.SummaryExpanded)
	assert.Nil(t, s.Drag.Selection)

	// Switching month to year zoom widens the bounds too.
	s, _ = run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventToggleSummary},
		planning.Event{Kind: planning.EventSetZoom, Zoom: planning.ZoomYear},
	)
	assert.False(t, s.SummaryExpanded)

	// Toggling twice within one period keeps the bounds stable.
	s, _ = run(s, planning.Snapshot{},
		planning.Event{Kind: planning.EventToggleSummary},
		planning.Event{Kind: planning.EventSetZoom, Zoom: planning.ZoomYear},
	)
	assert.True(t, s.SummaryExpanded)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	in := planning.NewState(2, 2026)
	in.Sidebar = &planning.Sidebar{Kind: planning.SidebarCustomDayForm}

	_, _ = planning.Reduce(in, planning.Event{Kind: planning.EventCloseSidebar}, planning.Snapshot{}, planning.DefaultOptions())

	require.NotNil(t, in.Sidebar)
	assert.Equal(t, planning.SidebarCustomDayForm, in.Sidebar.Kind)
}

package planning

import (
	"fmt"
	"strconv"
)

// ZoomLevel is the calendar granularity.
type ZoomLevel string

const (
	ZoomMonth   ZoomLevel = "month"
	ZoomQuarter ZoomLevel = "quarter"
	ZoomYear    ZoomLevel = "year"
)

// Valid reports whether z is one of the three zoom levels.
func (z ZoomLevel) Valid() bool {
	switch z {
	case ZoomMonth, ZoomQuarter, ZoomYear:
		return true
	}
	return false
}

// QuarterOf returns the 0-based quarter of a 0-based month.
func QuarterOf(month int) int {
	return month / 3
}

// PeriodLabel renders the header label for a zoom level and cursor.
func PeriodLabel(zoom ZoomLevel, month, year int) string {
	switch zoom {
	case ZoomQuarter:
		return fmt.Sprintf("Q%d %d", QuarterOf(month)+1, year)
	case ZoomYear:
		return strconv.Itoa(year)
	default:
		return fmt.Sprintf("%s %d", MonthNames[month], year)
	}
}

// Step moves the cursor one period forward (dir = 1) or back (dir = -1).
// Month steps roll the year at December/January, quarter steps land on the
// first month of the adjacent quarter, year steps keep the month.
func Step(zoom ZoomLevel, month, year, dir int) (int, int) {
	switch zoom {
	case ZoomQuarter:
		q := QuarterOf(month) + dir
		switch {
		case q < 0:
			return 9, year - 1
		case q > 3:
			return 0, year + 1
		}
		return q * 3, year
	case ZoomYear:
		return month, year + dir
	default:
		m := month + dir
		switch {
		case m < 0:
			return 11, year - 1
		case m > 11:
			return 0, year + 1
		}
		return m, year
	}
}

// SidebarKind tags the sidebar content union.
type SidebarKind string

const (
	SidebarTripDetail    SidebarKind = "trip_detail"
	SidebarTripCreate    SidebarKind = "trip_create"
	SidebarHolidayDetail SidebarKind = "holiday_detail"
	SidebarCustomDayForm SidebarKind = "custom_day_form"
)

// Sidebar is the single open sidebar panel. Only the payload of its Kind is set.
type Sidebar struct {
	Kind    SidebarKind `json:"kind"`
	Trip    *Trip       `json:"trip,omitempty"`
	Range   *Selection  `json:"range,omitempty"`
	Holiday *Holiday    `json:"holiday,omitempty"`
}

// State is everything the planning controller owns.
type State struct {
	Zoom  ZoomLevel `json:"zoom"`
	Month int       `json:"month"`
	Year  int       `json:"year"`
	Drag  Drag      `json:"drag"`
	// Sidebar is nil when closed.
	Sidebar *Sidebar `json:"sidebar,omitempty"`
	// Highlighted is the trip ID highlighted in the year inventory.
	Highlighted     string `json:"highlighted,omitempty"`
	SummaryExpanded bool   `json:"summary_expanded"`
	// AutoEnabled latches once the default holiday country was enabled.
	AutoEnabled bool `json:"auto_enabled"`
}

// NewState returns the month view at the given 0-based month.
func NewState(month, year int) State {
	return State{Zoom: ZoomMonth, Month: month, Year: year, Drag: Drag{Phase: DragIdle}}
}

// Label is the period label of the state's cursor.
func (s State) Label() string {
	return PeriodLabel(s.Zoom, s.Month, s.Year)
}

// Quarter is derived from the month cursor and never stored.
func (s State) Quarter() int {
	return QuarterOf(s.Month)
}

// EventKind tags a controller event.
type EventKind string

const (
	EventPrev            EventKind = "prev"
	EventNext            EventKind = "next"
	EventSetZoom         EventKind = "set_zoom"
	EventDrillMonth      EventKind = "drill_month"
	EventToday           EventKind = "today"
	EventDragStart       EventKind = "drag_start"
	EventDragMove        EventKind = "drag_move"
	EventDragEnd         EventKind = "drag_end"
	EventPointerLeave    EventKind = "pointer_leave"
	EventDayClick        EventKind = "day_click"
	EventTripClick       EventKind = "trip_click"
	EventHolidayClick    EventKind = "holiday_click"
	EventInventoryClick  EventKind = "inventory_click"
	EventAddCustomDay    EventKind = "add_custom_day"
	EventCloseSidebar    EventKind = "close_sidebar"
	EventHolidaysLoaded  EventKind = "holidays_loaded"
	EventToggleSummary   EventKind = "toggle_summary"
	EventCreateTrip      EventKind = "create_trip"
	EventDeleteTrip      EventKind = "delete_trip"
	EventCreateCustomDay EventKind = "create_custom_day"
	EventToggleCountry   EventKind = "toggle_country"
)

// Event is a user or data event. Only the fields the Kind needs are read.
type Event struct {
	Kind        EventKind  `json:"kind"`
	Date        string     `json:"date,omitempty"`
	Zoom        ZoomLevel  `json:"zoom,omitempty"`
	Month       int        `json:"month,omitempty"`
	Year        int        `json:"year,omitempty"`
	Trip        *Trip      `json:"trip,omitempty"`
	TripID      string     `json:"trip_id,omitempty"`
	CountryCode string     `json:"country_code,omitempty"`
	Draft       *TripDraft `json:"draft,omitempty"`
	CustomDay   *CustomDay `json:"custom_day,omitempty"`
}

// TripDraft is the trip-create form submission.
type TripDraft struct {
	Destination string `json:"destination"`
	Type        string `json:"type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// EffectKind tags an outbound call the controller asks its host to make.
type EffectKind string

const (
	EffectEnableCountry   EffectKind = "enable_country"
	EffectDisableCountry  EffectKind = "disable_country"
	EffectCreateTrip      EffectKind = "create_trip"
	EffectDeleteTrip      EffectKind = "delete_trip"
	EffectCreateCustomDay EffectKind = "create_custom_day"
	EffectScrollToMonth   EffectKind = "scroll_to_month"
)

// Effect is a fire-and-forget request to an external collaborator.
// The controller never waits for its outcome.
type Effect struct {
	Kind        EffectKind `json:"kind"`
	CountryCode string     `json:"country_code,omitempty"`
	Year        int        `json:"year,omitempty"`
	Month       int        `json:"month,omitempty"`
	TripID      string     `json:"trip_id,omitempty"`
	Draft       *TripDraft `json:"draft,omitempty"`
	CustomDay   *CustomDay `json:"custom_day,omitempty"`
}

// Reduce applies ev to s. It never mutates s and performs no I/O; outbound
// calls are returned as effects. data is the snapshot currently on screen.
func Reduce(s State, ev Event, data Snapshot, opts Options) (State, []Effect) {
	opts = opts.withDefaults()
	if !s.Zoom.Valid() {
		s.Zoom = ZoomMonth
	}
	start, end := PeriodBounds(s.Zoom, s.Month, s.Year)

	next, effects := reduce(s, ev, data, opts)

	if nStart, nEnd := PeriodBounds(next.Zoom, next.Month, next.Year); nStart != start || nEnd != end {
		next.SummaryExpanded = false
		next.Drag = next.Drag.Clear()
		if next.Year != s.Year {
			next.Highlighted = ""
		}
	}
	return next, effects
}

func reduce(s State, ev Event, data Snapshot, opts Options) (State, []Effect) {
	switch ev.Kind {
	case EventPrev:
		s.Month, s.Year = Step(s.Zoom, s.Month, s.Year, -1)
	case EventNext:
		s.Month, s.Year = Step(s.Zoom, s.Month, s.Year, 1)
	case EventSetZoom:
		if ev.Zoom.Valid() {
			s.Zoom = ev.Zoom
		}
	case EventDrillMonth:
		if ev.Month >= 0 && ev.Month <= 11 {
			s.Month = ev.Month
			s.Zoom = ZoomMonth
		}
	case EventToday:
		// The host supplies its own current date; the engine keeps no clock.
		if y, m, _, ok := SplitDate(ev.Date); ok {
			s.Month, s.Year = m, y
		}

	case EventDragStart:
		// A new gesture supersedes whatever panel was open.
		s.Sidebar = nil
		s.Drag = s.Drag.Start(ev.Date)
	case EventDragMove:
		s.Drag = s.Drag.Move(ev.Date)
	case EventDragEnd, EventPointerLeave:
		var sel Selection
		var ok bool
		s.Drag, sel, ok = s.Drag.End()
		if ok {
			s.Sidebar = &Sidebar{Kind: SidebarTripCreate, Range: &sel}
		}

	case EventDayClick:
		if _, isHoliday := HolidayMap(data.Holidays)[ev.Date]; isHoliday {
			return openHoliday(s, ev.Date, data), nil
		}
		sel := NewSelection(ev.Date, AddDays(ev.Date, opts.QuickAddDays-1))
		s.Sidebar = &Sidebar{Kind: SidebarTripCreate, Range: &sel}
	case EventTripClick:
		if ev.Trip != nil {
			t := *ev.Trip
			s.Sidebar = &Sidebar{Kind: SidebarTripDetail, Trip: &t}
		}
	case EventHolidayClick:
		return openHoliday(s, ev.Date, data), nil
	case EventInventoryClick:
		if s.Highlighted == ev.TripID {
			s.Highlighted = ""
			return s, nil
		}
		s.Highlighted = ev.TripID
		for _, t := range data.Trips {
			if t.ID == ev.TripID {
				return s, []Effect{{Kind: EffectScrollToMonth, Month: monthIndex(t.StartDate, s.Year), Year: s.Year}}
			}
		}
	case EventAddCustomDay:
		s.Sidebar = &Sidebar{Kind: SidebarCustomDayForm}
	case EventCloseSidebar:
		s = closeSidebar(s)

	case EventHolidaysLoaded:
		if data.HolidaysLoaded && !s.AutoEnabled && ev.Year == s.Year && len(data.EnabledCountries) == 0 {
			s.AutoEnabled = true
			return s, []Effect{{Kind: EffectEnableCountry, CountryCode: opts.AutoEnableCountry, Year: s.Year}}
		}
	case EventToggleSummary:
		s.SummaryExpanded = !s.SummaryExpanded

	case EventCreateTrip:
		if ev.Draft != nil {
			d := *ev.Draft
			return closeSidebar(s), []Effect{{Kind: EffectCreateTrip, Draft: &d}}
		}
	case EventDeleteTrip:
		if ev.TripID != "" {
			return closeSidebar(s), []Effect{{Kind: EffectDeleteTrip, TripID: ev.TripID}}
		}
	case EventCreateCustomDay:
		if ev.CustomDay != nil {
			cd := *ev.CustomDay
			return closeSidebar(s), []Effect{{Kind: EffectCreateCustomDay, CustomDay: &cd}}
		}
	case EventToggleCountry:
		if ev.CountryCode == "" {
			return s, nil
		}
		kind := EffectEnableCountry
		for _, c := range data.EnabledCountries {
			if c == ev.CountryCode {
				kind = EffectDisableCountry
				break
			}
		}
		return s, []Effect{{Kind: kind, CountryCode: ev.CountryCode, Year: s.Year}}
	}
	return s, nil
}

// openHoliday opens the holiday sidebar for an exact date match.
// When several holidays share the date the last one wins, as in the grid label.
// Without a match the state is returned unchanged.
func openHoliday(s State, date string, data Snapshot) State {
	matches := HolidayIndex(data.Holidays)[date]
	if len(matches) == 0 {
		return s
	}
	h := matches[len(matches)-1]
	s.Sidebar = &Sidebar{Kind: SidebarHolidayDetail, Holiday: &h}
	return s
}

func closeSidebar(s State) State {
	s.Sidebar = nil
	s.Drag = s.Drag.Clear()
	return s
}

package planning

import (
	"fmt"
	"sort"
	"strconv"
)

// WeekdayNames are the column headers of every grid; weeks start on Sunday.
var WeekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CellAction is what a primary click or press on a cell does.
type CellAction string

const (
	// ActionNone marks blank padding cells.
	ActionNone CellAction = "none"
	// ActionDragSelect starts a drag selection (month view).
	ActionDragSelect CellAction = "drag_select"
	// ActionQuickAdd proposes a trip starting on the day (quarter and year views).
	ActionQuickAdd CellAction = "quick_add"
	// ActionHolidayDetail opens the holiday sidebar; it outranks the other actions.
	ActionHolidayDetail CellAction = "holiday_detail"
)

// Cell is a rendered day.
type Cell struct {
	Day
	IsToday        bool       `json:"is_today"`
	InSelection    bool       `json:"in_selection"`
	HolidayLabel   string     `json:"holiday_label,omitempty"`
	CustomDayLabel string     `json:"custom_day_label,omitempty"`
	Label          string     `json:"label,omitempty"`
	Action         CellAction `json:"action"`
}

// WeekRow is one rendered week with its visible bars.
type WeekRow struct {
	Cells         []Cell `json:"cells"`
	Bars          []Bar  `json:"bars"`
	Overflow      int    `json:"overflow"`
	OverflowLabel string `json:"overflow_label,omitempty"`
	ReservedRows  int    `json:"reserved_rows"`
}

// MonthView is the full-size month grid.
type MonthView struct {
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Label    string    `json:"label"`
	Weekdays [7]string `json:"weekdays"`
	Weeks    []WeekRow `json:"weeks"`
}

// MonthPanel is one compact month inside the quarter and year views.
type MonthPanel struct {
	Month int       `json:"month"`
	Name  string    `json:"name"`
	Weeks []WeekRow `json:"weeks"`
}

// QuarterView shows the three months of a quarter side by side.
type QuarterView struct {
	Year    int          `json:"year"`
	Quarter int          `json:"quarter"`
	Label   string       `json:"label"`
	Months  []MonthPanel `json:"months"`
}

// InventoryKind tags a row of the year inventory.
type InventoryKind string

const (
	InventoryTrip InventoryKind = "trip"
	InventoryGap  InventoryKind = "gap"
)

// InventoryRow is a trip or a free stretch between two trips.
type InventoryRow struct {
	Kind        InventoryKind `json:"kind"`
	Trip        *Trip         `json:"trip,omitempty"`
	Month       int           `json:"month"`
	Highlighted bool          `json:"highlighted,omitempty"`
	GapDays     int           `json:"gap_days,omitempty"`
	WeeksFree   int           `json:"weeks_free,omitempty"`
	Label       string        `json:"label"`
}

// YearView shows twelve compact months and the trip inventory.
type YearView struct {
	Year      int            `json:"year"`
	Label     string         `json:"label"`
	Months    []MonthPanel   `json:"months"`
	Inventory []InventoryRow `json:"inventory"`
}

// ViewInput carries everything a view build needs.
type ViewInput struct {
	Year  int
	Month int // 0-based; the quarter and year views derive their window from it
	Data  Snapshot
	// Today is the caller's current date, for the today marker.
	Today string
	// Selection is the live drag selection, if any.
	Selection *Selection
	// Highlighted is the trip ID highlighted in the year inventory.
	Highlighted string
	Options     Options
}

// BuildMonthView renders the month grid at the input cursor.
func BuildMonthView(in ViewInput) MonthView {
	opts := in.Options.withDefaults()
	overlay := NewOverlay(in.Data.Holidays, in.Data.CustomDays, in.Year)

	v := MonthView{
		Year:     in.Year,
		Month:    in.Month,
		Label:    PeriodLabel(ZoomMonth, in.Month, in.Year),
		Weekdays: WeekdayNames,
	}
	for _, week := range Weeks(MonthGrid(in.Year, in.Month)) {
		pack := PackWeek(week, in.Data.Trips)
		row := WeekRow{
			Cells:        renderCells(week, overlay, in, ActionDragSelect),
			Bars:         pack.Visible(opts.MonthBarCap),
			Overflow:     pack.Overflow(opts.MonthBarCap),
			ReservedRows: pack.ReservedRows(opts.MonthBarCap),
		}
		if row.Overflow > 0 {
			row.OverflowLabel = fmt.Sprintf("+%d more", row.Overflow)
		}
		v.Weeks = append(v.Weeks, row)
	}
	return v
}

// BuildQuarterView renders the three months of the cursor's quarter.
func BuildQuarterView(in ViewInput) QuarterView {
	opts := in.Options.withDefaults()
	overlay := NewOverlay(in.Data.Holidays, in.Data.CustomDays, in.Year)
	q := QuarterOf(in.Month)

	v := QuarterView{
		Year:    in.Year,
		Quarter: q,
		Label:   PeriodLabel(ZoomQuarter, in.Month, in.Year),
	}
	for m := q * 3; m < q*3+3; m++ {
		panel := buildPanel(in, overlay, m, opts.QuarterBarCap)
		for wi := range panel.Weeks {
			row := &panel.Weeks[wi]
			if row.Overflow > 0 {
				row.OverflowLabel = "+" + strconv.Itoa(row.Overflow)
			}
			for bi := range row.Bars {
				t := row.Bars[bi].Trip
				row.Bars[bi].Tooltip = fmt.Sprintf("%s: %s to %s", t.Destination, shortDate(t.StartDate), shortDate(t.EndDate))
			}
		}
		v.Months = append(v.Months, panel)
	}
	return v
}

// BuildYearView renders all twelve months plus the chronological trip inventory.
func BuildYearView(in ViewInput) YearView {
	opts := in.Options.withDefaults()
	overlay := NewOverlay(in.Data.Holidays, in.Data.CustomDays, in.Year)

	v := YearView{
		Year:  in.Year,
		Label: PeriodLabel(ZoomYear, in.Month, in.Year),
	}
	for m := 0; m < 12; m++ {
		panel := buildPanel(in, overlay, m, opts.YearBarCap)
		// The year strip has no room for an overflow marker.
		for wi := range panel.Weeks {
			panel.Weeks[wi].Overflow = 0
		}
		v.Months = append(v.Months, panel)
	}
	v.Inventory = BuildInventory(in.Data.Trips, in.Year, in.Highlighted, opts.GapThresholdDays)
	return v
}

// buildPanel renders one compact month. Trips are filtered to the month
// bounds first, then per week.
func buildPanel(in ViewInput, overlay Overlay, month, limit int) MonthPanel {
	start, end := MonthBounds(in.Year, month)
	trips := TripsInRange(in.Data.Trips, start, end)

	panel := MonthPanel{Month: month, Name: MonthNames[month]}
	for _, week := range Weeks(MiniGrid(in.Year, month)) {
		pack := PackWeek(week, trips)
		panel.Weeks = append(panel.Weeks, WeekRow{
			Cells:        renderCells(week, overlay, in, ActionQuickAdd),
			Bars:         pack.Visible(limit),
			Overflow:     pack.Overflow(limit),
			ReservedRows: pack.ReservedRows(limit),
		})
	}
	return panel
}

func renderCells(week []Day, overlay Overlay, in ViewInput, action CellAction) []Cell {
	cells := make([]Cell, len(week))
	for i, d := range week {
		c := Cell{Day: d, Action: ActionNone}
		if !d.Blank() {
			c.IsToday = d.Date == in.Today
			c.InSelection = in.Selection.Contains(d.Date)
			c.HolidayLabel, c.CustomDayLabel, c.Label = overlay.Labels(d.Date)
			c.Action = action
			if c.HolidayLabel != "" {
				c.Action = ActionHolidayDetail
			}
		}
		cells[i] = c
	}
	return cells
}

// BuildInventory lists the trips touching year in start-date order, inserting a
// gap row wherever the stretch between one trip's end and the next trip's
// start reaches threshold days.
func BuildInventory(trips []Trip, year int, highlighted string, threshold int) []InventoryRow {
	yearStart, yearEnd := FormatDate(year, 0, 1), FormatDate(year, 11, 31)
	inYear := TripsInRange(trips, yearStart, yearEnd)
	sort.SliceStable(inYear, func(i, j int) bool {
		return inYear[i].StartDate < inYear[j].StartDate
	})

	rows := make([]InventoryRow, 0, len(inYear))
	for i := range inYear {
		t := inYear[i]
		if i > 0 {
			prev := inYear[i-1]
			if gap := DaysBetween(prev.EndDate, t.StartDate); gap >= threshold {
				weeks := gap / 7
				rows = append(rows, InventoryRow{
					Kind:      InventoryGap,
					Month:     monthIndex(prev.EndDate, year),
					GapDays:   gap,
					WeeksFree: weeks,
					Label:     weeksFreeLabel(weeks),
				})
			}
		}
		rows = append(rows, InventoryRow{
			Kind:        InventoryTrip,
			Trip:        &t,
			Month:       monthIndex(t.StartDate, year),
			Highlighted: highlighted != "" && t.ID == highlighted,
			Label:       fmt.Sprintf("%s, %s to %s", t.Destination, shortDate(t.StartDate), shortDate(t.EndDate)),
		})
	}
	return rows
}

func weeksFreeLabel(weeks int) string {
	if weeks == 1 {
		return "1 week free"
	}
	return fmt.Sprintf("%d weeks free", weeks)
}

// monthIndex returns the 0-based month of date clamped into year.
func monthIndex(date string, year int) int {
	start, end := FormatDate(year, 0, 1), FormatDate(year, 11, 31)
	switch {
	case date < start:
		return 0
	case date > end:
		return 11
	}
	m, err := strconv.Atoi(date[5:7])
	if err != nil {
		return 0
	}
	return m - 1
}

package planning

import "sort"

// PeriodBounds returns the inclusive date range the cursor shows at a zoom level.
func PeriodBounds(zoom ZoomLevel, month, year int) (string, string) {
	switch zoom {
	case ZoomQuarter:
		first := QuarterOf(month) * 3
		start, _ := MonthBounds(year, first)
		_, end := MonthBounds(year, first+2)
		return start, end
	case ZoomYear:
		return FormatDate(year, 0, 1), FormatDate(year, 11, 31)
	default:
		return MonthBounds(year, month)
	}
}

// DatedLabel is a holiday or custom day resolved into the summary period.
type DatedLabel struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Summary is the compact strip above the grid.
type Summary struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	// Trips are the visible chips; TotalTrips counts all trips in the period.
	Trips      []Trip       `json:"trips"`
	TotalTrips int          `json:"total_trips"`
	Hidden     int          `json:"hidden"`
	Expanded   bool         `json:"expanded"`
	Holidays   []Holiday    `json:"holidays"`
	CustomDays []DatedLabel `json:"custom_days"`
	// Empty is set when nothing falls in the period; the strip is not drawn at all.
	Empty bool `json:"empty"`
}

// BuildSummary filters the snapshot to the cursor's period.
func BuildSummary(zoom ZoomLevel, month, year int, expanded bool, data Snapshot, opts Options) Summary {
	opts = opts.withDefaults()
	start, end := PeriodBounds(zoom, month, year)

	trips := TripsInRange(data.Trips, start, end)
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].StartDate < trips[j].StartDate
	})

	holidays := make([]Holiday, 0)
	for _, h := range data.Holidays {
		if h.Date >= start && h.Date <= end {
			holidays = append(holidays, h)
		}
	}
	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date < holidays[j].Date
	})

	custom := make([]DatedLabel, 0)
	for _, cd := range data.CustomDays {
		date, ok := ResolveCustomDate(cd, year)
		if ok && date >= start && date <= end {
			custom = append(custom, DatedLabel{Date: date, Name: cd.Name})
		}
	}
	sort.SliceStable(custom, func(i, j int) bool {
		return custom[i].Date < custom[j].Date
	})

	s := Summary{
		StartDate:  start,
		EndDate:    end,
		TotalTrips: len(trips),
		Expanded:   expanded,
		Holidays:   holidays,
		CustomDays: custom,
		Empty:      len(trips) == 0 && len(holidays) == 0 && len(custom) == 0,
	}
	s.Trips = trips
	if !expanded && len(trips) > opts.SummaryCap {
		s.Trips = trips[:opts.SummaryCap]
		s.Hidden = len(trips) - opts.SummaryCap
	}
	if s.Trips == nil {
		s.Trips = []Trip{}
	}
	return s
}

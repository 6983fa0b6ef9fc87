package planning

// Bar is a trip's rectangle within one week row.
type Bar struct {
	Trip       Trip `json:"trip"`
	StartCol   int  `json:"start_col"`
	ColSpan    int  `json:"col_span"`
	StackIndex int  `json:"stack_index"`
	// ContinuesBefore and ContinuesAfter mark a trip that runs past the row edges.
	ContinuesBefore bool `json:"continues_before"`
	ContinuesAfter  bool `json:"continues_after"`
	// Tooltip is set by views that render bars too small to carry a label.
	Tooltip string `json:"tooltip,omitempty"`
}

// WeekPack is the packed result for one week row.
type WeekPack struct {
	// Bars holds every renderable in-window bar, in stacking order.
	Bars []Bar
	// InWindow counts every trip overlapping the week, including bars dropped
	// for a non-positive span.
	InWindow int
}

// PackWeek lays the trips overlapping a week row out as stacked bars.
//
// Trips are taken in input order and the n-th overlapping trip gets stack
// index n. This is greedy: two trips that never overlap each other can still
// occupy different slots when a third trip overlaps both.
func PackWeek(week []Day, trips []Trip) WeekPack {
	weekStart, weekEnd, ok := weekWindow(week)
	if !ok {
		return WeekPack{}
	}

	var pack WeekPack
	for _, t := range trips {
		if !Overlaps(t.StartDate, t.EndDate, weekStart, weekEnd) {
			continue
		}
		stack := pack.InWindow
		pack.InWindow++

		startCol, endCol := columns(week, t)
		if endCol-startCol <= 0 {
			continue
		}
		pack.Bars = append(pack.Bars, Bar{
			Trip:            t,
			StartCol:        startCol,
			ColSpan:         endCol - startCol,
			StackIndex:      stack,
			ContinuesBefore: t.StartDate < weekStart,
			ContinuesAfter:  t.EndDate > weekEnd,
		})
	}
	return pack
}

// columns returns the half-open column range [startCol, endCol) a trip covers.
func columns(week []Day, t Trip) (int, int) {
	startCol := -1
	endCol := -1
	for i, d := range week {
		if d.Blank() {
			continue
		}
		if startCol < 0 && d.Date >= t.StartDate {
			startCol = i
		}
		if endCol < 0 && d.Date > t.EndDate {
			endCol = i
		}
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol < 0 {
		endCol = len(week)
	}
	return startCol, endCol
}

// Visible returns the bars whose stack index fits under limit.
func (p WeekPack) Visible(limit int) []Bar {
	out := make([]Bar, 0, len(p.Bars))
	for _, b := range p.Bars {
		if b.StackIndex < limit {
			out = append(out, b)
		}
	}
	return out
}

// Overflow returns how many overlapping trips do not fit under limit.
func (p WeekPack) Overflow(limit int) int {
	if p.InWindow > limit {
		return p.InWindow - limit
	}
	return 0
}

// ReservedRows is the number of bar rows a week must leave room for.
func (p WeekPack) ReservedRows(limit int) int {
	if p.InWindow < limit {
		return p.InWindow
	}
	return limit
}

// TripsInRange filters trips overlapping [start, end], keeping input order.
func TripsInRange(trips []Trip, start, end string) []Trip {
	var out []Trip
	for _, t := range trips {
		if Overlaps(t.StartDate, t.EndDate, start, end) {
			out = append(out, t)
		}
	}
	return out
}

package planning

// GridCells is the fixed size of a month grid: six full weeks.
const GridCells = 42

// Day is one cell of a calendar grid.
// Padding cells in a mini grid have an empty Date and DayNumber 0.
type Day struct {
	Date           string `json:"date"`
	DayNumber      int    `json:"day_number"`
	IsCurrentMonth bool   `json:"is_current_month"`
}

// Blank reports whether the cell is a mini-grid padding cell with no date.
func (d Day) Blank() bool {
	return d.Date == ""
}

// MonthGrid returns the 42-cell grid for a 0-based month: trailing days of the
// previous month, every day of the month, then leading days of the next month.
// Six rows are always produced so row count never changes between months.
func MonthGrid(year, month int) []Day {
	days := make([]Day, 0, GridCells)

	padding := FirstWeekday(year, month)
	prevLast := DaysInMonth(year, month-1)
	for i := padding - 1; i >= 0; i-- {
		d := prevLast - i
		days = append(days, Day{Date: FormatDate(year, month-1, d), DayNumber: d})
	}

	for d := 1; d <= DaysInMonth(year, month); d++ {
		days = append(days, Day{Date: FormatDate(year, month, d), DayNumber: d, IsCurrentMonth: true})
	}

	for d := 1; len(days) < GridCells; d++ {
		days = append(days, Day{Date: FormatDate(year, month+1, d), DayNumber: d})
	}
	return days
}

// MiniGrid returns the compact grid used by the quarter and year views:
// blank leading cells up to the first weekday, then the days of the month.
// There is no trailing padding.
func MiniGrid(year, month int) []Day {
	padding := FirstWeekday(year, month)
	n := DaysInMonth(year, month)
	days := make([]Day, padding, padding+n)
	for d := 1; d <= n; d++ {
		days = append(days, Day{Date: FormatDate(year, month, d), DayNumber: d, IsCurrentMonth: true})
	}
	return days
}

// Weeks splits a grid into rows of seven. The last row of a mini grid may be short.
func Weeks(days []Day) [][]Day {
	var weeks [][]Day
	for i := 0; i < len(days); i += 7 {
		end := i + 7
		if end > len(days) {
			end = len(days)
		}
		weeks = append(weeks, days[i:end])
	}
	return weeks
}

// weekWindow returns the first and last dated cell of a week row.
// ok is false when the row has no dated cells.
func weekWindow(week []Day) (start, end string, ok bool) {
	for _, d := range week {
		if d.Blank() {
			continue
		}
		if start == "" {
			start = d.Date
		}
		end = d.Date
	}
	return start, end, start != ""
}

// Package planning is the planning-calendar view engine.
//
// It computes month, quarter and year grids, overlays holidays and custom
// days, packs overlapping trips into stacked week bars, and runs the drag
// selection and planning controller state machines. It performs no I/O:
// callers hand in already-fetched snapshots and execute the effects it returns.
//
// Dates are "YYYY-MM-DD" strings throughout. Because they are zero-padded,
// plain string comparison orders them chronologically, and every range test in
// this package relies on that.
package planning

import (
	"fmt"
	"time"
)

// DateLayout is the only date format the engine accepts or produces.
const DateLayout = "2006-01-02"

// MonthNames are the English month names indexed by 0-based month.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatDate formats a 0-based month date as YYYY-MM-DD.
// Out-of-range months and days are normalised the way time.Date does,
// so FormatDate(2026, 12, 1) is "2027-01-01".
func FormatDate(year, month, day int) string {
	t := time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC)
	return t.Format(DateLayout)
}

// DaysInMonth returns the number of days in a 0-based month.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday (0 = Sunday) of the first day of a 0-based month.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// MonthBounds returns the first and last date of a 0-based month.
func MonthBounds(year, month int) (string, string) {
	return FormatDate(year, month, 1), FormatDate(year, month, DaysInMonth(year, month))
}

// AddDays shifts a YYYY-MM-DD date by n days.
// A malformed input date is returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysBetween returns the number of days from a to b (negative when b < a).
func DaysBetween(a, b string) int {
	ta, errA := time.Parse(DateLayout, a)
	tb, errB := time.Parse(DateLayout, b)
	if errA != nil || errB != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// SplitDate returns the year, 0-based month and day of a YYYY-MM-DD date.
func SplitDate(date string) (year, month, day int, ok bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), int(t.Month()) - 1, t.Day(), true
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return DaysInMonth(year, 1) == 29
}

// ValidDate reports whether s is a well-formed, zero-padded calendar date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// Overlaps is the inclusive interval overlap test on date strings.
func Overlaps(start, end, windowStart, windowEnd string) bool {
	return start <= windowEnd && end >= windowStart
}

// minDate and maxDate compare by string order.
func minDate(a, b string) string {
	if a <= b {
		return a
	}
	return b
}

func maxDate(a, b string) string {
	if a >= b {
		return a
	}
	return b
}

// shortDate renders "2026-03-05" as "Mar 5" for labels.
func shortDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
}

package domain

// CalendarFeed is the data behind a yearly iCalendar export: the user's trips
// touching the year plus the same holidays and custom days the planner shows.
type CalendarFeed struct {
	Year       int
	Trips      []Trip
	Holidays   []HolidayEntry
	CustomDays []CustomDay
}

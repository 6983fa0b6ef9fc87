package domain

import (
	"time"

	"github.com/google/uuid"
)

// Country is a holiday calendar a user can enable.
type Country struct {
	Code string
	Name string
}

// HolidayCalendar records that a user enabled a country's holidays for one year.
// (UserID, CountryCode, Year) is unique.
type HolidayCalendar struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CountryCode string
	Year        int
	CreatedAt   time.Time
}

// HolidayEntry is a computed public holiday; it is never stored.
type HolidayEntry struct {
	Date        time.Time
	Name        string
	CountryCode string
}

// CustomDay is a user-defined calendar annotation.
// A recurring day repeats on the month and day of Date every year.
type CustomDay struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Date      time.Time
	Recurring bool
	CreatedAt time.Time
}

// CalendarYear is everything the calendar shows for one user and year.
type CalendarYear struct {
	Year             int
	Holidays         []HolidayEntry
	CustomDays       []CustomDay
	EnabledCountries []HolidayCalendar
}

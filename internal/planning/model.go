package planning

// Trip is the summary projection of a trip the engine lays out.
// StartDate <= EndDate is a caller precondition.
type Trip struct {
	ID           string   `json:"id"`
	Destination  string   `json:"destination"`
	Type         string   `json:"type"`
	Status       string   `json:"status"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Latitude     *float64 `json:"destination_latitude,omitempty"`
	Longitude    *float64 `json:"destination_longitude,omitempty"`
	ParentTripID string   `json:"parent_trip_id,omitempty"`
	MemberCount  int      `json:"member_count"`
}

// Holiday is a public holiday of an enabled country.
type Holiday struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

// CustomDay is a user-defined calendar annotation.
// A recurring day repeats on its month-day every year.
type CustomDay struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

// Snapshot is the read-only data a render works from.
// Empty slices are normal: they stand in for "nothing yet" as well as "nothing at all".
type Snapshot struct {
	Trips            []Trip      `json:"trips"`
	Holidays         []Holiday   `json:"holidays"`
	CustomDays       []CustomDay `json:"custom_days"`
	EnabledCountries []string    `json:"enabled_countries"`
	// HolidaysLoaded is set once the holiday data for the displayed year arrived.
	HolidaysLoaded bool `json:"holidays_loaded"`
}

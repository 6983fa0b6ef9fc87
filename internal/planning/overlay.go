package planning

// HolidayIndex groups holidays by date, preserving input order within a date.
// Several enabled countries can share a date, so a date maps to zero or more entries.
func HolidayIndex(holidays []Holiday) map[string][]Holiday {
	idx := make(map[string][]Holiday, len(holidays))
	for _, h := range holidays {
		idx[h.Date] = append(idx[h.Date], h)
	}
	return idx
}

// HolidayMap maps each date to a single holiday name.
// Entries are folded in input order and a later entry for the same date
// overwrites the earlier one.
func HolidayMap(holidays []Holiday) map[string]string {
	m := make(map[string]string, len(holidays))
	for _, h := range holidays {
		m[h.Date] = h.Name
	}
	return m
}

// ResolveCustomDate returns the date a custom day is displayed on in year.
// Non-recurring days keep their stored date. Recurring days take year with the
// stored month-day. A recurring Feb 29 has no date in a non-leap year and ok is false.
func ResolveCustomDate(cd CustomDay, year int) (date string, ok bool) {
	if !cd.Recurring {
		return cd.Date, true
	}
	if len(cd.Date) != len(DateLayout) {
		return "", false
	}
	monthDay := cd.Date[5:]
	if monthDay == "02-29" && !IsLeapYear(year) {
		return "", false
	}
	return FormatDate(year, 0, 1)[:5] + monthDay, true
}

// ResolveCustomDays maps display dates to custom day names for year.
// Later entries win on a shared date, like HolidayMap.
func ResolveCustomDays(customDays []CustomDay, year int) map[string]string {
	m := make(map[string]string, len(customDays))
	for _, cd := range customDays {
		if date, ok := ResolveCustomDate(cd, year); ok {
			m[date] = cd.Name
		}
	}
	return m
}

// Overlay bundles the lookup maps a view needs for one display year.
type Overlay struct {
	Holidays   map[string]string
	CustomDays map[string]string
}

// NewOverlay builds the holiday and custom day lookups for year.
func NewOverlay(holidays []Holiday, customDays []CustomDay, year int) Overlay {
	return Overlay{
		Holidays:   HolidayMap(holidays),
		CustomDays: ResolveCustomDays(customDays, year),
	}
}

// Labels returns the labels shown on date. A holiday label suppresses the
// custom day label; they are never merged.
func (o Overlay) Labels(date string) (holiday, custom, label string) {
	holiday = o.Holidays[date]
	if holiday != "" {
		return holiday, "", holiday
	}
	custom = o.CustomDays[date]
	return "", custom, custom
}

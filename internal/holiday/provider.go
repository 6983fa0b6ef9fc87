// Package holiday computes public holidays for the countries a user enables
// and caches the results per (country, year).
package holiday

import (
	"fmt"
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

type country struct {
	name     string
	holidays []*cal.Holiday
}

var countries = map[string]country{
	"CA": {"Canada", ca.Holidays},
	"DE": {"Germany", de.Holidays},
	"ES": {"Spain", es.Holidays},
	"FR": {"France", fr.Holidays},
	"GB": {"United Kingdom", gb.Holidays},
	"IT": {"Italy", it.Holidays},
	"NL": {"Netherlands", nl.Holidays},
	"US": {"United States", us.Holidays},
}

// Provider computes holidays from built-in country rules. It does no I/O.
type Provider struct{}

// NewProvider returns a Provider over the built-in country set.
func NewProvider() *Provider {
	return &Provider{}
}

// Supported returns the countries holidays can be computed for, ordered by code.
func (p *Provider) Supported() []domain.Country {
	out := make([]domain.Country, 0, len(countries))
	for code, c := range countries {
		out = append(out, domain.Country{Code: code, Name: c.name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// IsSupported reports whether code names a supported country.
func (p *Provider) IsSupported(code string) bool {
	_, ok := countries[code]
	return ok
}

// Holidays returns the country's holidays in year, ordered by date.
// When a holiday is observed on a different day, the observed day is listed
// as its own entry suffixed " (observed)".
// Returns domain.ErrValidation for an unsupported country.
func (p *Provider) Holidays(year int, code string) ([]domain.HolidayEntry, error) {
	c, ok := countries[code]
	if !ok {
		return nil, fmt.Errorf("holiday.Provider.Holidays: unsupported country %q: %w", code, domain.ErrValidation)
	}

	entries := make([]domain.HolidayEntry, 0, len(c.holidays))
	for _, h := range c.holidays {
		actual, observed := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		entries = append(entries, domain.HolidayEntry{Date: dateOnly(actual), Name: h.Name, CountryCode: code})
		if !observed.IsZero() && dateOnly(observed) != dateOnly(actual) && observed.Year() == year {
			entries = append(entries, domain.HolidayEntry{Date: dateOnly(observed), Name: h.Name + " (observed)", CountryCode: code})
		}
	}
	sortEntries(entries)
	return entries, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sortEntries(entries []domain.HolidayEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].CountryCode < entries[j].CountryCode
	})
}

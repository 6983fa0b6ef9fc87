package holiday

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Lookup resolves holidays for several countries, reading through an
// optional cache. Cache errors are logged and never fail a lookup.
type Lookup struct {
	provider *Provider
	cache    Cache
	log      *slog.Logger
}

// NewLookup returns a Lookup. cache may be nil to compute every time.
func NewLookup(provider *Provider, cache Cache, log *slog.Logger) *Lookup {
	if log == nil {
		log = slog.Default()
	}
	return &Lookup{provider: provider, cache: cache, log: log}
}

// Supported lists the countries holidays can be computed for.
func (l *Lookup) Supported() []domain.Country {
	return l.provider.Supported()
}

// IsSupported reports whether code names a supported country.
func (l *Lookup) IsSupported(code string) bool {
	return l.provider.IsSupported(code)
}

// Holidays returns the merged holidays of every code in year, ordered by
// date then country. Unsupported codes are skipped.
func (l *Lookup) Holidays(ctx context.Context, year int, codes []string) ([]domain.HolidayEntry, error) {
	out := []domain.HolidayEntry{}
	for _, code := range codes {
		if !l.provider.IsSupported(code) {
			l.log.WarnContext(ctx, "skipping unsupported holiday country", "country_code", code, "year", year)
			continue
		}
		entries, err := l.country(ctx, year, code)
		if err != nil {
			return nil, fmt.Errorf("holiday.Lookup.Holidays: %w", err)
		}
		out = append(out, entries...)
	}
	sortEntries(out)
	return out, nil
}

func (l *Lookup) country(ctx context.Context, year int, code string) ([]domain.HolidayEntry, error) {
	if l.cache != nil {
		entries, ok, err := l.cache.Get(ctx, code, year)
		if err != nil {
			l.log.WarnContext(ctx, "holiday cache read failed", "country_code", code, "year", year, "error", err)
		} else if ok {
			return entries, nil
		}
	}

	entries, err := l.provider.Holidays(year, code)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, code, year, entries); err != nil {
			l.log.WarnContext(ctx, "holiday cache write failed", "country_code", code, "year", year, "error", err)
		}
	}
	return entries, nil
}

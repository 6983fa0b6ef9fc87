package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/feed"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// ExportService assembles a user's year of trips, holidays and custom days
// for export as JSON, CSV or an iCalendar feed.
type ExportService struct {
	trips    repo.TripRepo
	calendar *CalendarService
}

// NewExportService constructs an ExportService.
func NewExportService(trips repo.TripRepo, calendar *CalendarService) *ExportService {
	return &ExportService{trips: trips, calendar: calendar}
}

// Feed returns every trip touching year plus the year's holidays and custom days.
func (s *ExportService) Feed(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarFeed, error) {
	cal, err := s.calendar.Year(ctx, userID, year)
	if err != nil {
		return domain.CalendarFeed{}, fmt.Errorf("service.ExportService.Feed: %w", err)
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	trips, err := s.trips.ListInRange(ctx, userID, from, to)
	if err != nil {
		return domain.CalendarFeed{}, fmt.Errorf("service.ExportService.Feed: %w", err)
	}

	return domain.CalendarFeed{
		Year:       year,
		Trips:      trips,
		Holidays:   cal.Holidays,
		CustomDays: cal.CustomDays,
	}, nil
}

// ICS renders the year's feed as an iCalendar document stamped at now.
func (s *ExportService) ICS(ctx context.Context, userID uuid.UUID, year int, now time.Time) (string, error) {
	f, err := s.Feed(ctx, userID, year)
	if err != nil {
		return "", err
	}
	out, err := feed.Encode(f, now)
	if err != nil {
		return "", fmt.Errorf("service.ExportService.ICS: %w", err)
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

const (
	minCalendarYear  = 2000
	maxCalendarYear  = 2100
	maxCustomDayName = 255
)

// HolidaySource computes public holidays. holiday.Lookup satisfies it.
type HolidaySource interface {
	Supported() []domain.Country
	IsSupported(code string) bool
	Holidays(ctx context.Context, year int, codes []string) ([]domain.HolidayEntry, error)
}

// CalendarService manages the holiday countries and custom days a user
// overlays on the planning calendar.
type CalendarService struct {
	calendars repo.HolidayCalendarRepo
	days      repo.CustomDayRepo
	holidays  HolidaySource
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(calendars repo.HolidayCalendarRepo, days repo.CustomDayRepo, holidays HolidaySource) *CalendarService {
	return &CalendarService{calendars: calendars, days: days, holidays: holidays}
}

// Year returns the holidays of every enabled country, the custom days and the
// enabled countries for one year.
func (s *CalendarService) Year(ctx context.Context, userID uuid.UUID, year int) (domain.CalendarYear, error) {
	if err := validateYear(year); err != nil {
		return domain.CalendarYear{}, err
	}

	enabled, err := s.calendars.List(ctx, userID, year)
	if err != nil {
		return domain.CalendarYear{}, fmt.Errorf("service.CalendarService.Year: %w", err)
	}
	codes := make([]string, 0, len(enabled))
	for _, c := range enabled {
		codes = append(codes, c.CountryCode)
	}

	holidays, err := s.holidays.Holidays(ctx, year, codes)
	if err != nil {
		return domain.CalendarYear{}, fmt.Errorf("service.CalendarService.Year: %w", err)
	}
	days, err := s.days.ListForYear(ctx, userID, year)
	if err != nil {
		return domain.CalendarYear{}, fmt.Errorf("service.CalendarService.Year: %w", err)
	}

	return domain.CalendarYear{
		Year:             year,
		Holidays:         holidays,
		CustomDays:       days,
		EnabledCountries: enabled,
	}, nil
}

// SupportedCountries lists the countries a user can enable.
func (s *CalendarService) SupportedCountries() []domain.Country {
	return s.holidays.Supported()
}

// EnableCountry turns on a country's holidays for one year. Codes are
// case-insensitive. Enabling twice returns domain.ErrConflict.
func (s *CalendarService) EnableCountry(ctx context.Context, userID uuid.UUID, code string, year int) (domain.HolidayCalendar, error) {
	code, err := s.normaliseCountry(code)
	if err != nil {
		return domain.HolidayCalendar{}, err
	}
	if err := validateYear(year); err != nil {
		return domain.HolidayCalendar{}, err
	}

	cal, err := s.calendars.Enable(ctx, userID, code, year)
	if err != nil {
		return domain.HolidayCalendar{}, fmt.Errorf("service.CalendarService.EnableCountry: %w", err)
	}
	return cal, nil
}

// DisableCountry turns a country's holidays off for one year.
func (s *CalendarService) DisableCountry(ctx context.Context, userID uuid.UUID, code string, year int) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateYear(year); err != nil {
		return err
	}
	if err := s.calendars.Disable(ctx, userID, code, year); err != nil {
		return fmt.Errorf("service.CalendarService.DisableCountry: %w", err)
	}
	return nil
}

// CreateCustomDay validates and stores a custom day for userID.
func (s *CalendarService) CreateCustomDay(ctx context.Context, userID uuid.UUID, day domain.CustomDay) (domain.CustomDay, error) {
	day.UserID = userID
	day.Name = strings.TrimSpace(day.Name)
	switch {
	case day.Name == "":
		return domain.CustomDay{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	case utf8.RuneCountInString(day.Name) > maxCustomDayName:
		return domain.CustomDay{}, fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxCustomDayName)
	case day.Date.IsZero():
		return domain.CustomDay{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	day.Date = time.Date(day.Date.Year(), day.Date.Month(), day.Date.Day(), 0, 0, 0, 0, time.UTC)

	created, err := s.days.Create(ctx, day)
	if err != nil {
		return domain.CustomDay{}, fmt.Errorf("service.CalendarService.CreateCustomDay: %w", err)
	}
	return created, nil
}

// DeleteCustomDay removes one of the user's custom days.
func (s *CalendarService) DeleteCustomDay(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.days.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.CalendarService.DeleteCustomDay: %w", err)
	}
	return nil
}

func (s *CalendarService) normaliseCountry(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if n := len(code); n < 2 || n > 10 {
		return "", fmt.Errorf("%w: country_code must be 2 to 10 characters", domain.ErrValidation)
	}
	if !s.holidays.IsSupported(code) {
		return "", fmt.Errorf("%w: unsupported country %q", domain.ErrValidation, code)
	}
	return code, nil
}

func validateYear(year int) error {
	if year < minCalendarYear || year > maxCalendarYear {
		return fmt.Errorf("%w: year must be between %d and %d", domain.ErrValidation, minCalendarYear, maxCalendarYear)
	}
	return nil
}

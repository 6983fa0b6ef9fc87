// Package feed renders a user's year of trips, holidays and custom days as an
// iCalendar (RFC 5545) document for subscription in external calendars.
package feed

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/planning"
)

// ProductID is the PRODID written to every feed.
const ProductID = "-//travel-planner//planning calendar//EN"

// Encode serialises feed as an iCalendar document. All events are all-day;
// DTEND is exclusive, one day after the last covered date. stamp is written as
// DTSTAMP on every event so output is deterministic for a given input.
func Encode(f domain.CalendarFeed, stamp time.Time) (string, error) {
	cal := ics.NewCalendarFor("travel-planner")
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(fmt.Sprintf("Travel plans %d", f.Year))

	for _, t := range f.Trips {
		ev := cal.AddEvent(fmt.Sprintf("trip-%s@travel-planner", t.ID))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(t.Destination)
		ev.SetAllDayStartAt(t.StartDate)
		ev.SetAllDayEndAt(t.EndDate.AddDate(0, 0, 1))
		ev.SetStatus(tripStatus(t.Status))
		ev.AddCategory(string(t.Type))
		if t.Notes != "" {
			ev.SetDescription(t.Notes)
		}
	}

	for _, h := range f.Holidays {
		ev := cal.AddEvent(fmt.Sprintf("holiday-%s-%s@travel-planner", h.CountryCode, h.Date.Format("20060102")))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(h.Name)
		ev.SetAllDayStartAt(h.Date)
		ev.SetAllDayEndAt(h.Date.AddDate(0, 0, 1))
		ev.SetTimeTransparency(ics.TransparencyTransparent)
		ev.AddCategory("holiday")
		ev.AddCategory(h.CountryCode)
	}

	for _, d := range f.CustomDays {
		date, rule, ok, err := customOccurrence(d, f.Year)
		if err != nil {
			return "", fmt.Errorf("feed.Encode: custom day %s: %w", d.ID, err)
		}
		if !ok {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("custom-%s@travel-planner", d.ID))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(d.Name)
		ev.SetAllDayStartAt(date)
		ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
		ev.SetTimeTransparency(ics.TransparencyTransparent)
		ev.AddCategory("custom")
		if rule != "" {
			ev.AddRrule(rule)
		}
	}

	return cal.Serialize(), nil
}

// customOccurrence returns the date a custom day falls on in year, following
// planning.ResolveCustomDate so the feed shows what the planner shows. Recurring
// days also return the yearly RRULE value anchored on that occurrence.
func customOccurrence(d domain.CustomDay, year int) (time.Time, string, bool, error) {
	resolved, ok := planning.ResolveCustomDate(planning.CustomDay{
		Date:      d.Date.Format(planning.DateLayout),
		Recurring: d.Recurring,
	}, year)
	if !ok {
		return time.Time{}, "", false, nil
	}
	start, err := time.Parse(planning.DateLayout, resolved)
	if err != nil {
		return time.Time{}, "", false, err
	}
	if !d.Recurring {
		return start, "", start.Year() == year, nil
	}

	r, err := rrule.NewRRule(rrule.ROption{Freq: rrule.YEARLY, Dtstart: start})
	if err != nil {
		return time.Time{}, "", false, err
	}
	return start, r.OrigOptions.RRuleString(), true, nil
}

func tripStatus(s domain.TripStatus) ics.ObjectStatus {
	switch s {
	case domain.TripStatusDreaming, domain.TripStatusPlanning:
		return ics.ObjectStatusTentative
	default:
		return ics.ObjectStatusConfirmed
	}
}

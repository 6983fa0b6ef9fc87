package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"kind", "id", "name", "start_date", "end_date",
	"trip_type", "trip_status", "country_code", "recurring",
}

// Export is the JSON body of GET /export.
type Export struct {
	Year       int         `json:"year"`
	Trips      []Trip      `json:"trips"`
	Holidays   []Holiday   `json:"holidays"`
	CustomDays []CustomDay `json:"custom_days"`
}

// GetExport handles GET /export?year=&format=.
// format is json (default), csv or ics; year defaults to the current one.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r)
	if !ok {
		return
	}
	year, err := queryIntDefault(r, "year", s.now().Year())
	if err != nil {
		writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "csv":
	case "ics":
		s.writeICS(w, r, user, year)
		return
	default:
		writeError(w, r, fmt.Errorf("%w: format must be json, csv or ics", domain.ErrValidation))
		return
	}

	feed, err := s.export.Feed(r.Context(), user, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if format == "csv" {
		writeCSV(w, feed)
		return
	}
	writeJSON(w, http.StatusOK, feedToResponse(feed))
}

func feedToResponse(f domain.CalendarFeed) Export {
	out := Export{
		Year:       f.Year,
		Trips:      make([]Trip, len(f.Trips)),
		Holidays:   holidaysToResponse(f.Holidays),
		CustomDays: make([]CustomDay, len(f.CustomDays)),
	}
	for i, t := range f.Trips {
		out.Trips[i] = tripToResponse(t)
	}
	for i, d := range f.CustomDays {
		out.CustomDays[i] = customDayToResponse(d)
	}
	return out
}

// writeCSV encodes the feed as one row per trip, holiday and custom day.
// Columns that do not apply to a row's kind are left empty.
func writeCSV(w http.ResponseWriter, f domain.CalendarFeed) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer writes never fail.
	cw.Write(csvHeaders)
	for _, t := range f.Trips {
		//nolint:errcheck
		cw.Write([]string{
			"trip", t.ID.String(), t.Destination, dateOf(t.StartDate), dateOf(t.EndDate),
			string(t.Type), string(t.Status), "", "",
		})
	}
	for _, h := range f.Holidays {
		//nolint:errcheck
		cw.Write([]string{"holiday", "", h.Name, dateOf(h.Date), dateOf(h.Date), "", "", h.CountryCode, ""})
	}
	for _, d := range f.CustomDays {
		//nolint:errcheck
		cw.Write([]string{
			"custom_day", d.ID.String(), d.Name, dateOf(d.Date), dateOf(d.Date),
			"", "", "", strconv.FormatBool(d.Recurring),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="travel-%d.csv"`, f.Year))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// dateOf formats a calendar date for flat exports.
func dateOf(t time.Time) string {
	return t.Format(time.DateOnly)
}

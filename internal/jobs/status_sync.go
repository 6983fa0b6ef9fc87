// Package jobs holds the scheduled background work of the API process.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Advancer moves trips along the status lifecycle by calendar date.
// repo.TripRepo satisfies it.
type Advancer interface {
	AdvanceByDate(ctx context.Context, today time.Time) (activated, completed int64, err error)
}

// StatusSync activates booked trips on their start date and completes active
// trips after their end date.
type StatusSync struct {
	trips   Advancer
	loc     *time.Location
	log     *slog.Logger
	timeout time.Duration
}

// NewStatusSync returns a StatusSync that evaluates "today" in loc.
func NewStatusSync(trips Advancer, loc *time.Location, log *slog.Logger) *StatusSync {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = slog.Default()
	}
	return &StatusSync{trips: trips, loc: loc, log: log, timeout: time.Minute}
}

// Today truncates now to a UTC midnight carrying the calendar date in the sync's location.
func (s *StatusSync) Today(now time.Time) time.Time {
	y, m, d := now.In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Run performs one sync pass as of now.
func (s *StatusSync) Run(ctx context.Context, now time.Time) error {
	today := s.Today(now)
	activated, completed, err := s.trips.AdvanceByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("jobs.StatusSync.Run: %w", err)
	}
	s.log.InfoContext(ctx, "trip status sync",
		"today", today.Format(time.DateOnly),
		"activated", activated,
		"completed", completed,
	)
	return nil
}

// Schedule registers Run on a new cron with the given spec. Overlapping runs
// are skipped. The caller starts and stops the returned cron.
func (s *StatusSync) Schedule(spec string) (*cron.Cron, error) {
	logger := cronLogger{s.log}
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.Run(ctx, time.Now()); err != nil {
			s.log.Error("trip status sync failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("jobs.StatusSync.Schedule: %q: %w", spec, err)
	}
	return c, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

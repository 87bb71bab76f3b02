package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/kaiwenlim/fintrack-be/internal/models"
)

// Period tokens accepted by FilterByPeriod.
const (
	PeriodToday = "today"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// ErrUnknownPeriod signals a filter token outside today/month/year.
var ErrUnknownPeriod = errors.New("unknown period")

// Window is a calendar-aligned date range, inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowFor computes the calendar window named by period, anchored to now.
// The end bound is the last nanosecond of the day/month/year so that the
// inclusive comparison in Contains admits boundary records.
func WindowFor(period string, now time.Time) (Window, error) {
	year, month, day := now.Date()
	loc := now.Location()

	var start, next time.Time
	switch period {
	case PeriodToday:
		start = time.Date(year, month, day, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 0, 1)
	case PeriodMonth:
		start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(0, 1, 0)
	case PeriodYear:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		next = start.AddDate(1, 0, 0)
	default:
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
	return Window{Start: start, End: next.Add(-time.Nanosecond)}, nil
}

// FilterByPeriod keeps the records whose date falls inside the named calendar
// window. An unrecognized token is an error, never a silent default. Input
// order is preserved.
func FilterByPeriod(period string, now time.Time, records []models.Record) ([]models.Record, error) {
	window, err := WindowFor(period, now)
	if err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if window.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

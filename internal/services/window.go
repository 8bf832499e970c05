package services

import (
	"fmt"
	"time"
)

const windowDateLayout = "2006-01-02"

// Reference week used when the caller supplies no dates.
const (
	defaultWindowStart = "2025-10-01"
	defaultWindowEnd   = "2025-10-07"
)

// Window is a half-open time interval [Start, End). ResolveWindow builds it
// from inclusive calendar dates, so End is the day after the last requested
// date.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// StartDate returns the first calendar day of the window.
func (w Window) StartDate() string {
	return w.Start.Format(windowDateLayout)
}

// EndDate returns the last calendar day of the window (inclusive).
func (w Window) EndDate() string {
	return w.End.AddDate(0, 0, -1).Format(windowDateLayout)
}

// ResolveWindow normalizes optional start/end calendar dates into a half-open
// interval. Either date may be empty, in which case the reference week
// default applies. An end date before the start date is ErrInvalidWindow.
func ResolveWindow(start, end string) (Window, error) {
	if start == "" {
		start = defaultWindowStart
	}
	if end == "" {
		end = defaultWindowEnd
	}

	startDay, err := time.Parse(windowDateLayout, start)
	if err != nil {
		return Window{}, fmt.Errorf("start date %q: %v: %w", start, err, ErrInvalidWindow)
	}
	endDay, err := time.Parse(windowDateLayout, end)
	if err != nil {
		return Window{}, fmt.Errorf("end date %q: %v: %w", end, err, ErrInvalidWindow)
	}
	if endDay.Before(startDay) {
		return Window{}, fmt.Errorf("end %s before start %s: %w", end, start, ErrInvalidWindow)
	}

	return Window{Start: startDay, End: endDay.AddDate(0, 0, 1)}, nil
}

package models

import (
	"fmt"
	"time"
)

// Window is a requested time span on a single day. Start and End are minutes
// from midnight in wall-clock local time; Date is "YYYY-MM-DD".
type Window struct {
	Date  string `json:"date"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// NewWindow parses date ("2006-01-02") and clock times ("15:04") into a
// Window. It does not enforce Start < End; callers validate ordering.
func NewWindow(date, start, end string) (Window, error) {
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return Window{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	s, err := parseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := parseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Date: date, Start: s, End: e}, nil
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", v, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StartTime returns the absolute wall-clock start of the window.
func (w Window) StartTime() time.Time {
	d, _ := time.ParseInLocation("2006-01-02", w.Date, time.Local)
	return d.Add(time.Duration(w.Start) * time.Minute)
}

// Overlaps reports whether w and o collide on the same date once both are
// expanded by buffer minutes on each side. Back-to-back meetings inside the
// buffer count as a collision.
func (w Window) Overlaps(o Window, buffer int) bool {
	if w.Date != o.Date {
		return false
	}
	return w.End > o.Start-buffer && w.Start < o.End+buffer
}

// FormatClock renders minutes from midnight back to "15:04".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

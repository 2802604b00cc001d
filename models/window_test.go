package models

import "testing"

func TestNewWindow(t *testing.T) {
	w, err := NewWindow("2026-03-10", "09:30", "10:45")
	if err != nil {
		t.Fatalf("NewWindow returned error: %v", err)
	}
	if w.Date != "2026-03-10" {
		t.Errorf("Date = %q, want 2026-03-10", w.Date)
	}
	if w.Start != 9*60+30 {
		t.Errorf("Start = %d, want %d", w.Start, 9*60+30)
	}
	if w.End != 10*60+45 {
		t.Errorf("End = %d, want %d", w.End, 10*60+45)
	}
}

func TestNewWindowRejectsBadInput(t *testing.T) {
	cases := []struct {
		name             string
		date, start, end string
	}{
		{"bad date", "10-03-2026", "09:00", "10:00"},
		{"not a date", "someday", "09:00", "10:00"},
		{"bad start", "2026-03-10", "9am", "10:00"},
		{"bad end", "2026-03-10", "09:00", "25:00"},
		{"empty", "", "", ""},
	}
	for _, tc := range cases {
		if _, err := NewWindow(tc.date, tc.start, tc.end); err == nil {
			t.Errorf("%s: NewWindow(%q, %q, %q) accepted invalid input",
				tc.name, tc.date, tc.start, tc.end)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := Window{Date: "2026-03-10", Start: 600, End: 660} // 10:00-11:00

	cases := []struct {
		name   string
		other  Window
		buffer int
		want   bool
	}{
		{"identical", Window{Date: "2026-03-10", Start: 600, End: 660}, 0, true},
		{"contained", Window{Date: "2026-03-10", Start: 615, End: 645}, 0, true},
		{"partial head", Window{Date: "2026-03-10", Start: 570, End: 615}, 0, true},
		{"partial tail", Window{Date: "2026-03-10", Start: 645, End: 690}, 0, true},
		{"back to back, no buffer", Window{Date: "2026-03-10", Start: 660, End: 720}, 0, false},
		{"back to back, buffered", Window{Date: "2026-03-10", Start: 660, End: 720}, 30, true},
		{"inside buffer before", Window{Date: "2026-03-10", Start: 540, End: 580}, 30, true},
		{"clear of buffer", Window{Date: "2026-03-10", Start: 540, End: 565}, 30, false},
		{"other day", Window{Date: "2026-03-11", Start: 600, End: 660}, 30, false},
	}
	for _, tc := range cases {
		if got := base.Overlaps(tc.other, tc.buffer); got != tc.want {
			t.Errorf("%s: Overlaps(%+v, buffer=%d) = %v, want %v",
				tc.name, tc.other, tc.buffer, got, tc.want)
		}
		// Overlap is symmetric.
		if got := tc.other.Overlaps(base, tc.buffer); got != tc.want {
			t.Errorf("%s: symmetric Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{9*60 + 5, "09:05"},
		{23*60 + 59, "23:59"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.minutes); got != tc.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestStartTimeRoundTrips(t *testing.T) {
	w, err := NewWindow("2026-03-10", "14:30", "15:00")
	if err != nil {
		t.Fatalf("NewWindow returned error: %v", err)
	}
	at := w.StartTime()
	if at.Hour() != 14 || at.Minute() != 30 {
		t.Errorf("StartTime = %v, want 14:30 local", at)
	}
	if at.Format("2006-01-02") != "2026-03-10" {
		t.Errorf("StartTime date = %v, want 2026-03-10", at.Format("2006-01-02"))
	}
}

package shift

import (
	"errors"
	"testing"
	"time"
)

func TestResolveKnownCodes(t *testing.T) {
	tests := []struct {
		code            string
		start           int
		end             int
		crossesMidnight bool
	}{
		{"A", 6 * 60, 14*60 + 30, false},
		{"B", 14 * 60, 22*60 + 30, false},
		{"C", 22 * 60, 6*60 + 30, true},
		{"general", 9 * 60, 17*60 + 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w, err := Resolve(tt.code)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.code, err)
			}
			if w.StartMinuteOfDay != tt.start {
				t.Errorf("start = %d, want %d", w.StartMinuteOfDay, tt.start)
			}
			if w.EndMinuteOfDay != tt.end {
				t.Errorf("end = %d, want %d", w.EndMinuteOfDay, tt.end)
			}
			if w.CrossesMidnight != tt.crossesMidnight {
				t.Errorf("crossesMidnight = %v, want %v", w.CrossesMidnight, tt.crossesMidnight)
			}
		})
	}
}

func TestResolveCustomTiming(t *testing.T) {
	w, err := Resolve("17:00-01:30")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !w.CrossesMidnight {
		t.Error("17:00-01:30 should cross midnight")
	}
	if got := w.DurationMinutes(); got != 510 {
		t.Errorf("DurationMinutes() = %d, want 510", got)
	}
}

func TestResolveInvalidFormats(t *testing.T) {
	invalid := []string{
		"",
		"X",
		"0600-1430",
		"06:00",
		"06:00-",
		"25:00-10:00",
		"06:61-10:00",
		"aa:bb-cc:dd",
		"09:00-09:00", // zero-length window
	}

	for _, code := range invalid {
		if _, err := Resolve(code); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Resolve(%q) = %v, want ErrInvalidFormat", code, err)
		}
	}
}

func TestCrossesMidnightInvariant(t *testing.T) {
	timings := []string{"06:00-14:30", "22:00-06:30", "00:00-23:59", "23:00-00:00", "12:00-12:01"}

	for _, timing := range timings {
		w, err := Resolve(timing)
		if err != nil {
			t.Fatalf("Resolve(%q) returned error: %v", timing, err)
		}
		want := w.EndMinuteOfDay <= w.StartMinuteOfDay
		if w.CrossesMidnight != want {
			t.Errorf("Resolve(%q): crossesMidnight = %v, want %v", timing, w.CrossesMidnight, want)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	first, err := Resolve("09:00-17:30")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	second, err := Resolve("09:00-17:30")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if first != second {
		t.Errorf("Resolve not idempotent: %+v vs %+v", first, second)
	}
}

func TestStartForOvernightAnchoring(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	w, err := Resolve("C") // 22:00-06:30
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	// Same-day check-in after shift start anchors to that day's 22:00.
	checkIn := time.Date(2024, 3, 15, 23, 10, 0, 0, ist)
	start := w.StartFor(checkIn)
	want := time.Date(2024, 3, 15, 22, 0, 0, 0, ist)
	if !start.Equal(want) {
		t.Errorf("StartFor(23:10) = %v, want %v", start, want)
	}

	// After-midnight check-in inside the tail anchors to the prior day.
	checkIn = time.Date(2024, 3, 16, 0, 5, 0, 0, ist)
	start = w.StartFor(checkIn)
	want = time.Date(2024, 3, 15, 22, 0, 0, 0, ist)
	if !start.Equal(want) {
		t.Errorf("StartFor(00:05) = %v, want %v", start, want)
	}
}

func TestContains(t *testing.T) {
	day, _ := Resolve("general") // 09:00-17:30
	night, _ := Resolve("C")     // 22:00-06:30

	at := func(hour, min int) time.Time {
		return time.Date(2024, 3, 15, hour, min, 0, 0, time.UTC)
	}

	if !day.Contains(at(12, 0)) {
		t.Error("general should contain 12:00")
	}
	if day.Contains(at(18, 0)) {
		t.Error("general should not contain 18:00")
	}
	if !night.Contains(at(23, 30)) {
		t.Error("C should contain 23:30")
	}
	if !night.Contains(at(2, 0)) {
		t.Error("C should contain 02:00")
	}
	if night.Contains(at(12, 0)) {
		t.Error("C should not contain 12:00")
	}
}

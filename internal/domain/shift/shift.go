package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RequiredWorkMinutes is the scheduled duration every shift is compared
// against: 8 hours 30 minutes, uniform across all shift codes.
const RequiredWorkMinutes = 8*60 + 30

// Window is a shift's scheduled time-of-day range. CrossesMidnight is always
// derived from the endpoints, never supplied by the caller.
type Window struct {
	StartMinuteOfDay int
	EndMinuteOfDay   int
	CrossesMidnight  bool
}

// shiftTable maps the known shift codes to their timings.
var shiftTable = map[string]string{
	"A":       "06:00-14:30",
	"B":       "14:00-22:30",
	"C":       "22:00-06:30",
	"general": "09:00-17:30",
}

// Resolve maps a shift code to its window. Known codes come from the static
// table; anything else is parsed as a custom "HH:MM-HH:MM" timing.
func Resolve(shiftID string) (Window, error) {
	timing, ok := shiftTable[shiftID]
	if !ok {
		timing = shiftID
	}
	return parseTiming(timing)
}

func parseTiming(timing string) (Window, error) {
	parts := strings.Split(timing, "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("%w: %q is not HH:MM-HH:MM", ErrInvalidFormat, timing)
	}

	start, err := parseMinuteOfDay(parts[0])
	if err != nil {
		return Window{}, fmt.Errorf("%w: bad start in %q: %v", ErrInvalidFormat, timing, err)
	}

	end, err := parseMinuteOfDay(parts[1])
	if err != nil {
		return Window{}, fmt.Errorf("%w: bad end in %q: %v", ErrInvalidFormat, timing, err)
	}

	if start == end {
		return Window{}, fmt.Errorf("%w: %q is a zero-length window", ErrInvalidFormat, timing)
	}

	return newWindow(start, end), nil
}

func parseMinuteOfDay(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%q is not HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("bad hour %q", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("bad minute %q", parts[1])
	}

	return hour*60 + minute, nil
}

func newWindow(start, end int) Window {
	return Window{
		StartMinuteOfDay: start,
		EndMinuteOfDay:   end,
		CrossesMidnight:  end <= start,
	}
}

// DurationMinutes returns the scheduled length of the window.
func (w Window) DurationMinutes() int {
	if w.CrossesMidnight {
		return 1440 - w.StartMinuteOfDay + w.EndMinuteOfDay
	}
	return w.EndMinuteOfDay - w.StartMinuteOfDay
}

// StartFor returns the shift start instant the given moment belongs to. For
// an overnight window, a moment inside the after-midnight tail anchors to
// the previous day's start.
func (w Window) StartFor(t time.Time) time.Time {
	minuteOfDay := t.Hour()*60 + t.Minute()

	day := t
	if w.CrossesMidnight && minuteOfDay < w.EndMinuteOfDay {
		day = t.AddDate(0, 0, -1)
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		w.StartMinuteOfDay/60, w.StartMinuteOfDay%60, 0, 0,
		t.Location(),
	)
}

// Contains reports whether the moment's time of day falls inside the window.
func (w Window) Contains(t time.Time) bool {
	minuteOfDay := t.Hour()*60 + t.Minute()

	if w.CrossesMidnight {
		return minuteOfDay >= w.StartMinuteOfDay || minuteOfDay < w.EndMinuteOfDay
	}
	return minuteOfDay >= w.StartMinuteOfDay && minuteOfDay < w.EndMinuteOfDay
}

// String renders the window back as "HH:MM-HH:MM".
func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.StartMinuteOfDay/60, w.StartMinuteOfDay%60,
		w.EndMinuteOfDay/60, w.EndMinuteOfDay%60,
	)
}

// KnownCodes returns the named shift codes from the static table.
func KnownCodes() []string {
	return []string{"A", "B", "C", "general"}
}

// IsKnownCode reports whether the code exists in the static table.
func IsKnownCode(shiftID string) bool {
	_, ok := shiftTable[shiftID]
	return ok
}

package attendance

import (
	"math"
	"time"

	"github.com/presensia/attendance-portal-go/internal/domain/shift"
)

// Fixed lateness policy. The 15-minute threshold drives per-record alerts;
// the 1-hour threshold drives the trend chart's "late" classification. They
// are intentionally separate constants.
const (
	LateAlertThresholdMinutes = 15
	TrendLateThresholdMinutes = 60
)

// Lateness returns minutes between the scheduled shift start and the actual
// check-in, clamped at zero. An after-midnight check-in inside an overnight
// window's tail belongs to a start that predates midnight, so it counts as
// on time regardless of how long the shift has been running.
func Lateness(checkIn time.Time, window shift.Window) int {
	minuteOfDay := checkIn.Hour()*60 + checkIn.Minute()
	if window.CrossesMidnight && minuteOfDay < window.EndMinuteOfDay {
		return 0
	}

	start := window.StartFor(checkIn)

	diff := checkIn.Sub(start).Minutes()
	if diff <= 0 {
		return 0
	}
	return int(math.Floor(diff))
}

// WorkHours returns the worked duration in hours rounded to 2 decimal
// places, or nil while the attendance is still open. The value is reported
// as-is: no break deduction and no clamping to the scheduled duration.
func WorkHours(checkIn time.Time, checkOut *time.Time) *float64 {
	if checkOut == nil {
		return nil
	}

	hours := checkOut.Sub(checkIn).Hours()
	rounded := math.Round(hours*100) / 100
	return &rounded
}

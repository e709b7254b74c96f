package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presensia/attendance-portal-go/internal/domain/shift"
)

func TestLatenessNeverNegative(t *testing.T) {
	window, err := shift.Resolve("general") // 09:00-17:30
	require.NoError(t, err)

	// Exactly at shift start.
	checkIn := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, Lateness(checkIn, window))

	// Well before shift start clamps to zero.
	checkIn = time.Date(2024, 1, 1, 7, 45, 0, 0, time.UTC)
	assert.Equal(t, 0, Lateness(checkIn, window))
}

func TestLatenessDayShift(t *testing.T) {
	window, err := shift.Resolve("A") // 06:00-14:30
	require.NoError(t, err)

	checkIn := time.Date(2024, 1, 1, 6, 25, 30, 0, time.UTC)
	assert.Equal(t, 25, Lateness(checkIn, window))
}

func TestLatenessOvernightShift(t *testing.T) {
	window, err := shift.Resolve("C") // 22:00-06:30
	require.NoError(t, err)

	// Check-in at 23:10 same day: 70 minutes after the 22:00 start.
	checkIn := time.Date(2024, 1, 1, 23, 10, 0, 0, time.UTC)
	assert.Equal(t, 70, Lateness(checkIn, window))

	// Check-in at 00:05 is inside the window's after-midnight tail,
	// anchored to the prior day's 22:00 start. Not late.
	checkIn = time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, 0, Lateness(checkIn, window))
}

func TestLatenessCustomShiftNonHourAligned(t *testing.T) {
	window, err := shift.Resolve("01:15-09:45")
	require.NoError(t, err)

	// The anchor uses the full start minute, not just the hour.
	checkIn := time.Date(2024, 1, 1, 1, 20, 0, 0, time.UTC)
	assert.Equal(t, 5, Lateness(checkIn, window))
}

func TestWorkHours(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 1, 17, 30, 0, 0, time.UTC)

	hours := WorkHours(checkIn, &checkOut)
	require.NotNil(t, hours)
	assert.Equal(t, 8.5, *hours)
}

func TestWorkHoursOpenAttendance(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Nil(t, WorkHours(checkIn, nil))
}

func TestWorkHoursNotClamped(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	// Longer than the 510-minute scheduled duration: reported as-is.
	long := time.Date(2024, 1, 1, 21, 15, 0, 0, time.UTC)
	hours := WorkHours(checkIn, &long)
	require.NotNil(t, hours)
	assert.Equal(t, 12.25, *hours)

	// Shorter too.
	short := time.Date(2024, 1, 1, 9, 40, 0, 0, time.UTC)
	hours = WorkHours(checkIn, &short)
	require.NotNil(t, hours)
	assert.InDelta(t, 0.67, *hours, 0.001)
}

func TestWorkHoursOvernight(t *testing.T) {
	checkIn := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 2, 6, 30, 0, 0, time.UTC)

	hours := WorkHours(checkIn, &checkOut)
	require.NotNil(t, hours)
	assert.Equal(t, 8.5, *hours)
}

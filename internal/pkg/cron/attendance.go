package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/presensia/attendance-portal-go/internal/domain/attendance"
	"github.com/presensia/attendance-portal-go/internal/domain/shift"
)

// staleGraceHours is how long past the scheduled shift end an open session may
// stay open before the janitor closes it.
const staleGraceHours = 2

type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.Repository, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions closes open attendance sessions whose shift window
// ended more than staleGraceHours ago. The closed record gets zero work hours
// and a flagged status so an admin still has to review it.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	now := j.now().In(j.location)

	// The longest possible window is 24h, so anything opened more than
	// 24h + grace ago is stale regardless of its shift.
	cutoff := now.Add(-time.Duration(24+staleGraceHours) * time.Hour)

	open, err := j.attendanceRepo.ListOpenBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	closedCount := 0
	for _, session := range open {
		window, err := shift.Resolve(session.Shift)
		if err != nil {
			// Unusable shift timing: still close it so it stops
			// blocking new check-ins.
			slog.Warn("Cron: Open session has unresolvable shift, closing anyway",
				"attendance_id", session.ID,
				"shift", session.Shift,
				"error", err)
			window = shift.Window{}
		}

		if session.CheckInTime == nil {
			continue
		}

		shiftStart := window.StartFor(session.CheckInTime.In(j.location))
		shiftEnd := shiftStart.Add(time.Duration(window.DurationMinutes()) * time.Minute)
		deadline := shiftEnd.Add(staleGraceHours * time.Hour)

		if now.Before(deadline) {
			continue
		}

		closedAt := shiftEnd
		zero := 0.0
		warning := "Auto-closed: no checkout detected after shift end. Work hours require manual review."
		session.CheckOutTime = &closedAt
		session.WorkHours = &zero
		session.SystemStatus = attendance.SystemStatusFlagged
		session.WarningMessage = &warning

		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}

		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed stale sessions", "count", closedCount)
	}
	return nil
}

package attendance

import (
	"time"
)

// System statuses assigned at marking time.
const (
	SystemStatusPresent = "present"
	SystemStatusLate    = "late"
	SystemStatusFlagged = "flagged"
)

// Admin review statuses.
const (
	AdminStatusPending  = "pending"
	AdminStatusApproved = "approved"
	AdminStatusRejected = "rejected"
)

type Record struct {
	ID         string
	EmployeeID string
	Shift      string

	// WorkingDay is the shift-anchored local date (YYYY-MM-DD). For
	// overnight shifts an after-midnight check-in still belongs to the
	// previous day's shift, so this differs from the check-in's calendar
	// date.
	WorkingDay        string
	CheckInTime       *time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckInImagePath  *string
	CheckOutImagePath *string
	WorkHours         *float64
	LateMinutes       *int
	SystemStatus      string
	AdminStatus       string
	AdminRemarks      *string
	WarningMessage    *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	EmployeeName *string
}

// IsOpen reports whether the record has a check-in but no check-out yet.
func (r *Record) IsOpen() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}

// IsApproved reports whether an admin has approved the record.
func (r *Record) IsApproved() bool {
	return r.AdminStatus == AdminStatusApproved
}

package attendance

import "errors"

// Attendance domain errors
var (
	// Marking errors
	ErrAlreadyCheckedOut = errors.New("attendance for today is already complete")
	ErrEmployeeInactive  = errors.New("employee registration is not approved")

	// General errors
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrAlreadyProcessed = errors.New("attendance has already been approved or rejected")
)

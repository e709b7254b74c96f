package employee

import "time"

// Registration statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Employee struct {
	ID                 string
	EmployeeID         string // human-facing code, e.g. "EMP-1042"
	Name               string
	Email              string
	MobileNumber       *string
	PasswordHash       *string
	Shift              string // "A" | "B" | "C" | "general" | "HH:MM-HH:MM"
	RegistrationStatus string
	IsAdmin            bool
	BaseLocationLat    *float64
	BaseLocationLon    *float64
	BaseLocationName   *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsActive reports whether the employee may mark attendance.
func (e *Employee) IsActive() bool {
	return e.RegistrationStatus == StatusApproved
}

// HasBaseLocation reports whether an admin has pinned a base location.
func (e *Employee) HasBaseLocation() bool {
	return e.BaseLocationLat != nil && e.BaseLocationLon != nil
}

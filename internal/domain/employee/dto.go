package employee

import (
	"github.com/presensia/attendance-portal-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID                 string   `json:"id"`
	EmployeeID         string   `json:"employee_id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	MobileNumber       *string  `json:"mobile_number,omitempty"`
	Shift              string   `json:"shift"`
	RegistrationStatus string   `json:"registration_status"`
	IsAdmin            bool     `json:"is_admin"`
	BaseLocationLat    *float64 `json:"base_location_lat,omitempty"`
	BaseLocationLon    *float64 `json:"base_location_lon,omitempty"`
	BaseLocationName   *string  `json:"base_location_name,omitempty"`
	CreatedAt          string   `json:"created_at"`
}

// RegistrationApprovalRequest approves a pending registration and pins the
// base location used for distance warnings.
type RegistrationApprovalRequest struct {
	ID           string  `json:"employee_id"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	LocationName string  `json:"location_name"`
}

func (r *RegistrationApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if validator.IsEmpty(r.LocationName) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_name",
			Message: "location_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

package response

import (
	"errors"
	"net/http"

	"github.com/presensia/attendance-portal-go/internal/domain/attendance"
	"github.com/presensia/attendance-portal-go/internal/domain/auth"
	"github.com/presensia/attendance-portal-go/internal/domain/employee"
	"github.com/presensia/attendance-portal-go/internal/domain/shift"
	"github.com/presensia/attendance-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrNotApproved):
		Forbidden(w, "Registration is pending admin approval")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance for today is already complete")
	case errors.Is(err, attendance.ErrEmployeeInactive):
		Forbidden(w, "Employee registration is not approved")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyProcessed):
		Conflict(w, "Attendance has already been approved or rejected")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrAlreadyApproved):
		Conflict(w, "Employee registration already processed")

	// Shift errors
	case errors.Is(err, shift.ErrInvalidFormat):
		BadRequest(w, "Invalid shift format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

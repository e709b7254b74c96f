package http

import (
	"net/http"

	"github.com/presensia/attendance-portal-go/internal/domain/employee"
	"github.com/presensia/attendance-portal-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	ListPendingRegistrations(w http.ResponseWriter, r *http.Request)
	ApproveRegistration(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// ListPendingRegistrations implements EmployeeHandler.
func (h *employeeHandlerImpl) ListPendingRegistrations(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListPendingRegistrations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveRegistration implements EmployeeHandler.
func (h *employeeHandlerImpl) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	var req employee.RegistrationApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.employeeService.ApproveRegistration(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Registration approved", nil)
}

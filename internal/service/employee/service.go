package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/presensia/attendance-portal-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.Repository
}

func NewEmployeeService(employeeRepo employee.Repository) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// ListPendingRegistrations implements employee.Service.
func (s *EmployeeServiceImpl) ListPendingRegistrations(ctx context.Context) ([]employee.EmployeeResponse, error) {
	pending, err := s.employeeRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending registrations: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(pending))
	for _, emp := range pending {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return responses, nil
}

// ApproveRegistration implements employee.Service.
func (s *EmployeeServiceImpl) ApproveRegistration(ctx context.Context, req employee.RegistrationApprovalRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if emp.RegistrationStatus != employee.StatusPending {
		return employee.ErrAlreadyApproved
	}

	if err := s.employeeRepo.ApproveRegistration(ctx, emp.ID, req.Latitude, req.Longitude, req.LocationName); err != nil {
		return fmt.Errorf("failed to approve registration: %w", err)
	}

	return nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:                 emp.ID,
		EmployeeID:         emp.EmployeeID,
		Name:               emp.Name,
		Email:              emp.Email,
		MobileNumber:       emp.MobileNumber,
		Shift:              emp.Shift,
		RegistrationStatus: emp.RegistrationStatus,
		IsAdmin:            emp.IsAdmin,
		BaseLocationLat:    emp.BaseLocationLat,
		BaseLocationLon:    emp.BaseLocationLon,
		BaseLocationName:   emp.BaseLocationName,
		CreatedAt:          emp.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

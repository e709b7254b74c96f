package employee

import "context"

// Service defines admin-facing employee operations.
type Service interface {
	// ListPendingRegistrations retrieves employees awaiting approval.
	ListPendingRegistrations(ctx context.Context) ([]EmployeeResponse, error)

	// ApproveRegistration activates a pending registration and pins its
	// base location.
	ApproveRegistration(ctx context.Context, req RegistrationApprovalRequest) error
}

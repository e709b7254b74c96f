package employee

import "context"

// Repository defines data access methods for employees.
type Repository interface {
	// GetByEmployeeID retrieves an employee by their human-facing code.
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)

	// LockByEmployeeID takes a row lock on the employee for the duration
	// of the surrounding transaction, serializing concurrent writes that
	// hinge on the employee's current attendance state.
	LockByEmployeeID(ctx context.Context, employeeID string) error

	// UpdateShift stores the employee's current shift selection. Later
	// attendance marks compute lateness against it.
	UpdateShift(ctx context.Context, employeeID string, shift string) error

	// List retrieves all employees, newest first.
	List(ctx context.Context) ([]Employee, error)

	// ListPending retrieves employees awaiting registration approval.
	ListPending(ctx context.Context) ([]Employee, error)

	// ApproveRegistration marks a pending registration approved and pins
	// the base location used for distance warnings.
	ApproveRegistration(ctx context.Context, id string, lat, lon float64, locationName string) error
}

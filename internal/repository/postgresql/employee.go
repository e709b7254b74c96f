package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/presensia/attendance-portal-go/internal/domain/employee"
	"github.com/presensia/attendance-portal-go/internal/pkg/database"
)

const employeeColumns = `
	id, employee_id, name, email, mobile_number, password_hash,
	shift, registration_status, is_admin,
	base_location_lat, base_location_lon, base_location_name,
	created_at, updated_at
`

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.MobileNumber, &e.PasswordHash,
		&e.Shift, &e.RegistrationStatus, &e.IsAdmin,
		&e.BaseLocationLat, &e.BaseLocationLon, &e.BaseLocationName,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByEmployeeID implements employee.Repository.
func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// LockByEmployeeID implements employee.Repository. The lock is held until
// the surrounding transaction ends; outside a transaction it is a no-op.
func (r *employeeRepository) LockByEmployeeID(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id
		FROM employees
		WHERE employee_id = $1
		FOR UPDATE
	`

	var id string
	if err := q.QueryRow(ctx, query, employeeID).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return err
		}
		return fmt.Errorf("failed to lock employee: %w", err)
	}

	return nil
}

// UpdateShift implements employee.Repository.
func (r *employeeRepository) UpdateShift(ctx context.Context, employeeID string, shift string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET shift = $2, updated_at = NOW()
		WHERE employee_id = $1
	`

	tag, err := q.Exec(ctx, query, employeeID, shift)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return nil
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return collectEmployees(rows)
}

// ListPending implements employee.Repository.
func (r *employeeRepository) ListPending(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE registration_status = 'pending'
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending employees: %w", err)
	}

	return collectEmployees(rows)
}

// ApproveRegistration implements employee.Repository.
func (r *employeeRepository) ApproveRegistration(ctx context.Context, id string, lat, lon float64, locationName string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			registration_status = 'approved',
			base_location_lat = $2,
			base_location_lon = $3,
			base_location_name = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, lat, lon, locationName).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to approve registration: %w", err)
	}

	return nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

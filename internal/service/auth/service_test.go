package auth

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/attendance-portal-go/internal/domain/auth"
	"github.com/presensia/attendance-portal-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := r.employees[employeeID]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) LockByEmployeeID(ctx context.Context, employeeID string) error {
	if _, ok := r.employees[employeeID]; !ok {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *fakeEmployeeRepo) UpdateShift(ctx context.Context, employeeID string, shift string) error {
	emp, ok := r.employees[employeeID]
	if !ok {
		return pgx.ErrNoRows
	}
	emp.Shift = shift
	r.employees[employeeID] = emp
	return nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) { return nil, nil }
func (r *fakeEmployeeRepo) ListPending(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeRepo) ApproveRegistration(ctx context.Context, id string, lat, lon float64, locationName string) error {
	return nil
}

type fakeJWTService struct{}

func (fakeJWTService) GenerateAccessToken(employeeID string, name string, shift string, isAdmin bool) (string, int64, error) {
	return "token-" + shift, 1700000000, nil
}

func (fakeJWTService) JWTAuth() *jwtauth.JWTAuth { return nil }

func newTestRepo(t *testing.T, shiftCode string) *fakeEmployeeRepo {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"EMP-1042": {
			ID:                 "uuid-1",
			EmployeeID:         "EMP-1042",
			Name:               "Arif Rahman",
			Shift:              shiftCode,
			PasswordHash:       &hashStr,
			RegistrationStatus: employee.StatusApproved,
		},
	}}
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newTestRepo(t, "general")
	svc := NewAuthService(repo, fakeJWTService{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "EMP-1042",
		Password:   "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "general", resp.Shift)
	assert.Equal(t, "token-general", resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newTestRepo(t, "general")
	svc := NewAuthService(repo, fakeJWTService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "EMP-1042",
		Password:   "not-it",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginShiftSelectionPersists(t *testing.T) {
	// Picking a shift at login stores it on the employee, so the marks
	// that follow compute lateness against the selection.
	repo := newTestRepo(t, "general")
	svc := NewAuthService(repo, fakeJWTService{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "EMP-1042",
		Password:   "hunter2",
		Shift:      "23:00-07:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "23:00-07:30", resp.Shift)

	stored, err := repo.GetByEmployeeID(context.Background(), "EMP-1042")
	require.NoError(t, err)
	assert.Equal(t, "23:00-07:30", stored.Shift)
}

func TestLoginRejectsMalformedShiftSelection(t *testing.T) {
	repo := newTestRepo(t, "general")
	svc := NewAuthService(repo, fakeJWTService{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		EmployeeID: "EMP-1042",
		Password:   "hunter2",
		Shift:      "25:00-99:99",
	})
	require.Error(t, err)

	// The stored shift is untouched by a rejected selection.
	stored, err := repo.GetByEmployeeID(context.Background(), "EMP-1042")
	require.NoError(t, err)
	assert.Equal(t, "general", stored.Shift)
}

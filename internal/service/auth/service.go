package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/presensia/attendance-portal-go/internal/domain/auth"
	"github.com/presensia/attendance-portal-go/internal/domain/employee"
	"github.com/presensia/attendance-portal-go/internal/domain/shift"
	"github.com/presensia/attendance-portal-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	employeeRepo employee.Repository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo employee.Repository, jwtService jwt.Service) *AuthServiceImpl {
	return &AuthServiceImpl{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return s.login(ctx, req, false)
}

// AdminLogin implements auth.AuthService. Same credential check as Login
// plus the admin flag requirement.
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return s.login(ctx, req, true)
}

func (s *AuthServiceImpl) login(ctx context.Context, req auth.LoginRequest, requireAdmin bool) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if emp.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !emp.IsActive() {
		return auth.TokenResponse{}, auth.ErrNotApproved
	}

	if requireAdmin && !emp.IsAdmin {
		return auth.TokenResponse{}, auth.ErrAdminRequired
	}

	// An explicit shift on the login form (the "other" category enters a
	// custom timing here) replaces the stored one. It is persisted so the
	// marks that follow compute lateness against the selection.
	shiftCode := emp.Shift
	if req.Shift != "" && req.Shift != emp.Shift {
		if _, err := shift.Resolve(req.Shift); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("invalid shift selection: %w", err)
		}
		if err := s.employeeRepo.UpdateShift(ctx, emp.EmployeeID, req.Shift); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to update shift: %w", err)
		}
		shiftCode = req.Shift
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(emp.EmployeeID, emp.Name, shiftCode, emp.IsAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		Shift:       shiftCode,
		IsAdmin:     emp.IsAdmin,
	}, nil
}

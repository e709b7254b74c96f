package auth

import "context"

// AuthService defines authentication logic for the portal.
type AuthService interface {
	// Login authenticates an employee and issues an access token.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// AdminLogin authenticates an admin account and issues an access token.
	AdminLogin(ctx context.Context, req LoginRequest) (TokenResponse, error)
}

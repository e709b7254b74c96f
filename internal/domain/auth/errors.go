package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid employee ID or password")
	ErrNotApproved        = errors.New("registration is pending admin approval")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAdminRequired      = errors.New("admin privilege required")
)

package user

import "errors"

var (
	ErrMissingFields      = errors.New("Missing required fields")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWrongPassword      = errors.New("Invalid current password")
	ErrUserNotFound       = errors.New("User not found")
	ErrInvalidResetCode   = errors.New("Invalid or expired token")
)

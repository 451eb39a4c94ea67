package user

import (
	"context"
	"time"

	userRepo "tourbook/database/repository/user"
	"tourbook/models"
	"tourbook/services/notification"
)

type UserService interface {
	// Authentication
	Register(req models.UserRegistration) (*AuthResponse, error)
	Login(email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	// Profile
	GetUserByID(userID string) (*models.User, error)
	UpdateProfile(userID string, req models.UserUpdateRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*AuthResponse, error)

	// Password reset
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error

	// Admin
	GetAllUsers() ([]models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ToggleAdmin(ctx context.Context, userID string) (*models.User, error)
}

// OTPStore keeps password-reset codes. *utils.RedisOTPStore implements it.
type OTPStore interface {
	Save(ctx context.Context, email, code string) error
	Verify(ctx context.Context, email, code string) error
}

// SessionRevoker drops a user's cached session so the next request reloads it.
type SessionRevoker interface {
	Clear(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	OTP      OTPStore
	Sessions SessionRevoker
	Notifier notification.NotificationService
	TokenTTL time.Duration
	OTPTTL   time.Duration
}

// AuthResponse is returned by register, login and password change.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

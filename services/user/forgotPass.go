package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourbook/models"
	"tourbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) otpTTL() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return 10 * time.Minute
}

// ForgotPassword stores a fresh six-digit code and queues it for mailing.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}

	code, err := utils.GenerateNumericOTP(utils.ResetCodeLength)
	if err != nil {
		return err
	}
	if err := s.OTP.Save(ctx, u.Email, code); err != nil {
		return err
	}

	payload := models.PasswordResetPayload{
		Email: u.Email,
		Name:  u.Name,
		Code:  code,
		TTL:   int(s.otpTTL() / time.Minute),
	}
	if s.Notifier != nil {
		if err := s.Notifier.SendPasswordReset(ctx, payload); err != nil {
			// The code is stored; a lost mail can be retried by asking again.
			utils.GetLogger().Error("ForgotPassword: failed to queue mail", zap.String("email", u.Email), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultUserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" || newPassword == "" {
		return ErrMissingFields
	}
	if err := s.OTP.Verify(ctx, email, code); err != nil {
		if errors.Is(err, utils.ErrOTPInvalid) {
			return ErrInvalidResetCode
		}
		return err
	}

	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil {
		return ErrInvalidResetCode
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	// Outstanding tokens are revoked along with the old password.
	if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"password_hash": hash, "token_hash": ""}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.clearSession(ctx, u.ID)
	return nil
}

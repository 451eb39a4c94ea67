package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return utils.TokenTTL()
}

// issueToken signs a new token and stores its hash; any earlier token stops working.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (string, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, s.tokenTTL())
	if err != nil {
		utils.GetLogger().Error("Failed to generate auth token", zap.String("userID", u.ID), zap.Error(err))
		return "", fmt.Errorf("authentication failed, please try again")
	}
	hash := utils.HashToken(token)
	if err := s.Repo.UpdateSetDocument(u.ID, bson.M{"token_hash": hash}); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	u.TokenHash = hash
	s.clearSession(ctx, u.ID)
	return token, nil
}

func (s *DefaultUserService) clearSession(ctx context.Context, userID string) {
	if s.Sessions == nil {
		return
	}
	if err := s.Sessions.Clear(ctx, userID); err != nil {
		utils.GetLogger().Warn("Failed to clear cached session", zap.String("userID", userID), zap.Error(err))
	}
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (s *DefaultUserService) Register(req models.UserRegistration) (*AuthResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if err := s.Repo.Create(&u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := s.issueToken(context.Background(), &u)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("User registered", zap.String("userID", u.ID))
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *DefaultUserService) Login(email, password string) (*AuthResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(context.Background(), u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: *u}, nil
}

// Logout revokes the current token.
func (s *DefaultUserService) Logout(ctx context.Context, userID string) error {
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"token_hash": ""}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.clearSession(ctx, userID)
	return nil
}

// ChangePassword rotates the token so other holders of the old one are signed out.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (*AuthResponse, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, ErrMissingFields
	}
	u, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return nil, ErrWrongPassword
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"password_hash": hash}); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	u.PasswordHash = hash

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: *u}, nil
}

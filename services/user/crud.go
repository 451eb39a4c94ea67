package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(userID string, req models.UserUpdateRequest) (*models.User, error) {
	set := bson.M{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		set["name"] = name
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if len(set) > 0 {
		if err := s.Repo.UpdateSetDocument(userID, set); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		// name is part of the cached session
		s.clearSession(context.Background(), userID)
	}
	return s.GetUserByID(userID)
}

// GetAllUsers retrieves all users for admin access.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.clearSession(ctx, userID)
	utils.GetLogger().Info("User deleted", zap.String("userID", userID))
	return nil
}

func (s *DefaultUserService) ToggleAdmin(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	u.IsAdmin = !u.IsAdmin
	if err := s.Repo.UpdateSetDocument(userID, bson.M{"is_admin": u.IsAdmin}); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.clearSession(ctx, userID)
	return u, nil
}

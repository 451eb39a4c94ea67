package vehicle

import (
	"errors"
	"fmt"
	"strings"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultVehicleService) ListVehicles() ([]models.Vehicle, error) {
	vehicles, err := s.Vehicles.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *DefaultVehicleService) GetVehicle(id string) (*models.Vehicle, error) {
	v, err := s.Vehicles.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

func (s *DefaultVehicleService) CreateVehicle(input models.VehicleInput) (*models.Vehicle, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Type) == "" {
		return nil, ErrMissingFields
	}
	v := &models.Vehicle{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Type:        strings.TrimSpace(input.Type),
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.Vehicles.Create(v); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Vehicle created", zap.String("vehicleID", v.ID))
	return v, nil
}

func (s *DefaultVehicleService) UpdateVehicle(id string, input models.VehicleInput) (*models.Vehicle, error) {
	set := bson.M{}
	if input.Name != "" {
		set["name"] = strings.TrimSpace(input.Name)
	}
	if input.Type != "" {
		set["type"] = strings.TrimSpace(input.Type)
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.ImageURL != "" {
		set["image_url"] = input.ImageURL
	}
	if len(set) > 0 {
		if err := s.Vehicles.UpdateSetDocument(id, set); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrVehicleNotFound
			}
			return nil, err
		}
	}
	return s.GetVehicle(id)
}

// DeleteVehicle removes the vehicle together with all of its bookings.
func (s *DefaultVehicleService) DeleteVehicle(id string) error {
	if _, err := s.GetVehicle(id); err != nil {
		return err
	}
	n, err := s.Bookings.DeleteByVehicle(id)
	if err != nil {
		return err
	}
	if err := s.Vehicles.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	utils.GetLogger().Info("Vehicle deleted", zap.String("vehicleID", id), zap.Int64("bookingsRemoved", n))
	return nil
}

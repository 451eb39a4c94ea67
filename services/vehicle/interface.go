package vehicle

import (
	"errors"
	"time"

	vehicleRepo "tourbook/database/repository/vehicle"
	vehicleBookingRepo "tourbook/database/repository/vehiclebooking"
	"tourbook/models"
)

var (
	ErrVehicleNotFound = errors.New("Vehicle not found")
	ErrMissingFields   = errors.New("Vehicle name and type are required")
)

type VehicleService interface {
	ListVehicles() ([]models.Vehicle, error)
	GetVehicle(id string) (*models.Vehicle, error)
	CreateVehicle(input models.VehicleInput) (*models.Vehicle, error)
	UpdateVehicle(id string, input models.VehicleInput) (*models.Vehicle, error)
	DeleteVehicle(id string) error

	// Calendar classifies the dates of one vehicle. exclude skips a booking
	// being rescheduled; horizon <= 0 uses the configured default.
	Calendar(vehicleID, exclude string, horizon int) (*models.VehicleCalendar, error)
	// Calendars classifies every vehicle, including those without bookings.
	Calendars(horizon int) (map[string]models.VehicleCalendar, error)
}

type DefaultVehicleService struct {
	Vehicles    vehicleRepo.VehicleRepository
	Bookings    vehicleBookingRepo.VehicleBookingRepository
	HorizonDays int
	Now         func() time.Time
}

func (s *DefaultVehicleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

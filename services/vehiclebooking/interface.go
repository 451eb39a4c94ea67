package vehiclebooking

import (
	"context"
	"errors"

	userRepo "tourbook/database/repository/user"
	vehicleRepo "tourbook/database/repository/vehicle"
	vehicleBookingRepo "tourbook/database/repository/vehiclebooking"
	"tourbook/models"
	"tourbook/services/notification"
)

var (
	ErrBookingNotFound = errors.New("Booking not found")
	ErrVehicleNotFound = errors.New("Vehicle not found")
	ErrForbidden       = errors.New("Not authorized to update this booking")
	ErrNothingToUpdate = errors.New("No changes provided")
	ErrInvalidDate     = errors.New("Dates must be in YYYY-MM-DD format")
	ErrBookingClosed   = errors.New("Booking can no longer be changed")
	ErrOwnerStatus     = errors.New("You can only cancel your own booking")
	ErrInvalidStatus   = errors.New("Invalid status change")
	ErrSpanTooLong     = errors.New("A booking cannot span more than 365 days")
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}

type VehicleBookingService interface {
	// Create submits a new pending booking for the caller.
	Create(ctx context.Context, userID string, req models.VehicleBookingRequest) (*models.VehicleBooking, error)
	// List returns every booking to admins and the caller's own bookings otherwise.
	List(actor Actor) ([]models.VehicleBookingView, error)
	Update(ctx context.Context, actor Actor, bookingID string, upd models.VehicleBookingUpdate) (*models.VehicleBooking, error)
}

type DefaultVehicleBookingService struct {
	Bookings vehicleBookingRepo.VehicleBookingRepository
	Vehicles vehicleRepo.VehicleRepository
	Users    userRepo.UserRepository
	Notifier notification.NotificationService
}

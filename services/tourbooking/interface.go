package tourbooking

import (
	"errors"
	"fmt"

	bookingRepo "tourbook/database/repository/booking"
	destinationRepo "tourbook/database/repository/destination"
	tourRepo "tourbook/database/repository/tour"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
)

var (
	ErrBookingNotFound  = errors.New("Booking not found")
	ErrTourDateNotFound = errors.New("Tour date not found")
	ErrForbidden        = errors.New("Unauthorized access")
	ErrInvalidCount     = errors.New("Number of participants must be at least 1")
	ErrAlreadyCancelled = errors.New("Booking is already cancelled")
	ErrInvalidStatus    = errors.New("Invalid booking or payment status")
)

// NotEnoughSeatsError reports how many seats the departure still has.
type NotEnoughSeatsError struct {
	Left int
}

func (e *NotEnoughSeatsError) Error() string {
	return fmt.Sprintf("Not enough seats available. Only %d seats left", e.Left)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}

type TourBookingService interface {
	CreateBooking(userID string, req models.TourBookingRequest) (*models.TourBooking, error)
	// ListUserBookings returns the caller's bookings with their tours.
	ListUserBookings(userID string) ([]models.TourBookingView, error)
	GetBooking(actor Actor, id string) (*models.TourBookingView, error)
	// UpdateBooking changes special requests; admins may also set the statuses.
	UpdateBooking(actor Actor, id string, upd models.TourBookingUpdate) (*models.TourBooking, error)
	// CancelBooking returns the seats to the departure.
	CancelBooking(actor Actor, id string) error
	ListAllBookings() ([]models.TourBookingView, error)
}

type DefaultTourBookingService struct {
	Bookings     bookingRepo.BookingRepository
	Tours        tourRepo.TourRepository
	Destinations destinationRepo.DestinationRepository
	Users        userRepo.UserRepository
}

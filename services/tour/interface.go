package tour

import (
	"errors"

	bookingRepo "tourbook/database/repository/booking"
	destinationRepo "tourbook/database/repository/destination"
	reviewRepo "tourbook/database/repository/review"
	tourRepo "tourbook/database/repository/tour"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
)

var (
	ErrTourNotFound        = errors.New("Tour not found")
	ErrDestinationNotFound = errors.New("Destination not found")
	ErrMissingFields       = errors.New("Name, description, destination, duration and price are required")
	ErrInvalidValue        = errors.New("Duration, price and seats cannot be negative")
	ErrNotBooked           = errors.New("You must book and complete the tour before reviewing")
	ErrAlreadyReviewed     = errors.New("You have already reviewed this tour")
	ErrInvalidRating       = errors.New("Rating must be between 1 and 5")
)

type TourService interface {
	ListTours() ([]models.TourView, error)
	GetTour(id string) (*models.TourDetail, error)
	CreateTour(input models.TourInput) (*models.Tour, error)
	UpdateTour(id string, input models.TourInput) (*models.Tour, error)
	// DeleteTour also removes the tour's bookings and reviews.
	DeleteTour(id string) error
	AddReview(userID, tourID string, req models.ReviewRequest) (*models.Review, error)
}

type DefaultTourService struct {
	Tours        tourRepo.TourRepository
	Destinations destinationRepo.DestinationRepository
	Bookings     bookingRepo.BookingRepository
	Reviews      reviewRepo.ReviewRepository
	Users        userRepo.UserRepository
}

package tourRepo

import (
	"errors"

	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotEnoughSeats is returned by ReserveSeats when the departure has fewer seats than asked.
var ErrNotEnoughSeats = errors.New("not enough seats")

// TourRepository defines methods for tour data access. Departure dates are
// stored embedded in their tour.
type TourRepository interface {
	GetByID(id string) (*models.Tour, error)
	GetAll() ([]models.Tour, error)
	GetByIDs(ids []string) ([]models.Tour, error)
	GetByDestination(destinationID string) ([]models.Tour, error)
	// CountByDestination returns tour counts keyed by destination id.
	CountByDestination() (map[string]int64, error)
	// GetByDepartureID finds the tour owning a departure date and that departure.
	GetByDepartureID(departureID string) (*models.Tour, *models.DepartureDate, error)
	// ReserveSeats takes n seats from the departure only if at least n remain.
	ReserveSeats(departureID string, n int) error
	// ReleaseSeats gives n seats back to the departure.
	ReleaseSeats(departureID string, n int) error
	Create(t *models.Tour) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	Count() (int64, error)
}

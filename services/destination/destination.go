package destination

import (
	"errors"
	"fmt"
	"strings"

	"tourbook/database/repository"
	destinationRepo "tourbook/database/repository/destination"
	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

var (
	ErrDestinationNotFound = errors.New("Destination not found")
	ErrMissingFields       = errors.New("Name, description and country are required")
	ErrHasTours            = errors.New("Cannot delete destination with existing tours. Delete the tours first.")
)

type DestinationService interface {
	ListDestinations() ([]models.DestinationListItem, error)
	SearchDestinations(q, country string) ([]models.DestinationListItem, error)
	GetDestination(id string) (*models.DestinationDetail, error)
	CreateDestination(input models.DestinationInput) (*models.Destination, error)
	UpdateDestination(id string, input models.DestinationInput) (*models.Destination, error)
	DeleteDestination(id string) error
}

type DefaultDestinationService struct {
	Destinations destinationRepo.DestinationRepository
	Tours        tourRepo.TourRepository
}

func (s *DefaultDestinationService) withCounts(dests []models.Destination) ([]models.DestinationListItem, error) {
	counts, err := s.Tours.CountByDestination()
	if err != nil {
		return nil, fmt.Errorf("failed to count tours: %w", err)
	}
	items := make([]models.DestinationListItem, 0, len(dests))
	for _, d := range dests {
		items = append(items, models.DestinationListItem{Destination: d, TourCount: counts[d.ID]})
	}
	return items, nil
}

func (s *DefaultDestinationService) ListDestinations() ([]models.DestinationListItem, error) {
	dests, err := s.Destinations.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch destinations: %w", err)
	}
	return s.withCounts(dests)
}

func (s *DefaultDestinationService) SearchDestinations(q, country string) ([]models.DestinationListItem, error) {
	dests, err := s.Destinations.Search(strings.TrimSpace(q), strings.TrimSpace(country))
	if err != nil {
		return nil, fmt.Errorf("failed to search destinations: %w", err)
	}
	return s.withCounts(dests)
}

func (s *DefaultDestinationService) get(id string) (*models.Destination, error) {
	d, err := s.Destinations.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetDestination returns the destination with its tours; available_dates_count
// counts only departures with seats left.
func (s *DefaultDestinationService) GetDestination(id string) (*models.DestinationDetail, error) {
	d, err := s.get(id)
	if err != nil {
		return nil, err
	}
	tours, err := s.Tours.GetByDestination(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tours of destination %s: %w", id, err)
	}
	detail := &models.DestinationDetail{Destination: *d, Tours: make([]models.DestinationTour, 0, len(tours))}
	for _, t := range tours {
		detail.Tours = append(detail.Tours, models.DestinationTour{
			ID:                  t.ID,
			Name:                t.Name,
			DurationDays:        t.DurationDays,
			Price:               t.Price,
			ImageURL:            t.ImageURL,
			AvailableDatesCount: len(t.DateViews(true)),
		})
	}
	return detail, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (s *DefaultDestinationService) CreateDestination(input models.DestinationInput) (*models.Destination, error) {
	d := &models.Destination{
		ID:          uuid.New().String(),
		Name:        deref(input.Name),
		Description: deref(input.Description),
		ImageURL:    deref(input.ImageURL),
		Country:     deref(input.Country),
		State:       deref(input.State),
		City:        deref(input.City),
	}
	if d.Name == "" || d.Description == "" || d.Country == "" {
		return nil, ErrMissingFields
	}
	if err := s.Destinations.Create(d); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Destination created", zap.String("destinationID", d.ID), zap.String("name", d.Name))
	return d, nil
}

func (s *DefaultDestinationService) UpdateDestination(id string, input models.DestinationInput) (*models.Destination, error) {
	set := bson.M{}
	fields := map[string]*string{
		"name":        input.Name,
		"description": input.Description,
		"image_url":   input.ImageURL,
		"country":     input.Country,
		"state":       input.State,
		"city":        input.City,
	}
	for key, val := range fields {
		if val == nil {
			continue
		}
		v := strings.TrimSpace(*val)
		if v == "" && (key == "name" || key == "description" || key == "country") {
			return nil, ErrMissingFields
		}
		set[key] = v
	}
	if len(set) > 0 {
		if err := s.Destinations.UpdateSetDocument(id, set); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrDestinationNotFound
			}
			return nil, err
		}
	}
	return s.get(id)
}

func (s *DefaultDestinationService) DeleteDestination(id string) error {
	if _, err := s.get(id); err != nil {
		return err
	}
	tours, err := s.Tours.GetByDestination(id)
	if err != nil {
		return fmt.Errorf("failed to fetch tours of destination %s: %w", id, err)
	}
	if len(tours) > 0 {
		return ErrHasTours
	}
	if err := s.Destinations.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

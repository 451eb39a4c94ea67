package tour

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

func (s *DefaultTourService) get(id string) (*models.Tour, error) {
	t, err := s.Tours.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListTours shows only departures that still have seats.
func (s *DefaultTourService) ListTours() ([]models.TourView, error) {
	tours, err := s.Tours.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tours: %w", err)
	}
	ids := make([]string, 0, len(tours))
	for _, t := range tours {
		ids = append(ids, t.DestinationID)
	}
	dests, err := s.Destinations.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch destinations: %w", err)
	}
	refs := make(map[string]models.DestinationRef, len(dests))
	for _, d := range dests {
		refs[d.ID] = models.DestinationRef{ID: d.ID, Name: d.Name, Country: d.Country}
	}

	views := make([]models.TourView, 0, len(tours))
	for _, t := range tours {
		v := models.TourView{Tour: t, AvailableDates: t.DateViews(true)}
		if ref, ok := refs[t.DestinationID]; ok {
			v.Destination = &ref
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *DefaultTourService) GetTour(id string) (*models.TourDetail, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	detail := &models.TourDetail{
		TourView: models.TourView{Tour: *t, AvailableDates: t.DateViews(false)},
		Reviews:  []models.ReviewView{},
	}
	if d, err := s.Destinations.GetByID(t.DestinationID); err == nil {
		ref := d.Ref()
		detail.Destination = &ref
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	reviews, err := s.Reviews.GetByTour(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews of tour %s: %w", id, err)
	}
	sum := 0
	for _, r := range reviews {
		detail.Reviews = append(detail.Reviews, r.View())
		sum += r.Rating
	}
	if len(reviews) > 0 {
		detail.AverageRating = float64(sum) / float64(len(reviews))
	}
	return detail, nil
}

func departures(inputs []models.DepartureInput) ([]models.DepartureDate, error) {
	out := make([]models.DepartureDate, 0, len(inputs))
	for _, in := range inputs {
		if in.AvailableSeats < 0 {
			return nil, ErrInvalidValue
		}
		mod := 1.0
		if in.PriceModifier != nil {
			mod = *in.PriceModifier
		}
		out = append(out, models.DepartureDate{
			ID:             uuid.New().String(),
			DepartureDate:  strings.TrimSpace(in.Date),
			AvailableSeats: in.AvailableSeats,
			PriceModifier:  mod,
		})
	}
	return out, nil
}

func (s *DefaultTourService) checkDestination(id string) error {
	if _, err := s.Destinations.GetByID(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDestinationNotFound
		}
		return err
	}
	return nil
}

func (s *DefaultTourService) CreateTour(input models.TourInput) (*models.Tour, error) {
	if input.Name == nil || input.Description == nil || input.DestinationID == nil ||
		input.DurationDays == nil || input.Price == nil ||
		strings.TrimSpace(*input.Name) == "" || strings.TrimSpace(*input.DestinationID) == "" {
		return nil, ErrMissingFields
	}
	if *input.DurationDays < 0 || *input.Price < 0 {
		return nil, ErrInvalidValue
	}
	if err := s.checkDestination(*input.DestinationID); err != nil {
		return nil, err
	}
	dates, err := departures(input.DepartureDates)
	if err != nil {
		return nil, err
	}

	t := &models.Tour{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(*input.Name),
		Description:      *input.Description,
		DestinationID:    *input.DestinationID,
		DurationDays:     *input.DurationDays,
		Price:            *input.Price,
		IncludedServices: input.IncludedServices,
		Itinerary:        input.Itinerary,
		DepartureDates:   dates,
	}
	if input.ImageURL != nil {
		t.ImageURL = *input.ImageURL
	}
	if input.MaxParticipants != nil {
		t.MaxParticipants = *input.MaxParticipants
	}
	if t.IncludedServices == nil {
		t.IncludedServices = []string{}
	}
	if t.Itinerary == nil {
		t.Itinerary = []string{}
	}
	if err := s.Tours.Create(t); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Tour created", zap.String("tourID", t.ID), zap.Int("departures", len(dates)))
	return t, nil
}

// UpdateTour changes the given fields. Departures in the input are added to
// the existing ones, which are never replaced since bookings point at them.
func (s *DefaultTourService) UpdateTour(id string, input models.TourInput) (*models.Tour, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrMissingFields
		}
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.DestinationID != nil {
		if err := s.checkDestination(*input.DestinationID); err != nil {
			return nil, err
		}
		set["destination_id"] = *input.DestinationID
	}
	if input.DurationDays != nil {
		if *input.DurationDays < 0 {
			return nil, ErrInvalidValue
		}
		set["duration_days"] = *input.DurationDays
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidValue
		}
		set["price"] = *input.Price
	}
	if input.ImageURL != nil {
		set["image_url"] = *input.ImageURL
	}
	if input.MaxParticipants != nil {
		set["max_participants"] = *input.MaxParticipants
	}
	if input.IncludedServices != nil {
		set["included_services"] = input.IncludedServices
	}
	if input.Itinerary != nil {
		set["itinerary"] = input.Itinerary
	}
	if len(input.DepartureDates) > 0 {
		added, err := departures(input.DepartureDates)
		if err != nil {
			return nil, err
		}
		set["departure_dates"] = append(t.DepartureDates, added...)
	}

	if len(set) > 0 {
		if err := s.Tours.UpdateSetDocument(id, set); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTourNotFound
			}
			return nil, err
		}
	}
	return s.get(id)
}

func (s *DefaultTourService) DeleteTour(id string) error {
	if _, err := s.get(id); err != nil {
		return err
	}
	bookings, err := s.Bookings.DeleteByTour(id)
	if err != nil {
		return err
	}
	reviews, err := s.Reviews.DeleteByTour(id)
	if err != nil {
		return err
	}
	if err := s.Tours.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTourNotFound
		}
		return err
	}
	utils.GetLogger().Info("Tour deleted",
		zap.String("tourID", id),
		zap.Int64("bookingsRemoved", bookings),
		zap.Int64("reviewsRemoved", reviews),
	)
	return nil
}

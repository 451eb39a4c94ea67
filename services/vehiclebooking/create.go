package vehiclebooking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/services/availability"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultVehicleBookingService) vehicleBookings(vehicleID string) ([]availability.Booking, error) {
	existing, err := s.Bookings.GetByVehicle(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings of vehicle %s: %w", vehicleID, err)
	}
	return models.Snapshots(existing), nil
}

// MaxBookingDays is the longest span a single booking may cover.
const MaxBookingDays = 365

func buildRequest(vehicleID, from, to, tm, fromPlace, toPlace, details string) (availability.BookingRequest, error) {
	if strings.TrimSpace(to) == "" {
		to = from
	}
	r, err := availability.ParseRange(from, to)
	if err != nil {
		return availability.BookingRequest{}, ErrInvalidDate
	}
	if r.Days() > MaxBookingDays {
		return availability.BookingRequest{}, ErrSpanTooLong
	}
	return availability.BookingRequest{
		ResourceID: vehicleID,
		Range:      r,
		Time:       tm,
		FromPlace:  fromPlace,
		ToPlace:    toPlace,
		Details:    details,
	}, nil
}

func (s *DefaultVehicleBookingService) Create(ctx context.Context, userID string, req models.VehicleBookingRequest) (*models.VehicleBooking, error) {
	if _, err := s.Vehicles.GetByID(req.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	br, err := buildRequest(req.VehicleID, req.FromDate, req.ToDate, req.Time, req.FromPlace, req.ToPlace, req.TravelDetails)
	if err != nil {
		return nil, err
	}
	existing, err := s.vehicleBookings(req.VehicleID)
	if err != nil {
		return nil, err
	}
	if err := availability.Validate(br, existing); err != nil {
		return nil, err
	}
	// Pending requests may overlap; only approved bookings block a new one.
	if err := availability.CheckConflicts(br, existing, "", availability.StatusApproved); err != nil {
		return nil, err
	}

	b := &models.VehicleBooking{
		ID:            uuid.New().String(),
		UserID:        userID,
		VehicleID:     req.VehicleID,
		FromDate:      br.Range.From.String(),
		ToDate:        br.Range.To.String(),
		Time:          strings.TrimSpace(req.Time),
		Status:        availability.StatusPending,
		FromPlace:     strings.TrimSpace(req.FromPlace),
		ToPlace:       strings.TrimSpace(req.ToPlace),
		TravelDetails: req.TravelDetails,
	}
	if err := s.Bookings.Create(b); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Vehicle booking created",
		zap.String("bookingID", b.ID),
		zap.String("vehicleID", b.VehicleID),
		zap.String("from", b.FromDate),
		zap.String("to", b.ToDate),
	)
	return b, nil
}

func (s *DefaultVehicleBookingService) List(actor Actor) ([]models.VehicleBookingView, error) {
	var (
		bookings []models.VehicleBooking
		err      error
	)
	if actor.IsAdmin {
		bookings, err = s.Bookings.GetAll()
	} else {
		bookings, err = s.Bookings.GetByUser(actor.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle bookings: %w", err)
	}
	return s.embed(bookings)
}

// embed attaches user and vehicle summaries with one lookup per collection.
func (s *DefaultVehicleBookingService) embed(bookings []models.VehicleBooking) ([]models.VehicleBookingView, error) {
	userIDs, vehicleIDs := []string{}, []string{}
	seenU, seenV := map[string]bool{}, map[string]bool{}
	for _, b := range bookings {
		if !seenU[b.UserID] {
			seenU[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
		if !seenV[b.VehicleID] {
			seenV[b.VehicleID] = true
			vehicleIDs = append(vehicleIDs, b.VehicleID)
		}
	}

	users, err := s.Users.GetByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.Vehicles.GetByIDs(vehicleIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[string]models.UserSummary, len(users))
	for _, u := range users {
		userByID[u.ID] = u.Summary()
	}
	vehicleByID := make(map[string]models.VehicleSummary, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v.Summary()
	}

	views := make([]models.VehicleBookingView, 0, len(bookings))
	for _, b := range bookings {
		view := models.VehicleBookingView{VehicleBooking: b}
		if u, ok := userByID[b.UserID]; ok {
			view.User = &u
		}
		if v, ok := vehicleByID[b.VehicleID]; ok {
			view.Vehicle = &v
		}
		views = append(views, view)
	}
	return views, nil
}

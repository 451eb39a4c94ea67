package tourbooking

import (
	"errors"
	"fmt"
	"strings"

	"tourbook/database/repository"
	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultTourBookingService) departure(id string) (*models.Tour, *models.DepartureDate, error) {
	t, d, err := s.Tours.GetByDepartureID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrTourDateNotFound
		}
		return nil, nil, err
	}
	return t, d, nil
}

// reserve takes n seats, reporting the seats left when there are too few.
func (s *DefaultTourBookingService) reserve(departureID string, n int) error {
	err := s.Tours.ReserveSeats(departureID, n)
	if err == nil {
		return nil
	}
	if !errors.Is(err, tourRepo.ErrNotEnoughSeats) {
		return err
	}
	_, d, lookupErr := s.departure(departureID)
	if lookupErr != nil {
		return lookupErr
	}
	return &NotEnoughSeatsError{Left: d.AvailableSeats}
}

func (s *DefaultTourBookingService) CreateBooking(userID string, req models.TourBookingRequest) (*models.TourBooking, error) {
	if req.NumberOfParticipants < 1 {
		return nil, ErrInvalidCount
	}
	t, d, err := s.departure(req.TourDateID)
	if err != nil {
		return nil, err
	}
	if err := s.reserve(d.ID, req.NumberOfParticipants); err != nil {
		return nil, err
	}

	b := &models.TourBooking{
		ID:                   uuid.New().String(),
		UserID:               userID,
		TourID:               t.ID,
		TourDateID:           d.ID,
		DepartureDate:        d.DepartureDate,
		NumberOfParticipants: req.NumberOfParticipants,
		TotalPrice:           d.SeatPrice(t.Price) * float64(req.NumberOfParticipants),
		BookingStatus:        models.BookingPending,
		PaymentStatus:        models.PaymentPending,
		SpecialRequests:      strings.TrimSpace(req.SpecialRequests),
	}
	if err := s.Bookings.Create(b); err != nil {
		if relErr := s.Tours.ReleaseSeats(d.ID, req.NumberOfParticipants); relErr != nil {
			utils.GetLogger().Error("Failed to return seats after booking insert failed",
				zap.String("tourDateID", d.ID), zap.Int("seats", req.NumberOfParticipants), zap.Error(relErr))
		}
		return nil, err
	}
	utils.GetLogger().Info("Tour booking created",
		zap.String("bookingID", b.ID),
		zap.String("tourID", t.ID),
		zap.Int("participants", b.NumberOfParticipants),
	)
	return b, nil
}

func (s *DefaultTourBookingService) load(actor Actor, id string) (*models.TourBooking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin && b.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *DefaultTourBookingService) GetBooking(actor Actor, id string) (*models.TourBookingView, error) {
	b, err := s.load(actor, id)
	if err != nil {
		return nil, err
	}
	views, err := s.embed([]models.TourBooking{*b}, true, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *DefaultTourBookingService) UpdateBooking(actor Actor, id string, upd models.TourBookingUpdate) (*models.TourBooking, error) {
	b, err := s.load(actor, id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	reserved := 0
	if upd.SpecialRequests != nil {
		set["special_requests"] = strings.TrimSpace(*upd.SpecialRequests)
	}
	if actor.IsAdmin && upd.PaymentStatus != nil {
		switch *upd.PaymentStatus {
		case models.PaymentPending, models.PaymentPaid, models.PaymentRefunded:
			set["payment_status"] = *upd.PaymentStatus
		default:
			return nil, ErrInvalidStatus
		}
	}
	if actor.IsAdmin && upd.BookingStatus != nil && *upd.BookingStatus != b.BookingStatus {
		switch *upd.BookingStatus {
		case models.BookingCancelled:
			// cancelling always goes through the seat-returning path
			if err := s.cancel(b); err != nil {
				return nil, err
			}
		case models.BookingPending, models.BookingConfirmed:
			if b.BookingStatus == models.BookingCancelled {
				if err := s.reserve(b.TourDateID, b.NumberOfParticipants); err != nil {
					return nil, err
				}
				reserved = b.NumberOfParticipants
			}
			set["booking_status"] = *upd.BookingStatus
		default:
			return nil, ErrInvalidStatus
		}
	}
	if len(set) > 0 {
		if err := s.Bookings.UpdateSetDocument(id, set); err != nil {
			if reserved > 0 {
				if relErr := s.Tours.ReleaseSeats(b.TourDateID, reserved); relErr != nil {
					utils.GetLogger().Error("Failed to return seats after booking update failed",
						zap.String("tourDateID", b.TourDateID), zap.Int("seats", reserved), zap.Error(relErr))
				}
			}
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, err
		}
	}
	updated, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DefaultTourBookingService) cancel(b *models.TourBooking) error {
	ok, err := s.Bookings.MarkCancelled(b.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyCancelled
	}
	if err := s.Tours.ReleaseSeats(b.TourDateID, b.NumberOfParticipants); err != nil {
		// the departure may have been deleted with its tour
		utils.GetLogger().Warn("Failed to return seats of cancelled booking",
			zap.String("bookingID", b.ID), zap.String("tourDateID", b.TourDateID), zap.Error(err))
	}
	utils.GetLogger().Info("Tour booking cancelled", zap.String("bookingID", b.ID))
	return nil
}

func (s *DefaultTourBookingService) CancelBooking(actor Actor, id string) error {
	b, err := s.load(actor, id)
	if err != nil {
		return err
	}
	if b.BookingStatus == models.BookingCancelled {
		return ErrAlreadyCancelled
	}
	return s.cancel(b)
}

func (s *DefaultTourBookingService) ListUserBookings(userID string) ([]models.TourBookingView, error) {
	bookings, err := s.Bookings.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return s.embed(bookings, false, false)
}

func (s *DefaultTourBookingService) ListAllBookings() ([]models.TourBookingView, error) {
	bookings, err := s.Bookings.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return s.embed(bookings, false, true)
}

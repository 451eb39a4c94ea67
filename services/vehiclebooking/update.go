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

	"go.uber.org/zap"
)

// Update applies an admin decision, an owner reschedule or an owner
// cancellation. A reschedule by the owner sends the booking back to pending.
func (s *DefaultVehicleBookingService) Update(ctx context.Context, actor Actor, bookingID string, upd models.VehicleBookingUpdate) (*models.VehicleBooking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.IsAdmin && b.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if upd.Status == nil && !upd.Reschedules() {
		return nil, ErrNothingToUpdate
	}
	if upd.Status != nil && !actor.IsAdmin && *upd.Status != availability.StatusCancelled {
		return nil, ErrOwnerStatus
	}

	oldStatus := b.Status
	var existing []availability.Booking

	if upd.Reschedules() {
		if b.Status.Terminal() {
			return nil, ErrBookingClosed
		}
		from, to, tm := b.FromDate, b.ToDate, b.Time
		if upd.FromDate != nil {
			from = *upd.FromDate
			if upd.ToDate == nil && b.FromDate == b.ToDate {
				// a single-day booking moves as a whole
				to = from
			}
		}
		if upd.ToDate != nil {
			to = *upd.ToDate
		}
		if upd.Time != nil {
			tm = strings.TrimSpace(*upd.Time)
		}
		br, err := buildRequest(b.VehicleID, from, to, tm, b.FromPlace, b.ToPlace, b.TravelDetails)
		if err != nil {
			return nil, err
		}
		if existing, err = s.vehicleBookings(b.VehicleID); err != nil {
			return nil, err
		}
		if err := availability.Validate(br, existing); err != nil {
			return nil, err
		}
		if err := availability.CheckConflicts(br, existing, b.ID, availability.StatusApproved); err != nil {
			return nil, err
		}
		b.FromDate, b.ToDate, b.Time = br.Range.From.String(), br.Range.To.String(), tm
		if !actor.IsAdmin {
			b.Status = availability.StatusPending
		}
	}

	if upd.Status != nil && *upd.Status != b.Status {
		target := *upd.Status
		if err := availability.Transition(b.Status, target); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
		}
		if target == availability.StatusApproved {
			if existing == nil {
				if existing, err = s.vehicleBookings(b.VehicleID); err != nil {
					return nil, err
				}
			}
			br := availability.BookingRequest{ResourceID: b.VehicleID, Range: b.Snapshot().Range()}
			if err := availability.CheckConflicts(br, existing, b.ID, availability.StatusApproved); err != nil {
				return nil, err
			}
		}
		b.Status = target
	}

	if err := s.Bookings.Replace(b); err != nil {
		return nil, err
	}
	if b.Status != oldStatus {
		s.notifyStatus(ctx, b, oldStatus)
	}
	return b, nil
}

func (s *DefaultVehicleBookingService) notifyStatus(ctx context.Context, b *models.VehicleBooking, oldStatus availability.Status) {
	logger := utils.GetLogger()
	logger.Info("Vehicle booking status changed",
		zap.String("bookingID", b.ID),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(b.Status)),
	)
	if s.Notifier == nil {
		return
	}
	payload := models.BookingStatusPayload{
		BookingID: b.ID,
		UserID:    b.UserID,
		VehicleID: b.VehicleID,
		FromDate:  b.FromDate,
		ToDate:    b.ToDate,
		OldStatus: string(oldStatus),
		NewStatus: string(b.Status),
	}
	if u, err := s.Users.GetByID(b.UserID); err == nil {
		payload.Email = u.Email
	}
	if err := s.Notifier.SendBookingStatus(ctx, payload); err != nil {
		logger.Error("Failed to queue booking status mail", zap.String("bookingID", b.ID), zap.Error(err))
	}
}

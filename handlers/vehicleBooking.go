package handlers

import (
	"errors"
	"net/http"

	"tourbook/middleware"
	"tourbook/models"
	"tourbook/services/availability"
	"tourbook/services/vehiclebooking"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VehicleBookingHandler struct {
	BookingService vehiclebooking.VehicleBookingService
}

func NewVehicleBookingHandler(bookingService vehiclebooking.VehicleBookingService) *VehicleBookingHandler {
	return &VehicleBookingHandler{BookingService: bookingService}
}

var vehicleBookingErrors = []statusRule{
	{vehiclebooking.ErrBookingNotFound, http.StatusNotFound},
	{vehiclebooking.ErrVehicleNotFound, http.StatusNotFound},
	{vehiclebooking.ErrForbidden, http.StatusForbidden},
	{vehiclebooking.ErrNothingToUpdate, http.StatusBadRequest},
	{vehiclebooking.ErrInvalidDate, http.StatusBadRequest},
	{vehiclebooking.ErrBookingClosed, http.StatusBadRequest},
	{vehiclebooking.ErrOwnerStatus, http.StatusBadRequest},
	{vehiclebooking.ErrInvalidStatus, http.StatusBadRequest},
	{vehiclebooking.ErrSpanTooLong, http.StatusBadRequest},
}

func actorOf(sess *middleware.Session) vehiclebooking.Actor {
	return vehiclebooking.Actor{UserID: sess.UserID, IsAdmin: sess.IsAdmin}
}

// respondBookingError reports validation refusals with their user-facing message.
func respondBookingError(c *gin.Context, err error) {
	var verr *availability.ValidationError
	if errors.As(err, &verr) {
		utils.JSONError(c, http.StatusBadRequest, verr.Message)
		return
	}
	respondError(c, err, vehicleBookingErrors...)
}

// CreateBookingHandler handles POST /api/vehicle-bookings.
func (h *VehicleBookingHandler) CreateBookingHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var req models.VehicleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.Create(c.Request.Context(), sess.UserID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	getLogger(c).Info("Vehicle booking requested",
		zap.String("bookingID", b.ID),
		zap.String("vehicleID", b.VehicleID),
		zap.String("from", b.FromDate),
		zap.String("to", b.ToDate),
	)
	success(c, http.StatusCreated, gin.H{"message": "Booking request sent", "booking_id": b.ID})
}

// ListBookingsHandler returns all bookings to admins and the caller's own otherwise.
func (h *VehicleBookingHandler) ListBookingsHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	bookings, err := h.BookingService.List(actorOf(sess))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *VehicleBookingHandler) UpdateBookingHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var upd models.VehicleBookingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.Update(c.Request.Context(), actorOf(sess), c.Param("id"), upd)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	msg := "Booking updated"
	switch {
	case sess.IsAdmin:
		msg = "Booking updated by admin"
	case b.Status == availability.StatusCancelled:
		msg = "Booking cancelled."
	case upd.Reschedules():
		msg = "Booking updated. Please wait for approval."
	}
	success(c, http.StatusOK, gin.H{"message": msg, "booking": b})
}

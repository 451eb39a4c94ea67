package handlers

import (
	"errors"
	"net/http"

	"tourbook/models"
	"tourbook/services/tourbooking"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TourBookingHandler struct {
	BookingService tourbooking.TourBookingService
}

func NewTourBookingHandler(bookingService tourbooking.TourBookingService) *TourBookingHandler {
	return &TourBookingHandler{BookingService: bookingService}
}

var tourBookingErrors = []statusRule{
	{tourbooking.ErrBookingNotFound, http.StatusNotFound},
	{tourbooking.ErrTourDateNotFound, http.StatusNotFound},
	{tourbooking.ErrForbidden, http.StatusForbidden},
	{tourbooking.ErrInvalidCount, http.StatusBadRequest},
	{tourbooking.ErrAlreadyCancelled, http.StatusBadRequest},
	{tourbooking.ErrInvalidStatus, http.StatusBadRequest},
}

func respondTourBookingError(c *gin.Context, err error) {
	var seats *tourbooking.NotEnoughSeatsError
	if errors.As(err, &seats) {
		utils.JSONError(c, http.StatusBadRequest, seats.Error())
		return
	}
	respondError(c, err, tourBookingErrors...)
}

// CreateBookingHandler handles POST /api/bookings.
func (h *TourBookingHandler) CreateBookingHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var req models.TourBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.CreateBooking(sess.UserID, req)
	if err != nil {
		respondTourBookingError(c, err)
		return
	}
	getLogger(c).Info("Tour booked",
		zap.String("bookingID", b.ID),
		zap.String("tourDateID", b.TourDateID),
		zap.Int("participants", b.NumberOfParticipants),
	)
	success(c, http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": b})
}

func (h *TourBookingHandler) ListBookingsHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	bookings, err := h.BookingService.ListUserBookings(sess.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *TourBookingHandler) GetBookingHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	b, err := h.BookingService.GetBooking(tourbooking.Actor{UserID: sess.UserID, IsAdmin: sess.IsAdmin}, c.Param("id"))
	if err != nil {
		respondTourBookingError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *TourBookingHandler) UpdateBookingHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var upd models.TourBookingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.BookingService.UpdateBooking(tourbooking.Actor{UserID: sess.UserID, IsAdmin: sess.IsAdmin}, c.Param("id"), upd)
	if err != nil {
		respondTourBookingError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": b})
}

// CancelBookingHandler handles POST /api/bookings/:id/cancel.
func (h *TourBookingHandler) CancelBookingHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.BookingService.CancelBooking(tourbooking.Actor{UserID: sess.UserID, IsAdmin: sess.IsAdmin}, id); err != nil {
		respondTourBookingError(c, err)
		return
	}
	getLogger(c).Info("Tour booking cancelled", zap.String("bookingID", id))
	success(c, http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// ListAllBookingsHandler is the admin view with users embedded.
func (h *TourBookingHandler) ListAllBookingsHandler(c *gin.Context) {
	bookings, err := h.BookingService.ListAllBookings()
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"bookings": bookings})
}

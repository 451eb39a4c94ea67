package handlers

import (
	"net/http"

	"tourbook/models"
	"tourbook/services/tour"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TourHandler struct {
	TourService tour.TourService
}

func NewTourHandler(tourService tour.TourService) *TourHandler {
	return &TourHandler{TourService: tourService}
}

var tourErrors = []statusRule{
	{tour.ErrTourNotFound, http.StatusNotFound},
	{tour.ErrDestinationNotFound, http.StatusNotFound},
	{tour.ErrMissingFields, http.StatusBadRequest},
	{tour.ErrInvalidValue, http.StatusBadRequest},
	{tour.ErrInvalidRating, http.StatusBadRequest},
	{tour.ErrNotBooked, http.StatusForbidden},
	{tour.ErrAlreadyReviewed, http.StatusBadRequest},
}

// ListToursHandler lists tours with their open departures only.
func (h *TourHandler) ListToursHandler(c *gin.Context) {
	tours, err := h.TourService.ListTours()
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"tours": tours})
}

func (h *TourHandler) GetTourHandler(c *gin.Context) {
	t, err := h.TourService.GetTour(c.Param("id"))
	if err != nil {
		respondError(c, err, tourErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"tour": t})
}

func (h *TourHandler) CreateTourHandler(c *gin.Context) {
	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.TourService.CreateTour(input)
	if err != nil {
		respondError(c, err, tourErrors...)
		return
	}
	getLogger(c).Info("Tour created", zap.String("tourID", t.ID), zap.Int("departures", len(t.DepartureDates)))
	success(c, http.StatusCreated, gin.H{"message": "Tour created successfully", "tour_id": t.ID})
}

// UpdateTourHandler edits fields; departure_dates in the body are added, never replaced.
func (h *TourHandler) UpdateTourHandler(c *gin.Context) {
	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	t, err := h.TourService.UpdateTour(c.Param("id"), input)
	if err != nil {
		respondError(c, err, tourErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Tour updated successfully", "tour_id": t.ID})
}

func (h *TourHandler) DeleteTourHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.TourService.DeleteTour(id); err != nil {
		respondError(c, err, tourErrors...)
		return
	}
	getLogger(c).Info("Tour deleted", zap.String("tourID", id))
	success(c, http.StatusOK, gin.H{"message": "Tour deleted successfully"})
}

// AddReviewHandler handles POST /api/tours/:id/reviews.
func (h *TourHandler) AddReviewHandler(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.TourService.AddReview(sess.UserID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, tourErrors...)
		return
	}
	success(c, http.StatusCreated, gin.H{"message": "Review added successfully", "review": r.View()})
}

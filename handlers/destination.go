package handlers

import (
	"net/http"

	"tourbook/models"
	"tourbook/services/destination"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DestinationHandler struct {
	DestinationService destination.DestinationService
}

func NewDestinationHandler(destinationService destination.DestinationService) *DestinationHandler {
	return &DestinationHandler{DestinationService: destinationService}
}

var destinationErrors = []statusRule{
	{destination.ErrDestinationNotFound, http.StatusNotFound},
	{destination.ErrMissingFields, http.StatusBadRequest},
	{destination.ErrHasTours, http.StatusBadRequest},
}

func (h *DestinationHandler) ListDestinationsHandler(c *gin.Context) {
	items, err := h.DestinationService.ListDestinations()
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"destinations": items})
}

// SearchDestinationsHandler handles GET /api/destinations/search?q=&country=.
func (h *DestinationHandler) SearchDestinationsHandler(c *gin.Context) {
	items, err := h.DestinationService.SearchDestinations(c.Query("q"), c.Query("country"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"destinations": items})
}

func (h *DestinationHandler) GetDestinationHandler(c *gin.Context) {
	d, err := h.DestinationService.GetDestination(c.Param("id"))
	if err != nil {
		respondError(c, err, destinationErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"destination": d})
}

func (h *DestinationHandler) CreateDestinationHandler(c *gin.Context) {
	var input models.DestinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.DestinationService.CreateDestination(input)
	if err != nil {
		respondError(c, err, destinationErrors...)
		return
	}
	getLogger(c).Info("Destination created", zap.String("destinationID", d.ID), zap.String("name", d.Name))
	success(c, http.StatusCreated, gin.H{"message": "Destination created successfully", "destination": d})
}

func (h *DestinationHandler) UpdateDestinationHandler(c *gin.Context) {
	var input models.DestinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	d, err := h.DestinationService.UpdateDestination(c.Param("id"), input)
	if err != nil {
		respondError(c, err, destinationErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Destination updated successfully", "destination": d})
}

// DeleteDestinationHandler refuses while tours still point at the destination.
func (h *DestinationHandler) DeleteDestinationHandler(c *gin.Context) {
	if err := h.DestinationService.DeleteDestination(c.Param("id")); err != nil {
		respondError(c, err, destinationErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Destination deleted successfully"})
}

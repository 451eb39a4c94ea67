package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"tourbook/models"
	"tourbook/services/availability"
	"tourbook/services/vehicle"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	VehicleService vehicle.VehicleService
}

func NewVehicleHandler(vehicleService vehicle.VehicleService) *VehicleHandler {
	return &VehicleHandler{VehicleService: vehicleService}
}

var vehicleErrors = []statusRule{
	{vehicle.ErrVehicleNotFound, http.StatusNotFound},
	{vehicle.ErrMissingFields, http.StatusBadRequest},
}

func (h *VehicleHandler) ListVehiclesHandler(c *gin.Context) {
	vehicles, err := h.VehicleService.ListVehicles()
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *VehicleHandler) GetVehicleHandler(c *gin.Context) {
	v, err := h.VehicleService.GetVehicle(c.Param("id"))
	if err != nil {
		respondError(c, err, vehicleErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"vehicle": v})
}

func (h *VehicleHandler) CreateVehicleHandler(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	v, err := h.VehicleService.CreateVehicle(input)
	if err != nil {
		respondError(c, err, vehicleErrors...)
		return
	}
	getLogger(c).Info("Vehicle added", zap.String("vehicleID", v.ID))
	success(c, http.StatusCreated, gin.H{"message": "Vehicle added", "vehicle_id": v.ID})
}

func (h *VehicleHandler) UpdateVehicleHandler(c *gin.Context) {
	var input models.VehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	v, err := h.VehicleService.UpdateVehicle(c.Param("id"), input)
	if err != nil {
		respondError(c, err, vehicleErrors...)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Vehicle updated", "vehicle": v})
}

// DeleteVehicleHandler removes the vehicle and all of its bookings.
func (h *VehicleHandler) DeleteVehicleHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.VehicleService.DeleteVehicle(id); err != nil {
		respondError(c, err, vehicleErrors...)
		return
	}
	getLogger(c).Info("Vehicle deleted", zap.String("vehicleID", id))
	success(c, http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// horizonParam reads ?horizon=; absent means the configured default.
func horizonParam(c *gin.Context) (int, bool) {
	raw := c.Query("horizon")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > availability.MaxHorizonDays {
		utils.JSONError(c, http.StatusBadRequest,
			fmt.Sprintf("horizon must be between 1 and %d days", availability.MaxHorizonDays))
		return 0, false
	}
	return n, true
}

// CalendarHandler handles GET /api/vehicles/:id/calendar?exclude=&horizon=.
func (h *VehicleHandler) CalendarHandler(c *gin.Context) {
	horizon, ok := horizonParam(c)
	if !ok {
		return
	}
	cal, err := h.VehicleService.Calendar(c.Param("id"), c.Query("exclude"), horizon)
	if err != nil {
		respondError(c, err, vehicleErrors...)
		return
	}
	c.JSON(http.StatusOK, cal)
}

func (h *VehicleHandler) CalendarsHandler(c *gin.Context) {
	horizon, ok := horizonParam(c)
	if !ok {
		return
	}
	cals, err := h.VehicleService.Calendars(horizon)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"calendars": cals})
}

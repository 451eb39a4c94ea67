package handlers

import (
	"tourbook/middleware"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions *middleware.SessionStore

	UserHandler           *UserHandler
	AdminHandler          *AdminHandler
	VehicleHandler        *VehicleHandler
	VehicleBookingHandler *VehicleBookingHandler
	DestinationHandler    *DestinationHandler
	TourHandler           *TourHandler
	TourBookingHandler    *TourBookingHandler
	DatabaseHandler       *DatabaseHandler
}

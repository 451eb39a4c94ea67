package models

// PasswordResetPayload is queued when a user asks for a reset code.
type PasswordResetPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	TTL   int    `json:"ttlMinutes"`
}

// BookingStatusPayload is queued whenever a vehicle booking changes status.
type BookingStatusPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	VehicleID string `json:"vehicleId"`
	FromDate  string `json:"fromDate"`
	ToDate    string `json:"toDate"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// DatabaseStats is returned by GET /api/database/info.
type DatabaseStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalTours           int64 `json:"total_tours"`
	TotalBookings        int64 `json:"total_bookings"`
	TotalDestinations    int64 `json:"total_destinations"`
	TotalVehicles        int64 `json:"total_vehicles"`
	TotalVehicleBookings int64 `json:"total_vehicle_bookings"`
}

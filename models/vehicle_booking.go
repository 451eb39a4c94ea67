package models

import (
	"encoding/json"
	"time"

	"tourbook/services/availability"
)

// VehicleBooking is a request to use a vehicle on a date or a span of dates.
type VehicleBooking struct {
	ID            string              `bson:"id" json:"id"`
	UserID        string              `bson:"user_id" json:"user_id"`
	VehicleID     string              `bson:"vehicle_id" json:"vehicle_id"`
	FromDate      string              `bson:"from_date" json:"from_date"`         // YYYY-MM-DD
	ToDate        string              `bson:"to_date" json:"to_date"`             // equal to FromDate for single-day bookings
	Time          string              `bson:"time,omitempty" json:"time"`         // single-day bookings only, e.g. "14:30"
	Status        availability.Status `bson:"status" json:"status"`               // pending, approved, rejected, cancelled
	FromPlace     string              `bson:"from_place" json:"from_place"`
	ToPlace       string              `bson:"to_place" json:"to_place"`
	TravelDetails string              `bson:"travel_details,omitempty" json:"travel_details"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// Snapshot converts the stored record into the resolver's read-only view.
func (b VehicleBooking) Snapshot() availability.Booking {
	return availability.Booking{
		ID:         b.ID,
		ResourceID: b.VehicleID,
		FromDate:   b.FromDate,
		ToDate:     b.ToDate,
		Time:       b.Time,
		Status:     b.Status,
	}
}

// Snapshots converts a slice of stored bookings.
func Snapshots(bookings []VehicleBooking) []availability.Booking {
	out := make([]availability.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Snapshot())
	}
	return out
}

// VehicleBookingRequest is the body of POST /api/vehicle-bookings.
type VehicleBookingRequest struct {
	VehicleID     string `json:"vehicle_id" binding:"required"`
	FromDate      string `json:"from_date" binding:"omitempty,calendardate"`
	ToDate        string `json:"to_date" binding:"omitempty,calendardate"`
	Time          string `json:"time"`
	FromPlace     string `json:"from_place"`
	ToPlace       string `json:"to_place"`
	TravelDetails string `json:"travel_details"`
}

// VehicleBookingUpdate is the body of PATCH /api/vehicle-bookings/:id. Nil means unchanged.
type VehicleBookingUpdate struct {
	Status   *availability.Status `json:"status"`
	FromDate *string              `json:"from_date" binding:"omitempty,calendardate"`
	ToDate   *string              `json:"to_date" binding:"omitempty,calendardate"`
	Time     *string              `json:"time"`
}

// Reschedules reports whether the update touches the dates or the time.
func (u VehicleBookingUpdate) Reschedules() bool {
	return u.FromDate != nil || u.ToDate != nil || u.Time != nil
}

// VehicleBookingView is a booking as listed to users and admins.
type VehicleBookingView struct {
	VehicleBooking
	User    *UserSummary    `json:"user,omitempty"`
	Vehicle *VehicleSummary `json:"vehicle,omitempty"`
}

// VehicleCalendar is the availability of one vehicle.
type VehicleCalendar struct {
	VehicleID string
	Dates     availability.Classification
}

func (c VehicleCalendar) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		VehicleID string   `json:"vehicle_id"`
		Booked    []string `json:"booked_dates"`
		Pending   []string `json:"pending_dates"`
		Available []string `json:"available_dates"`
	}{c.VehicleID, c.Dates.Booked.Sorted(), c.Dates.Pending.Sorted(), c.Dates.Available.Sorted()})
}

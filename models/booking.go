package models

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// TourBooking reserves seats on one departure of a tour.
type TourBooking struct {
	ID                   string    `bson:"id" json:"id"`
	UserID               string    `bson:"user_id" json:"user_id"`
	TourID               string    `bson:"tour_id" json:"tour_id"`
	TourDateID           string    `bson:"tour_date_id" json:"tour_date_id"`
	DepartureDate        string    `bson:"departure_date" json:"departure_date"` // copied from the departure at booking time
	NumberOfParticipants int       `bson:"number_of_participants" json:"number_of_participants"`
	TotalPrice           float64   `bson:"total_price" json:"total_price"`
	BookingStatus        string    `bson:"booking_status" json:"booking_status"`
	PaymentStatus        string    `bson:"payment_status" json:"payment_status"`
	SpecialRequests      string    `bson:"special_requests,omitempty" json:"special_requests"`
	CreatedAt            time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updated_at"`
}

// TourBookingRequest is the body of POST /api/bookings.
type TourBookingRequest struct {
	TourDateID           string `json:"tour_date_id" binding:"required"`
	NumberOfParticipants int    `json:"number_of_participants" binding:"required,min=1"`
	SpecialRequests      string `json:"special_requests"`
}

// TourBookingUpdate is the body of PUT /api/bookings/:id. Status fields are honoured for admins only.
type TourBookingUpdate struct {
	SpecialRequests *string `json:"special_requests"`
	BookingStatus   *string `json:"booking_status" binding:"omitempty,oneof=pending confirmed cancelled"`
	PaymentStatus   *string `json:"payment_status" binding:"omitempty,oneof=pending paid refunded"`
}

type TourRef struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	ImageURL         string          `json:"image_url,omitempty"`
	DurationDays     int             `json:"duration_days,omitempty"`
	Destination      *DestinationRef `json:"destination,omitempty"`
	IncludedServices []string        `json:"included_services,omitempty"`
}

// TourBookingView is a booking with its tour and, for admins, its user.
type TourBookingView struct {
	TourBooking
	Tour *TourRef     `json:"tour,omitempty"`
	User *UserSummary `json:"user,omitempty"`
}

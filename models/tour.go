package models

import "time"

// Tour is a packaged trip to a destination with fixed departure dates.
type Tour struct {
	ID               string          `bson:"id" json:"id"`
	Name             string          `bson:"name" json:"name"`
	Description      string          `bson:"description" json:"description"`
	DestinationID    string          `bson:"destination_id" json:"destination_id"`
	DurationDays     int             `bson:"duration_days" json:"duration_days"`
	Price            float64         `bson:"price" json:"price"`
	ImageURL         string          `bson:"image_url,omitempty" json:"image_url"`
	IncludedServices []string        `bson:"included_services" json:"included_services"`
	Itinerary        []string        `bson:"itinerary" json:"itinerary"`
	MaxParticipants  int             `bson:"max_participants,omitempty" json:"max_participants"`
	DepartureDates   []DepartureDate `bson:"departure_dates" json:"-"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
}

// DepartureDate is embedded in its tour so seats can be reserved with a single conditional update.
type DepartureDate struct {
	ID             string  `bson:"id" json:"id"`
	DepartureDate  string  `bson:"departure_date" json:"departure_date"` // YYYY-MM-DD
	AvailableSeats int     `bson:"available_seats" json:"available_seats"`
	PriceModifier  float64 `bson:"price_modifier" json:"price_modifier"`
}

// SeatPrice is the per-participant price on this departure.
func (d DepartureDate) SeatPrice(base float64) float64 {
	mod := d.PriceModifier
	if mod == 0 {
		mod = 1
	}
	return base * mod
}

// DateViews prices the departures. With openOnly, sold-out dates are left out.
func (t Tour) DateViews(openOnly bool) []TourDateView {
	views := make([]TourDateView, 0, len(t.DepartureDates))
	for _, d := range t.DepartureDates {
		if openOnly && d.AvailableSeats <= 0 {
			continue
		}
		views = append(views, TourDateView{
			ID:             d.ID,
			DepartureDate:  d.DepartureDate,
			AvailableSeats: d.AvailableSeats,
			Price:          d.SeatPrice(t.Price),
		})
	}
	return views
}

// DepartureInput is one departure in a create request.
type DepartureInput struct {
	Date           string   `json:"date" binding:"required,calendardate"`
	AvailableSeats int      `json:"available_seats" binding:"min=0"`
	PriceModifier  *float64 `json:"price_modifier"`
}

// TourInput is the body of create and update; nil fields are left unchanged on update.
type TourInput struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	DestinationID    *string          `json:"destination_id"`
	DurationDays     *int             `json:"duration_days"`
	Price            *float64         `json:"price"`
	ImageURL         *string          `json:"image_url"`
	IncludedServices []string         `json:"included_services"`
	Itinerary        []string         `json:"itinerary"`
	MaxParticipants  *int             `json:"max_participants"`
	DepartureDates   []DepartureInput `json:"departure_dates" binding:"dive"`
}

// TourDateView is a departure with its computed price.
type TourDateView struct {
	ID             string  `json:"id"`
	DepartureDate  string  `json:"departure_date"`
	AvailableSeats int     `json:"available_seats"`
	Price          float64 `json:"price"`
}

type DestinationRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
}

// TourView is a tour as listed.
type TourView struct {
	Tour
	Destination    *DestinationRef `json:"destination,omitempty"`
	AvailableDates []TourDateView  `json:"available_dates"`
}

// TourDetail adds every departure, the reviews and their mean rating (0 when unrated).
type TourDetail struct {
	TourView
	Reviews       []ReviewView `json:"reviews"`
	AverageRating float64      `json:"average_rating"`
}

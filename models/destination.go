package models

import "time"

// Destination is a place tours run to.
type Destination struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url"`
	Country     string    `bson:"country" json:"country"`
	State       string    `bson:"state,omitempty" json:"state"`
	City        string    `bson:"city,omitempty" json:"city"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// DestinationInput is the body of create and update; nil fields are left unchanged on update.
type DestinationInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Country     *string `json:"country"`
	State       *string `json:"state"`
	City        *string `json:"city"`
}

// DestinationListItem adds the number of tours to a destination.
type DestinationListItem struct {
	Destination
	TourCount int64 `json:"tour_count"`
}

// DestinationTour is a tour as shown on its destination page.
type DestinationTour struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	DurationDays        int     `json:"duration_days"`
	Price               float64 `json:"price"`
	ImageURL            string  `json:"image_url"`
	AvailableDatesCount int     `json:"available_dates_count"`
}

type DestinationDetail struct {
	Destination
	Tours []DestinationTour `json:"tours"`
}

func (d Destination) Ref() DestinationRef {
	return DestinationRef{ID: d.ID, Name: d.Name, Country: d.Country, State: d.State, City: d.City}
}

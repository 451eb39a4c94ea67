package models

import "time"

// Vehicle is a bookable car, van or bus.
type Vehicle struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Type        string    `bson:"type" json:"type"` // e.g. car, bus
	Description string    `bson:"description,omitempty" json:"description"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type VehicleSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

func (v Vehicle) Summary() VehicleSummary {
	return VehicleSummary{ID: v.ID, Name: v.Name, Type: v.Type}
}

// VehicleInput is used for both create and update; on update empty fields are left alone.
type VehicleInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

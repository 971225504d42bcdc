package models

import (
	"encoding/json"
	"time"
)

// DefaultWasteType is assigned to points created without an explicit waste type.
const DefaultWasteType = "Glass"

// RecyclingPoint is a single collection container with its location, how full it is and when it was last emptied.
type RecyclingPoint struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	FillLevel     int       `json:"fill_level"`
	WasteType     string    `json:"waste_type"`
	LastEmptiedAt time.Time `json:"last_emptied_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePointInput is the payload accepted when registering a new point.
type CreatePointInput struct {
	Name          string     `json:"name" binding:"required,max=100"`
	Latitude      *float64   `json:"latitude" binding:"required"`
	Longitude     *float64   `json:"longitude" binding:"required"`
	FillLevel     *int       `json:"fill_level"`
	WasteType     string     `json:"waste_type" binding:"max=50"`
	LastEmptiedAt *time.Time `json:"last_emptied_at"`
}

// UpdatePointInput carries the fields of a PUT or PATCH request. A nil field is left untouched.
// FillLevel is kept raw so that malformed values can fall back to the stored level.
type UpdatePointInput struct {
	Name          *string         `json:"name" binding:"omitempty,max=100"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
	FillLevel     json.RawMessage `json:"fill_level" swaggertype:"integer"`
	WasteType     *string         `json:"waste_type" binding:"omitempty,max=50"`
	LastEmptiedAt *time.Time      `json:"last_emptied_at"`
}

// PointFilter narrows a listing. Zero values disable the corresponding filter.
type PointFilter struct {
	WasteType string
	Name      string
	Near      *Proximity
}

// Proximity selects points within RadiusKm of a coordinate.
type Proximity struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

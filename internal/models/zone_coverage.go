package models

import (
	"time"

	"github.com/dmardones/delivery-slots/internal/geo"
)

// ZoneCoverage is a geographic polygon bound to at most one delivery
// slot. Addresses whose location falls inside the boundary may reserve
// that slot. Location is the derived centroid, never supplied by the
// caller.
type ZoneCoverage struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Name           string       `gorm:"size:100;not null" json:"name"`
	CommuneID      *uint        `json:"commune_id,omitempty"`
	Commune        string       `gorm:"size:100;not null" json:"commune"`
	Region         string       `gorm:"size:100;not null" json:"region"`
	Locality       string       `gorm:"size:150" json:"locality,omitempty"`
	PostalCode     string       `gorm:"size:20" json:"postal_code,omitempty"`
	DeliverySlotID *uint        `json:"delivery_slot_id,omitempty"`
	MaxCapacity    int          `gorm:"not null" json:"max_capacity"`
	Boundary       *geo.Polygon `gorm:"type:jsonb" json:"boundary,omitempty"`
	Location       *geo.Point   `gorm:"type:jsonb" json:"location,omitempty"`
	IsActive       bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/dmardones/delivery-slots/internal/geo"
)

// DeliveryAddress belongs to one customer. ZoneCoverageID is the zone
// that contained the address location when the address was last saved;
// it is captured at save time, not recomputed on reservation.
type DeliveryAddress struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	CustomerID     uint       `gorm:"not null;index" json:"customer_id"`
	ZoneCoverageID *uint      `json:"zone_coverage_id,omitempty"`
	CommuneID      *uint      `json:"commune_id,omitempty"`
	Street         string     `gorm:"size:200;not null" json:"street"`
	Locality       string     `gorm:"size:150;not null" json:"locality"`
	Commune        string     `gorm:"size:100;not null" json:"commune"`
	Region         string     `gorm:"size:100;not null" json:"region"`
	PostalCode     string     `gorm:"size:20" json:"postal_code,omitempty"`
	Location       *geo.Point `gorm:"type:jsonb" json:"location,omitempty"`
	IsDefault      bool       `gorm:"not null;default:false" json:"is_default"`
	CreatedAt      time.Time  `json:"created_at"`
}

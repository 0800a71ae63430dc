package models

import "time"

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation holds one customer's claim on a delivery slot. Only
// CONFIRMED reservations count against the slot's capacity. Version is
// bumped on every write and compared on update so concurrent edits of
// the same reservation surface as conflicts instead of lost updates.
type Reservation struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	CustomerID        uint              `gorm:"not null;index" json:"customer_id"`
	DeliveryAddressID uint              `gorm:"not null" json:"delivery_address_id"`
	DeliverySlotID    uint              `gorm:"not null;index" json:"delivery_slot_id"`
	Status            ReservationStatus `gorm:"type:varchar(20);not null;default:'CONFIRMED'" json:"status"`
	ReservedAt        time.Time         `gorm:"not null" json:"reserved_at"`
	CancelledAt       *time.Time        `json:"cancelled_at,omitempty"`
	Version           int               `gorm:"not null;default:1" json:"version"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

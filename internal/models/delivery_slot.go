package models

import (
	"time"

	"gorm.io/datatypes"
)

// DeliverySlot is a concrete delivery window: a time-slot template
// instantiated on a calendar date with finite capacity. ReservedCount
// mirrors the number of CONFIRMED reservations pointing at the slot and
// is only ever written by the ledger recount, under the slot's row lock.
// The composite unique index keeps one slot per (date, template) pair.
type DeliverySlot struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	TimeSlotTemplateID uint           `gorm:"not null;uniqueIndex:idx_slot_date_template" json:"time_slot_template_id"`
	DeliveryDate       datatypes.Date `gorm:"not null;uniqueIndex:idx_slot_date_template" json:"delivery_date"`
	DeliveryCost       float64        `gorm:"not null" json:"delivery_cost"`
	MaxCapacity        int            `gorm:"not null" json:"max_capacity"`
	ReservedCount      int            `gorm:"not null;default:0" json:"reserved_count"`
	IsActive           bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// DateString returns the delivery date in YYYY-MM-DD form, the format
// used for all calendar-date comparisons.
func (s *DeliverySlot) DateString() string {
	return time.Time(s.DeliveryDate).Format("2006-01-02")
}

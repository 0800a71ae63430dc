package models

import "time"

// TimeSlotTemplate is the recurring start/end time-of-day definition a
// delivery slot is instantiated from. Times are stored as zero-padded
// HH:MM:SS strings, which compare correctly with plain string ordering.
type TimeSlotTemplate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StartTime string    `gorm:"size:8;not null;uniqueIndex:idx_template_range" json:"start_time"`
	EndTime   string    `gorm:"size:8;not null;uniqueIndex:idx_template_range" json:"end_time"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

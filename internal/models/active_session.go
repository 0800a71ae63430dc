package models

import (
	"time"

	"github.com/google/uuid"
)

// ActiveSession is a customer's TTL-bounded login record. For any
// customer at most one row may be open (ended_at IS NULL) at a time;
// a partial unique index on customer_id enforces this in the database,
// so concurrent logins cannot both slip through the pre-check.
type ActiveSession struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// Active reports whether the session is open and unexpired at the given
// instant.
func (s *ActiveSession) Active(now time.Time) bool {
	return s.EndedAt == nil && s.ExpiresAt.After(now)
}

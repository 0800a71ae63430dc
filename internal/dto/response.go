package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmardones/delivery-slots/internal/models"
)

type ReservationResponse struct {
	ID                uint                      `json:"id"`
	CustomerID        uint                      `json:"customer_id"`
	DeliveryAddressID uint                      `json:"delivery_address_id"`
	DeliverySlotID    uint                      `json:"delivery_slot_id"`
	Status            models.ReservationStatus  `json:"status"`
	ReservationDate   string                    `json:"reservation_date"`
	ReservationTime   string                    `json:"reservation_time"`
	ReservedAt        time.Time                 `json:"reserved_at"`
	CancelledAt       *time.Time                `json:"cancelled_at,omitempty"`
	Version           int                       `json:"version"`
}

// ToReservationResponse derives the date and time-of-day fields from the
// stored reserved-at instant.
func ToReservationResponse(r *models.Reservation) ReservationResponse {
	reservedAt := r.ReservedAt.UTC()
	return ReservationResponse{
		ID:                r.ID,
		CustomerID:        r.CustomerID,
		DeliveryAddressID: r.DeliveryAddressID,
		DeliverySlotID:    r.DeliverySlotID,
		Status:            r.Status,
		ReservationDate:   reservedAt.Format("2006-01-02"),
		ReservationTime:   reservedAt.Format("15:04:05"),
		ReservedAt:        r.ReservedAt,
		CancelledAt:       r.CancelledAt,
		Version:           r.Version,
	}
}

type SlotResponse struct {
	ID                 uint      `json:"id"`
	TimeSlotTemplateID uint      `json:"time_slot_template_id"`
	DeliveryDate       string    `json:"delivery_date"`
	DeliveryCost       float64   `json:"delivery_cost"`
	MaxCapacity        int       `json:"max_capacity"`
	ReservedCount      int       `json:"reserved_count"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func ToSlotResponse(s *models.DeliverySlot) SlotResponse {
	return SlotResponse{
		ID:                 s.ID,
		TimeSlotTemplateID: s.TimeSlotTemplateID,
		DeliveryDate:       s.DateString(),
		DeliveryCost:       s.DeliveryCost,
		MaxCapacity:        s.MaxCapacity,
		ReservedCount:      s.ReservedCount,
		IsActive:           s.IsActive,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

type SessionResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uint       `json:"customer_id"`
	StartedAt  time.Time  `json:"started_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
	Active     bool       `json:"active"`
}

func ToSessionResponse(s *models.ActiveSession, now time.Time) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		StartedAt:  s.StartedAt,
		ExpiresAt:  s.ExpiresAt,
		EndedAt:    s.EndedAt,
		Active:     s.Active(now),
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}

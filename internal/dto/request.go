package dto

import (
	"encoding/json"

	"github.com/dmardones/delivery-slots/internal/models"
)

type ReservationRequest struct {
	CustomerID        uint                      `json:"customer_id"`
	DeliveryAddressID uint                      `json:"delivery_address_id"`
	DeliverySlotID    uint                      `json:"delivery_slot_id"`
	ReservationDate   string                    `json:"reservation_date"`
	ReservationTime   string                    `json:"reservation_time"`
	Status            *models.ReservationStatus `json:"status,omitempty"`
	Version           *int                      `json:"version,omitempty"`
}

type SlotRequest struct {
	TimeSlotTemplateID uint    `json:"time_slot_template_id"`
	DeliveryDate       string  `json:"delivery_date"`
	DeliveryCost       float64 `json:"delivery_cost"`
	MaxCapacity        *int    `json:"max_capacity,omitempty"`
	ReservedCount      *int    `json:"reserved_count,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

type ZoneRequest struct {
	Name           string          `json:"name"`
	CommuneID      *uint           `json:"commune_id,omitempty"`
	Commune        string          `json:"commune"`
	Region         string          `json:"region"`
	Locality       string          `json:"locality,omitempty"`
	PostalCode     string          `json:"postal_code,omitempty"`
	DeliverySlotID *uint           `json:"delivery_slot_id,omitempty"`
	MaxCapacity    *int            `json:"max_capacity,omitempty"`
	Boundary       json.RawMessage `json:"boundary"`
	IsActive       *bool           `json:"is_active,omitempty"`
}

type AddressRequest struct {
	CustomerID uint     `json:"customer_id"`
	CommuneID  *uint    `json:"commune_id,omitempty"`
	Street     string   `json:"street"`
	Locality   string   `json:"locality"`
	Commune    string   `json:"commune"`
	Region     string   `json:"region"`
	PostalCode string   `json:"postal_code,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	IsDefault  *bool    `json:"is_default,omitempty"`
}

type TemplateRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

type CustomerRequest struct {
	FullName string               `json:"full_name"`
	Email    string               `json:"email"`
	Phone    string               `json:"phone,omitempty"`
	Type     *models.CustomerType `json:"type,omitempty"`
}

type LoginRequest struct {
	CustomerID uint `json:"customer_id"`
}

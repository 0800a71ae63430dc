package models

import "time"

type CustomerType string

const (
	CustomerTypeBuyer   CustomerType = "BUYER"
	CustomerTypeCompany CustomerType = "COMPANY"
)

type Customer struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	FullName  string       `gorm:"size:200;not null" json:"full_name"`
	Email     string       `gorm:"size:200;not null;uniqueIndex" json:"email"`
	Phone     string       `gorm:"size:30" json:"phone,omitempty"`
	Type      CustomerType `gorm:"type:varchar(20);not null;default:'BUYER'" json:"type"`
	CreatedAt time.Time    `json:"created_at"`
}

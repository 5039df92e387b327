package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string  `gorm:"size:150;not null" json:"name"`
	Phone   string  `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email   *string `gorm:"size:150" json:"email"`
	Address *string `gorm:"size:255" json:"address"`

	// Stored as integer cent-points.
	LoyaltyPoints int64 `gorm:"not null;default:0" json:"loyaltyPoints"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

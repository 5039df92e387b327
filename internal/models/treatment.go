package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Treatment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code  string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name  string          `gorm:"size:150;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

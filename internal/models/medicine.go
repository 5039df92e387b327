package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MedicineType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Stocks []MedicineStock `gorm:"foreignKey:MedicineTypeID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MedicineStock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MedicineTypeID uint         `gorm:"not null;index" json:"medicineTypeId"`
	Type           MedicineType `gorm:"foreignKey:MedicineTypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"type"`

	Code     string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Quantity int    `gorm:"not null;default:0" json:"quantity"`

	IncomingPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"incomingPrice"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sellingPrice"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

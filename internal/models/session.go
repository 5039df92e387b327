package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is a billing invoice for one patient visit.
type Session struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"not null;index" json:"patientId"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient"`

	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description *string         `gorm:"size:1000" json:"description"`
	Discount    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`

	IsPaid bool       `gorm:"not null;default:false" json:"isPaid"`
	PaidAt *time.Time `json:"paidAt"`

	// SettledAt is stamped the first time the session is paid. Loyalty points
	// and stock movements are applied only while it is nil.
	SettledAt *time.Time `json:"settledAt"`

	Items         []SessionTreatment `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
	MedicineItems []SessionMedicine  `gorm:"constraint:OnDelete:CASCADE;" json:"medicineItems"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SessionTreatment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SessionID uint `gorm:"not null;index" json:"sessionId"`

	TreatmentID uint      `gorm:"not null;index" json:"treatmentId"`
	Treatment   Treatment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"treatment"`

	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Discount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
}

type SessionMedicine struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	SessionID uint `gorm:"not null;index" json:"sessionId"`

	MedicineID uint          `gorm:"not null;index" json:"medicineId"`
	Medicine   MedicineStock `gorm:"foreignKey:MedicineID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"medicine"`

	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Discount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
}

package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"not null;index" json:"patientId"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`

	// Date is the calendar day at UTC midnight; Time is "HH:MM".
	Date time.Time `gorm:"type:date;not null;index" json:"date"`
	Time string    `gorm:"size:5;not null" json:"time"`

	Status string  `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Notes  *string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

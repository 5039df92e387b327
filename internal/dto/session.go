package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

type SessionItemDTO struct {
	ID          uint            `json:"id"`
	TreatmentID uint            `json:"treatmentId"`
	Treatment   *RefDTO         `json:"treatment"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

type SessionMedicineDTO struct {
	ID         uint            `json:"id"`
	MedicineID uint            `json:"medicineId"`
	Medicine   *RefDTO         `json:"medicine"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
}

// RefDTO names the treatment or medicine a line points at.
type RefDTO struct {
	ID           uint             `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	SellingPrice *decimal.Decimal `json:"sellingPrice,omitempty"`
}

type SessionDTO struct {
	ID             uint                 `json:"id"`
	PatientID      uint                 `json:"patientId"`
	Patient        *PatientSummary      `json:"patient"`
	Date           time.Time            `json:"date"`
	Description    string               `json:"description"`
	Discount       decimal.Decimal      `json:"discount"`
	Total          decimal.Decimal      `json:"total"`
	IsPaid         bool                 `json:"isPaid"`
	PaidAt         *time.Time           `json:"paidAt"`
	Items          []SessionItemDTO     `json:"items"`
	MedicineItems  []SessionMedicineDTO `json:"medicineItems"`
	ItemsTotal     decimal.Decimal      `json:"itemsTotal"`
	MedicinesTotal decimal.Decimal      `json:"medicinesTotal"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func NewSession(s models.Session) SessionDTO {
	out := SessionDTO{
		ID:             s.ID,
		PatientID:      s.PatientID,
		Patient:        NewPatientSummary(s.Patient),
		Date:           s.Date,
		Discount:       s.Discount,
		Total:          s.Total,
		IsPaid:         s.IsPaid,
		PaidAt:         s.PaidAt,
		Items:          make([]SessionItemDTO, 0, len(s.Items)),
		MedicineItems:  make([]SessionMedicineDTO, 0, len(s.MedicineItems)),
		ItemsTotal:     decimal.Zero,
		MedicinesTotal: decimal.Zero,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.Description != nil {
		out.Description = *s.Description
	}

	for _, it := range s.Items {
		var ref *RefDTO
		if it.Treatment.ID != 0 {
			ref = &RefDTO{ID: it.Treatment.ID, Code: it.Treatment.Code, Name: it.Treatment.Name}
		}
		out.Items = append(out.Items, SessionItemDTO{
			ID:          it.ID,
			TreatmentID: it.TreatmentID,
			Treatment:   ref,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Total:       it.Total,
		})
		out.ItemsTotal = out.ItemsTotal.Add(it.Total)
	}

	for _, it := range s.MedicineItems {
		var ref *RefDTO
		if it.Medicine.ID != 0 {
			price := it.Medicine.SellingPrice
			ref = &RefDTO{ID: it.Medicine.ID, Code: it.Medicine.Code, Name: it.Medicine.Name, SellingPrice: &price}
		}
		out.MedicineItems = append(out.MedicineItems, SessionMedicineDTO{
			ID:         it.ID,
			MedicineID: it.MedicineID,
			Medicine:   ref,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Discount:   it.Discount,
			Total:      it.Total,
		})
		out.MedicinesTotal = out.MedicinesTotal.Add(it.Total)
	}

	return out
}

func NewSessions(sessions []models.Session) []SessionDTO {
	out := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, NewSession(s))
	}
	return out
}

package dto

import (
	"time"

	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

type PatientSummary struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

type AppointmentDTO struct {
	ID        uint            `json:"id"`
	PatientID uint            `json:"patientId"`
	Patient   *PatientSummary `json:"patient"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Status    string          `json:"status"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewPatientSummary(p models.Patient) *PatientSummary {
	if p.ID == 0 {
		return nil
	}
	return &PatientSummary{
		ID:    p.ID,
		Name:  p.Name,
		Phone: p.Phone,
		Email: p.Email,
	}
}

func NewAppointment(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:        ap.ID,
		PatientID: ap.PatientID,
		Patient:   NewPatientSummary(ap.Patient),
		Date:      domain.FormatDate(ap.Date),
		Time:      ap.Time,
		Status:    ap.Status,
		Notes:     ap.Notes,
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}
}

func NewAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointment(ap))
	}
	return out
}

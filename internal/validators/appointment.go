package validators

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

type AppointmentPayload struct {
	PatientID json.RawMessage `json:"patientId"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Notes     *string         `json:"notes"`
	Status    string          `json:"status"`
}

type AppointmentValues struct {
	PatientID uint
	Date      time.Time
	Time      string
	Notes     *string
	// Status is empty when the payload did not name one.
	Status appointment.Status
}

// ValidateAppointment checks an appointment payload. today is the current
// clinic calendar day at UTC midnight.
func ValidateAppointment(p AppointmentPayload, today time.Time) (AppointmentValues, []string) {
	var errs []string
	var v AppointmentValues

	patientID, ok := money.ParseID(p.PatientID)
	if !ok {
		errs = append(errs, "Valid patient selection is required.")
	}
	v.PatientID = patientID

	date, dateOK := appointment.ParseDate(p.Date)
	if !dateOK {
		errs = append(errs, "Date must be provided in YYYY-MM-DD format.")
	}
	v.Date = date

	hm, ok := appointment.ParseTime(p.Time)
	if !ok {
		errs = append(errs, "Time must follow HH:MM (24h) format.")
	}
	v.Time = hm

	if dateOK && appointment.IsPast(date, today) {
		errs = append(errs, "Appointment date cannot be in the past.")
	}

	if p.Notes != nil {
		v.Notes = optional(*p.Notes)
	}

	if strings.TrimSpace(p.Status) != "" {
		s, ok := appointment.ParseStatus(p.Status)
		if !ok {
			errs = append(errs, "Status must be one of PENDING, CONFIRMED, COMPLETED or CANCELLED.")
		}
		v.Status = s
	}

	return v, errs
}

package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

type UpdateAppointment struct {
	repo     domain.Repository
	timezone string
}

func NewUpdateAppointment(repo domain.Repository, tz string) *UpdateAppointment {
	return &UpdateAppointment{repo: repo, timezone: tz}
}

// Execute replaces every editable field. A payload without a status keeps
// the current one.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	payload validators.AppointmentPayload,
) (*models.Appointment, error) {

	v, errs := validators.ValidateAppointment(payload, timezone.TodayIn(uc.timezone))
	if len(errs) > 0 {
		return nil, httperr.NewValidation(errs)
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("appointment_not_found", "Appointment not found.")
		}
		return nil, err
	}

	if err := assertPatient(ctx, uc.repo, v.PatientID); err != nil {
		return nil, err
	}

	ap.PatientID = v.PatientID
	ap.Patient = models.Patient{}
	ap.Date = v.Date
	ap.Time = v.Time
	ap.Notes = v.Notes
	if v.Status != "" {
		ap.Status = string(v.Status)
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	return ap, nil
}

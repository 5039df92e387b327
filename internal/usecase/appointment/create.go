package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AdminID *uint
	Payload validators.AppointmentPayload
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	timezone string
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	v, errs := validators.ValidateAppointment(in.Payload, timezone.TodayIn(uc.timezone))
	if len(errs) > 0 {
		return nil, httperr.NewValidation(errs)
	}

	if err := assertPatient(ctx, uc.repo, v.PatientID); err != nil {
		return nil, err
	}

	status := v.Status
	if status == "" {
		status = domain.InitialStatus()
	}

	ap := &models.Appointment{
		PatientID: v.PatientID,
		Date:      v.Date,
		Time:      v.Time,
		Status:    string(status),
		Notes:     v.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  in.AdminID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func assertPatient(ctx context.Context, repo domain.Repository, patientID uint) error {
	ok, err := repo.PatientExists(ctx, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusinessMsg("patient_not_found", "Selected patient does not exist.")
	}
	return nil
}

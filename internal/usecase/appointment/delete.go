package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	adminID *uint,
	appointmentID uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, appointmentID); err != nil {
		if httperr.IsNotFound(err) {
			return httperr.ErrBusinessMsg("appointment_not_found", "Appointment not found.")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}

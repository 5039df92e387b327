package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

// ListFilter narrows appointment listings. Date wins over From/To.
type ListFilter struct {
	Query  string
	Date   *time.Time
	From   *time.Time
	To     *time.Time
	Offset int
	Limit  int
}

type Repository interface {
	PatientExists(ctx context.Context, patientID uint) (bool, error)

	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)
	ListAppointmentsForDay(ctx context.Context, day time.Time) ([]models.Appointment, error)
}

package billing

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

type SessionFilter struct {
	Query  string
	Offset int
	Limit  int
}

type Repository interface {
	PatientExists(ctx context.Context, patientID uint) (bool, error)
	MissingTreatments(ctx context.Context, ids []uint) ([]uint, error)
	MissingMedicines(ctx context.Context, ids []uint) ([]uint, error)

	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id uint) (*models.Session, error)
	ListSessions(ctx context.Context, f SessionFilter) ([]models.Session, int64, error)
	RecentSessions(ctx context.Context, limit int) ([]models.Session, error)

	// SetPaid locks the session row and applies ApplyPayment together with
	// its Settlement in one transaction.
	SetPaid(ctx context.Context, id uint, isPaid bool, now time.Time) (*models.Session, *Settlement, error)

	ClearSessions(ctx context.Context) (int64, error)
}

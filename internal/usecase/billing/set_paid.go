package billing

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

type SetSessionPaid struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewSetSessionPaid(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SetSessionPaid {
	return &SetSessionPaid{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute marks a session paid or unpaid. Loyalty points and stock are only
// touched the first time the session is paid.
func (uc *SetSessionPaid) Execute(
	ctx context.Context,
	adminID *uint,
	sessionID uint,
	isPaid bool,
) (*models.Session, error) {

	s, settlement, err := uc.repo.SetPaid(ctx, sessionID, isPaid, uc.now().UTC())
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessMsg("session_not_found", "Session not found.")
		}
		return nil, err
	}

	action := audit.ActionSessionUnpaid
	if isPaid {
		action = audit.ActionSessionPaid
	}

	meta := map[string]any{"settled": settlement != nil}
	if settlement != nil {
		meta["loyaltyPoints"] = settlement.LoyaltyPoints
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   action,
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: meta,
	})

	return s, nil
}

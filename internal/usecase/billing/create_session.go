package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

type CreateSessionInput struct {
	AdminID *uint
	Payload validators.SessionPayload
}

type CreateSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSession {
	return &CreateSession{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateSession) Execute(
	ctx context.Context,
	in CreateSessionInput,
) (*models.Session, error) {

	// --------------------------------------------------
	// Payload
	// --------------------------------------------------
	v, errs := validators.ValidateSession(in.Payload, uc.now())
	if len(errs) > 0 {
		return nil, httperr.NewValidation(errs)
	}

	// --------------------------------------------------
	// Referenced rows
	// --------------------------------------------------
	ok, err := uc.repo.PatientExists(ctx, v.PatientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusinessMsg("patient_not_found", "Selected patient does not exist.")
	}

	missing, err := uc.repo.MissingTreatments(ctx, lineIDs(v.Treatments))
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, httperr.ErrBusinessMsg("treatment_not_found",
			fmt.Sprintf("Treatment %d does not exist.", missing[0]))
	}

	missing, err = uc.repo.MissingMedicines(ctx, lineIDs(v.Medicines))
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, httperr.ErrBusinessMsg("medicine_not_found",
			fmt.Sprintf("Medicine %d does not exist.", missing[0]))
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	s := &models.Session{
		PatientID:   v.PatientID,
		Date:        v.Date,
		Description: v.Description,
		Discount:    v.Totals.Discount,
		Total:       v.Totals.Total,
	}
	for _, l := range v.Treatments {
		s.Items = append(s.Items, models.SessionTreatment{
			TreatmentID: l.RefID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			Total:       l.Total,
		})
	}
	for _, l := range v.Medicines {
		s.MedicineItems = append(s.MedicineItems, models.SessionMedicine{
			MedicineID: l.RefID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Discount:   l.Discount,
			Total:      l.Total,
		})
	}

	if err := uc.repo.CreateSession(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  in.AdminID,
		Action:   audit.ActionSessionCreated,
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{"total": s.Total.StringFixed(2)},
	})

	return s, nil
}

func lineIDs(lines []domain.Line) []uint {
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.RefID)
	}
	return ids
}

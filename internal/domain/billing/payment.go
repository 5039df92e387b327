package billing

import (
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

// Settlement is what marking a session paid for the first time does outside
// the session row: loyalty points for the patient and stock consumed per
// medicine id.
type Settlement struct {
	PatientID     uint
	LoyaltyPoints int64
	Consumed      map[uint]int
}

// ApplyPayment sets the paid flag on s. It returns a Settlement only on the
// first transition to paid; a session that was settled before keeps its
// SettledAt and yields nil, so repeated calls never award or consume twice.
func ApplyPayment(s *models.Session, isPaid bool, now time.Time) *Settlement {
	if !isPaid {
		s.IsPaid = false
		s.PaidAt = nil
		return nil
	}

	if !s.IsPaid {
		paidAt := now
		s.PaidAt = &paidAt
	}
	s.IsPaid = true

	if s.SettledAt != nil {
		return nil
	}

	settledAt := now
	s.SettledAt = &settledAt

	consumed := make(map[uint]int, len(s.MedicineItems))
	for _, item := range s.MedicineItems {
		consumed[item.MedicineID] += item.Quantity
	}

	return &Settlement{
		PatientID:     s.PatientID,
		LoyaltyPoints: LoyaltyPoints(s.Total),
		Consumed:      consumed,
	}
}

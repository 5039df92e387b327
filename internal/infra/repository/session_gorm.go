package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-admin/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func preloadSession(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Treatment").
		Preload("MedicineItems", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("MedicineItems.Medicine")
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *SessionGormRepository) PatientExists(
	ctx context.Context,
	patientID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Patient{}).
		Where("id = ?", patientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SessionGormRepository) MissingTreatments(
	ctx context.Context,
	ids []uint,
) ([]uint, error) {
	return missingIDs(r.db.WithContext(ctx).Model(&models.Treatment{}), ids)
}

func (r *SessionGormRepository) MissingMedicines(
	ctx context.Context,
	ids []uint,
) ([]uint, error) {
	return missingIDs(r.db.WithContext(ctx).Model(&models.MedicineStock{}), ids)
}

func missingIDs(q *gorm.DB, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	if err := q.Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(found))
	for _, id := range found {
		seen[id] = true
	}

	var missing []uint
	for _, id := range ids {
		if !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	return missing, nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *SessionGormRepository) CreateSession(
	ctx context.Context,
	s *models.Session,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Patient").Create(s).Error
	})
	if err != nil {
		return err
	}

	return preloadSession(r.db.WithContext(ctx)).First(s, s.ID).Error
}

func (r *SessionGormRepository) GetSession(
	ctx context.Context,
	id uint,
) (*models.Session, error) {

	var s models.Session
	if err := preloadSession(r.db.WithContext(ctx)).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionGormRepository) ListSessions(
	ctx context.Context,
	f billing.SessionFilter,
) ([]models.Session, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Joins("JOIN patients ON patients.id = sessions.patient_id")

	if query := strings.TrimSpace(f.Query); query != "" {
		like := pagination.LikePattern(query)
		if id, err := strconv.ParseUint(query, 10, 32); err == nil {
			q = q.Where(
				`sessions.id = ? OR LOWER(sessions.description) LIKE ? ESCAPE '\' OR LOWER(patients.name) LIKE ? ESCAPE '\'`,
				id, like, like,
			)
		} else {
			q = q.Where(
				`LOWER(sessions.description) LIKE ? ESCAPE '\' OR LOWER(patients.name) LIKE ? ESCAPE '\'`,
				like, like,
			)
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []models.Session
	if err := preloadSession(q.Session(&gorm.Session{})).
		Select("sessions.*").
		Order("sessions.date DESC").
		Order("sessions.created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&sessions).Error; err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

func (r *SessionGormRepository) RecentSessions(
	ctx context.Context,
	limit int,
) ([]models.Session, error) {

	var sessions []models.Session
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Order("date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *SessionGormRepository) SetPaid(
	ctx context.Context,
	id uint,
	isPaid bool,
	now time.Time,
) (*models.Session, *billing.Settlement, error) {

	var settlement *billing.Settlement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.Session
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, id).Error; err != nil {
			return err
		}

		if err := tx.Where("session_id = ?", s.ID).Find(&s.MedicineItems).Error; err != nil {
			return err
		}

		settlement = billing.ApplyPayment(&s, isPaid, now)

		if err := tx.Model(&models.Session{}).
			Where("id = ?", s.ID).
			Updates(map[string]any{
				"is_paid":    s.IsPaid,
				"paid_at":    s.PaidAt,
				"settled_at": s.SettledAt,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		if settlement == nil {
			return nil
		}

		if settlement.LoyaltyPoints > 0 {
			if err := tx.Model(&models.Patient{}).
				Where("id = ?", settlement.PatientID).
				Update("loyalty_points", gorm.Expr("loyalty_points + ?", settlement.LoyaltyPoints)).Error; err != nil {
				return err
			}
		}

		ids := make([]uint, 0, len(settlement.Consumed))
		for medicineID := range settlement.Consumed {
			ids = append(ids, medicineID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, medicineID := range ids {
			qty := settlement.Consumed[medicineID]

			var stock models.MedicineStock
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&stock, medicineID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			if err := tx.Model(&stock).
				Update("quantity", billing.RemainingStock(stock.Quantity, qty)).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s, err := r.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return s, settlement, nil
}

// ClearSessions removes every billing session with its line items.
func (r *SessionGormRepository) ClearSessions(ctx context.Context) (int64, error) {
	var removed int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SessionMedicine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.SessionTreatment{}).Error; err != nil {
			return err
		}

		res := tx.Where("1 = 1").Delete(&models.Session{})
		removed = res.RowsAffected
		return res.Error
	})

	return removed, err
}

// Compile-time check
var _ billing.Repository = (*SessionGormRepository)(nil)

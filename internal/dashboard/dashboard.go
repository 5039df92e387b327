// Package dashboard assembles the overview shown on the landing page.
package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/cache"
	apptDomain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	billingDomain "github.com/BruksfildServices01/clinic-admin/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-admin/internal/usecase/appointment"
)

const (
	RecentSessionLimit = 5
	unknownPatient     = "Unknown"
)

type Counts struct {
	Patients          int64 `json:"patients"`
	Treatments        int64 `json:"treatments"`
	AppointmentsToday int   `json:"appointmentsToday"`
}

type TodayAppointment struct {
	ID           uint   `json:"id"`
	PatientName  string `json:"patientName"`
	PatientPhone string `json:"patientPhone"`
	Status       string `json:"status"`
	Time         string `json:"time"`
}

type RecentSession struct {
	ID          uint            `json:"id"`
	PatientName string          `json:"patientName"`
	Total       decimal.Decimal `json:"total"`
	Date        string          `json:"date"`
}

type Summary struct {
	Counts            Counts             `json:"counts"`
	TodayAppointments []TodayAppointment `json:"todayAppointments"`
	RecentSessions    []RecentSession    `json:"recentSessions"`
	HasError          bool               `json:"hasError"`
}

// Placeholder is served when the database cannot be reached.
func Placeholder() Summary {
	return Summary{
		TodayAppointments: []TodayAppointment{},
		RecentSessions:    []RecentSession{},
		HasError:          true,
	}
}

type Service struct {
	db       *gorm.DB
	today    *ucAppointment.ListTodayAppointments
	sessions billingDomain.Repository
	cache    cache.Store
	log      *zap.Logger
}

func NewService(
	db *gorm.DB,
	today *ucAppointment.ListTodayAppointments,
	sessions billingDomain.Repository,
	store cache.Store,
	log *zap.Logger,
) *Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &Service{db: db, today: today, sessions: sessions, cache: store, log: log}
}

// Summary never fails: a database error yields Placeholder. Only complete
// summaries are cached.
func (s *Service) Summary(ctx context.Context) Summary {
	var cached Summary
	hit, err := s.cache.Get(ctx, cache.KeyDashboard, &cached)
	if err != nil {
		s.log.Warn("dashboard cache read failed", zap.Error(err))
	}
	if hit {
		return cached
	}

	sum, err := s.load(ctx)
	if err != nil {
		s.log.Error("unable to load dashboard data", zap.Error(err))
		return Placeholder()
	}

	if err := s.cache.Set(ctx, cache.KeyDashboard, sum); err != nil {
		s.log.Warn("dashboard cache write failed", zap.Error(err))
	}
	return sum
}

// Invalidate drops the cached summary after a write.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.KeyDashboard); err != nil {
		s.log.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *Service) load(ctx context.Context) (Summary, error) {
	var sum Summary
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Patient{}).Count(&sum.Counts.Patients).Error; err != nil {
		return sum, err
	}
	if err := db.Model(&models.Treatment{}).Count(&sum.Counts.Treatments).Error; err != nil {
		return sum, err
	}

	apps, err := s.today.Execute(ctx)
	if err != nil {
		return sum, err
	}
	sessions, err := s.sessions.RecentSessions(ctx, RecentSessionLimit)
	if err != nil {
		return sum, err
	}

	sum.TodayAppointments = make([]TodayAppointment, 0, len(apps))
	for _, ap := range apps {
		name := ap.Patient.Name
		if name == "" {
			name = unknownPatient
		}
		status := ap.Status
		if status == "" {
			status = string(apptDomain.InitialStatus())
		}
		sum.TodayAppointments = append(sum.TodayAppointments, TodayAppointment{
			ID:           ap.ID,
			PatientName:  name,
			PatientPhone: ap.Patient.Phone,
			Status:       status,
			Time:         ap.Time,
		})
	}
	sum.Counts.AppointmentsToday = len(sum.TodayAppointments)

	sum.RecentSessions = make([]RecentSession, 0, len(sessions))
	for _, se := range sessions {
		name := se.Patient.Name
		if name == "" {
			name = unknownPatient
		}
		sum.RecentSessions = append(sum.RecentSessions, RecentSession{
			ID:          se.ID,
			PatientName: name,
			Total:       se.Total,
			Date:        se.Date.UTC().Format(apptDomain.DateLayout),
		})
	}

	return sum, nil
}

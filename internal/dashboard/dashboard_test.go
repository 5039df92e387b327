package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-admin/internal/cache"
	"github.com/BruksfildServices01/clinic-admin/internal/dbtest"
	"github.com/BruksfildServices01/clinic-admin/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-admin/internal/usecase/appointment"
)

const tz = "Asia/Colombo"

// memStore records writes so tests can observe caching.
type memStore struct {
	data        map[string]Summary
	sets        int
	invalidated int
}

func (m *memStore) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m.data[key]
	if ok {
		*dst.(*Summary) = v
	}
	return ok, nil
}

func (m *memStore) Set(_ context.Context, key string, v any) error {
	m.data[key] = v.(Summary)
	m.sets++
	return nil
}

func (m *memStore) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	m.invalidated++
	return nil
}

var _ cache.Store = (*memStore)(nil)

func TestSummary(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	patient := models.Patient{Name: "Kasun Perera", Phone: "0771234567"}
	db.Create(&patient)
	db.Create(&models.Treatment{Code: "T1", Name: "Consult", Price: decimal.NewFromInt(1500)})

	today := timezone.TodayIn(tz)
	db.Create(&models.Appointment{PatientID: patient.ID, Date: today, Time: "14:00", Status: "CONFIRMED"})
	db.Create(&models.Appointment{PatientID: patient.ID, Date: today, Time: "09:30", Status: "PENDING"})

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		db.Create(&models.Session{
			PatientID: patient.ID,
			Date:      base.AddDate(0, 0, i),
			Total:     decimal.NewFromInt(int64(100 * (i + 1))),
		})
	}

	store := &memStore{data: map[string]Summary{}}
	svc := NewService(
		db,
		ucAppointment.NewListTodayAppointments(repository.NewAppointmentGormRepository(db), tz),
		repository.NewSessionGormRepository(db),
		store,
		zap.NewNop(),
	)

	sum := svc.Summary(ctx)
	if sum.HasError {
		t.Fatal("unexpected error flag")
	}
	if sum.Counts.Patients != 1 || sum.Counts.Treatments != 1 || sum.Counts.AppointmentsToday != 2 {
		t.Errorf("unexpected counts %+v", sum.Counts)
	}
	if sum.TodayAppointments[0].Time != "09:30" {
		t.Errorf("appointments not ordered by time: %+v", sum.TodayAppointments)
	}
	if len(sum.RecentSessions) != RecentSessionLimit {
		t.Fatalf("expected %d recent sessions, got %d", RecentSessionLimit, len(sum.RecentSessions))
	}
	if sum.RecentSessions[0].Date != "2026-01-07" {
		t.Errorf("expected newest session first, got %s", sum.RecentSessions[0].Date)
	}
	if store.sets != 1 {
		t.Errorf("expected summary to be cached once, got %d", store.sets)
	}

	// Served from cache: new rows are invisible until invalidation.
	db.Create(&models.Patient{Name: "Nimal", Phone: "0712345678"})
	if got := svc.Summary(ctx).Counts.Patients; got != 1 {
		t.Errorf("expected cached count 1, got %d", got)
	}

	svc.Invalidate(ctx)
	if got := svc.Summary(ctx).Counts.Patients; got != 2 {
		t.Errorf("expected fresh count 2, got %d", got)
	}
}

func TestSummary_DatabaseDown(t *testing.T) {
	db := dbtest.Open(t)
	sqlDB, _ := db.DB()
	sqlDB.Close()

	svc := NewService(
		db,
		ucAppointment.NewListTodayAppointments(repository.NewAppointmentGormRepository(db), tz),
		repository.NewSessionGormRepository(db),
		nil,
		zap.NewNop(),
	)

	sum := svc.Summary(context.Background())
	if !sum.HasError {
		t.Error("expected error flag when the database is unreachable")
	}
	if sum.TodayAppointments == nil || sum.RecentSessions == nil {
		t.Error("placeholder lists must be empty, not nil")
	}
}

package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-admin/internal/dbtest"
	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

const tz = "Asia/Colombo"

func futureDate(days int) string {
	return timezone.TodayIn(tz).AddDate(0, 0, days).Format(domain.DateLayout)
}

func TestAppointmentLifecycle(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewAppointmentGormRepository(db)
	ctx := context.Background()

	patient := models.Patient{Name: "Ruwan Jayasuriya", Phone: "0779876543"}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	pid := json.RawMessage(fmt.Sprint(patient.ID))

	ap, err := NewCreateAppointment(repo, nil, tz).Execute(ctx, CreateAppointmentInput{
		Payload: validators.AppointmentPayload{PatientID: pid, Date: futureDate(1), Time: "10:15"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ap.Status != string(domain.StatusPending) {
		t.Errorf("expected PENDING, got %s", ap.Status)
	}
	if ap.Patient.Name != "Ruwan Jayasuriya" {
		t.Errorf("patient not loaded")
	}

	updated, err := NewUpdateAppointment(repo, tz).Execute(ctx, ap.ID, validators.AppointmentPayload{
		PatientID: pid, Date: futureDate(2), Time: "11:00", Status: "CONFIRMED",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "CONFIRMED" || updated.Time != "11:00" {
		t.Errorf("unexpected update %+v", updated)
	}

	day, _ := domain.ParseDate(futureDate(2))
	list, total, err := NewListAppointments(repo).Execute(ctx, ListAppointmentsInput{
		Query: "ruwan",
		Date:  &day,
		Page:  pagination.Params{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected one match, got %d/%d", len(list), total)
	}

	_, total, err = NewListAppointments(repo).Execute(ctx, ListAppointmentsInput{
		Query: "%",
		Date:  &day,
		Page:  pagination.Params{Page: 1, PageSize: 10},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Errorf("%% must match literally, got %d rows", total)
	}

	del := NewDeleteAppointment(repo, nil)
	if err := del.Execute(ctx, nil, ap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := del.Execute(ctx, nil, ap.ID); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Errorf("expected appointment_not_found, got %v", err)
	}
}

func TestCreateAppointment_Rejects(t *testing.T) {
	db := dbtest.Open(t)
	uc := NewCreateAppointment(repository.NewAppointmentGormRepository(db), nil, tz)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		Payload: validators.AppointmentPayload{PatientID: json.RawMessage(`5`), Date: futureDate(1), Time: "09:00"},
	})
	if !httperr.IsBusiness(err, "patient_not_found") {
		t.Errorf("expected patient_not_found, got %v", err)
	}

	yesterday := timezone.TodayIn(tz).Add(-24 * time.Hour).Format(domain.DateLayout)
	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		Payload: validators.AppointmentPayload{PatientID: json.RawMessage(`5`), Date: yesterday, Time: "09:00"},
	})
	ve, ok := httperr.AsValidation(err)
	if !ok || len(ve.Errors) != 1 || ve.Errors[0] != "Appointment date cannot be in the past." {
		t.Errorf("expected past-date validation, got %v", err)
	}
}

func TestListTodayAppointments(t *testing.T) {
	db := dbtest.Open(t)
	repo := repository.NewAppointmentGormRepository(db)

	patient := models.Patient{Name: "A", Phone: "0700000001"}
	db.Create(&patient)

	today := timezone.TodayIn(tz)
	for _, hm := range []string{"15:00", "08:30"} {
		db.Create(&models.Appointment{PatientID: patient.ID, Date: today, Time: hm, Status: "PENDING"})
	}
	db.Create(&models.Appointment{PatientID: patient.ID, Date: today.AddDate(0, 0, 1), Time: "07:00", Status: "PENDING"})

	apps, err := NewListTodayAppointments(repo, tz).Execute(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(apps) != 2 || apps[0].Time != "08:30" {
		t.Errorf("unexpected appointments %+v", apps)
	}
}

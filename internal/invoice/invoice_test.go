package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

func TestRenderSession(t *testing.T) {
	email := "nimal@example.com"
	notes := "Follow-up in two weeks."

	s := models.Session{
		ID:          15,
		Date:        time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2026, 4, 2, 9, 5, 0, 0, time.UTC),
		Description: &notes,
		Discount:    decimal.NewFromInt(200),
		Total:       decimal.NewFromInt(1800),
		Patient:     models.Patient{Name: "Nimal Perera", Phone: "0771234567", Email: &email},
		Items: []models.SessionTreatment{{
			Treatment: models.Treatment{Name: "Abhyanga"},
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(1000),
			Discount:  decimal.Zero,
			Total:     decimal.NewFromInt(2000),
		}},
		MedicineItems: []models.SessionMedicine{{
			Quantity:  1,
			UnitPrice: decimal.Zero,
			Discount:  decimal.Zero,
			Total:     decimal.Zero,
		}},
	}

	var buf bytes.Buffer
	err := RenderSession(&buf, Data{
		ClinicName: "Medical Center Management System",
		Currency:   "LKR",
		Session:    s,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output is not a PDF")
	}
}

func TestRenderTable(t *testing.T) {
	rows := make([][]string, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, []string{"1", "2026-04-02", "Nimal", "LKR 1,800.00"})
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, "Sessions Report", "2026-04-01 to 2026-04-30",
		[]string{"ID", "Date", "Patient", "Total"}, rows); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output is not a PDF")
	}

	buf.Reset()
	if err := RenderTable(&buf, "Empty", "", []string{"A"}, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
}

package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/clinic-admin/internal/dbtest"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestParseRange(t *testing.T) {
	today := day("2026-06-15")

	r := ParseRange("", "", today)
	if !r.From.Equal(day("1970-01-01")) || !r.To.Equal(day("2026-06-16")) {
		t.Errorf("unexpected default range %+v", r)
	}

	r = ParseRange("2026-06-01", "2026-06-10", today)
	if r.Label() != "2026-06-01 to 2026-06-10" {
		t.Errorf("unexpected label %q", r.Label())
	}
}

func TestReports(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	p := models.Patient{Name: "Sunil", Phone: "0712222222"}
	db.Create(&p)
	mt := models.MedicineType{Name: "Tablets"}
	db.Create(&mt)
	a := models.MedicineStock{MedicineTypeID: mt.ID, Code: "B1", Name: "Triphala", Quantity: 10, IncomingPrice: decimal.NewFromInt(5), SellingPrice: decimal.NewFromInt(10)}
	b := models.MedicineStock{MedicineTypeID: mt.ID, Code: "A1", Name: "Ashwagandha", Quantity: 10, IncomingPrice: decimal.NewFromInt(5), SellingPrice: decimal.NewFromInt(20)}
	db.Create(&a)
	db.Create(&b)

	mk := func(date string, paid bool, lines ...models.SessionMedicine) {
		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.Total)
		}
		s := models.Session{PatientID: p.ID, Date: day(date).Add(10 * time.Hour), Total: total, IsPaid: paid, MedicineItems: lines}
		if err := db.Create(&s).Error; err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	line := func(m models.MedicineStock, qty int) models.SessionMedicine {
		return models.SessionMedicine{MedicineID: m.ID, Quantity: qty, UnitPrice: m.SellingPrice, Discount: decimal.Zero, Total: m.SellingPrice.Mul(decimal.NewFromInt(int64(qty)))}
	}

	mk("2026-06-01", true, line(a, 2), line(b, 1))
	mk("2026-06-10", true, line(a, 3))
	mk("2026-06-05", false, line(b, 9))
	mk("2026-07-01", true, line(b, 4))

	r := ParseRange("2026-06-01", "2026-06-10", day("2026-07-15"))

	sessions, err := Sessions(ctx, db, r)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 3 || sessions[0].Date != "2026-06-01" || sessions[2].Date != "2026-06-10" {
		t.Errorf("unexpected sessions %+v", sessions)
	}

	meds, err := Medicines(ctx, db, r)
	if err != nil {
		t.Fatalf("medicines: %v", err)
	}
	if len(meds) != 2 {
		t.Fatalf("expected 2 medicines, got %+v", meds)
	}
	if meds[0].Name != "Ashwagandha" || meds[0].Quantity != 1 || !meds[0].Revenue.Equal(decimal.NewFromInt(20)) {
		t.Errorf("unexpected first row %+v", meds[0])
	}
	if meds[1].Name != "Triphala" || meds[1].Quantity != 5 || meds[1].TypeName != "Tablets" {
		t.Errorf("unexpected second row %+v", meds[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	rows := []MedicineRow{{ID: 1, Code: "A1", Name: "Ashwagandha", TypeName: "Tablets", Quantity: 3, Revenue: decimal.RequireFromString("60.50")}}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, "Medicines", MedicineHeaders, MedicineCells(rows)); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue("Medicines", "A1"); v != "Code" {
		t.Errorf("header A1 = %q", v)
	}
	if v, _ := f.GetCellValue("Medicines", "B2"); v != "Ashwagandha" {
		t.Errorf("B2 = %q", v)
	}
	if v, _ := f.GetCellValue("Medicines", "E2"); v != "60.5" {
		t.Errorf("E2 = %q", v)
	}
}

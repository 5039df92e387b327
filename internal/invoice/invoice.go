// Package invoice renders billing sessions and report tables as PDF.
package invoice

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

type Data struct {
	ClinicName string
	Currency   string
	Location   *time.Location
	Session    models.Session
}

type row struct {
	label     string
	quantity  int
	unitPrice decimal.Decimal
	discount  decimal.Decimal
	total     decimal.Decimal
}

var (
	colWidths = []float64{70, 15, 32, 32, 31}
	colAlign  = []string{"L", "C", "R", "R", "R"}
	colTitles = []string{"Item", "Qty", "Unit Price", "Discount", "Total"}
)

func newDocument() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 20)
	return pdf, pdf.UnicodeTranslatorFromDescriptor("")
}

// RenderSession writes the invoice of one session.
func RenderSession(w io.Writer, d Data) error {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	s := d.Session
	pdf, tr := newDocument()
	cur := func(v decimal.Decimal) string { return money.Format(d.Currency, v) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(148, 163, 184)
		pdf.CellFormat(0, 5, tr("Generated by "+d.ClinicName+"."), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(d.ClinicName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(0, 6, "Billing Session Invoice", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	heading(pdf, "Invoice Details")
	text(pdf, fmt.Sprintf("Session ID: %d", s.ID))
	text(pdf, "Session Date: "+s.Date.In(loc).Format("2006-01-02"))
	text(pdf, "Created: "+s.CreatedAt.In(loc).Format("2006-01-02 15:04"))
	pdf.Ln(4)

	heading(pdf, "Patient")
	name := s.Patient.Name
	if name == "" {
		name = "N/A"
	}
	text(pdf, tr("Name: "+name))
	if s.Patient.Phone != "" {
		text(pdf, "Phone: "+s.Patient.Phone)
	}
	if s.Patient.Email != nil && *s.Patient.Email != "" {
		text(pdf, tr("Email: "+*s.Patient.Email))
	}
	pdf.Ln(4)

	treatments := make([]row, 0, len(s.Items))
	treatmentSubtotal := decimal.Zero
	for _, it := range s.Items {
		label := it.Treatment.Name
		if label == "" {
			label = "Treatment"
		}
		treatments = append(treatments, row{label, it.Quantity, it.UnitPrice, it.Discount, it.Total})
		treatmentSubtotal = treatmentSubtotal.Add(it.Total).Add(it.Discount)
	}

	medicines := make([]row, 0, len(s.MedicineItems))
	medicineSubtotal := decimal.Zero
	for _, it := range s.MedicineItems {
		label := it.Medicine.Name
		if label == "" {
			label = "Medicine"
		}
		medicines = append(medicines, row{label, it.Quantity, it.UnitPrice, it.Discount, it.Total})
		medicineSubtotal = medicineSubtotal.Add(it.Total).Add(it.Discount)
	}

	lineTable(pdf, tr, "Treatments", treatments, cur)
	lineTable(pdf, tr, "Medicines", medicines, cur)

	heading(pdf, "Summary")
	if treatmentSubtotal.IsPositive() {
		summaryLine(pdf, "Treatment Subtotal", cur(treatmentSubtotal), false)
	}
	if medicineSubtotal.IsPositive() {
		summaryLine(pdf, "Medicine Subtotal", cur(medicineSubtotal), false)
	}
	summaryLine(pdf, "Subtotal", cur(treatmentSubtotal.Add(medicineSubtotal)), false)
	summaryLine(pdf, "Session Discount", cur(s.Discount), false)
	summaryLine(pdf, "Total Due", cur(s.Total), true)

	if s.Description != nil && *s.Description != "" {
		pdf.Ln(4)
		heading(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*s.Description), "", "L", false)
	}

	return pdf.Output(w)
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 41, 59)
}

func text(pdf *fpdf.Fpdf, s string) {
	pdf.CellFormat(0, 5, s, "", 1, "L", false, 0, "")
}

func summaryLine(pdf *fpdf.Fpdf, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(60, 6, label+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
}

func lineTable(pdf *fpdf.Fpdf, tr func(string) string, title string, rows []row, cur func(decimal.Decimal) string) {
	if len(rows) == 0 {
		return
	}

	heading(pdf, title)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(241, 245, 249)
	for i, h := range colTitles {
		pdf.CellFormat(colWidths[i], 7, h, "B", 0, colAlign[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		cells := []string{
			tr(r.label),
			fmt.Sprint(r.quantity),
			cur(r.unitPrice),
			cur(r.discount),
			cur(r.total),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 6, c, "", 0, colAlign[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

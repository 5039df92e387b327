package validators

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/domain/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

type SessionLinePayload struct {
	TreatmentID json.RawMessage `json:"treatmentId"`
	MedicineID  json.RawMessage `json:"medicineId"`
	Quantity    json.RawMessage `json:"quantity"`
	UnitPrice   json.RawMessage `json:"unitPrice"`
	Discount    json.RawMessage `json:"discount"`
}

type SessionPayload struct {
	PatientID   json.RawMessage      `json:"patientId"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Discount    json.RawMessage      `json:"discount"`
	Items       []SessionLinePayload `json:"items"`
	Medicines   []SessionLinePayload `json:"medicines"`
}

type SessionValues struct {
	PatientID   uint
	Date        time.Time
	Description *string
	Treatments  []billing.Line
	Medicines   []billing.Line
	Totals      billing.Totals
}

// ValidateSession checks a billing payload and computes every line total and
// the session total. now is used when no date is supplied.
func ValidateSession(p SessionPayload, now time.Time) (SessionValues, []string) {
	var errs []string
	var v SessionValues

	patientID, ok := money.ParseID(p.PatientID)
	if !ok {
		errs = append(errs, "Patient is required.")
	}
	v.PatientID = patientID

	date, ok := parseSessionDate(p.Date, now)
	if !ok {
		errs = append(errs, "A valid session date is required.")
	}
	v.Date = date
	v.Description = optional(p.Description)

	if len(p.Items) == 0 && len(p.Medicines) == 0 {
		errs = append(errs, "Add at least one treatment or medicine to the session.")
	}

	for i, item := range p.Items {
		line, lineErrs := validateLine(item.TreatmentID, item, "treatment", i+1)
		if _, ok := money.ParseID(item.TreatmentID); !ok {
			lineErrs = append([]string{fmt.Sprintf("Treatment selection is required for item %d.", i+1)}, lineErrs...)
		}
		errs = append(errs, lineErrs...)
		v.Treatments = append(v.Treatments, line)
	}

	for i, item := range p.Medicines {
		line, lineErrs := validateLine(item.MedicineID, item, "medicine", i+1)
		if _, ok := money.ParseID(item.MedicineID); !ok {
			lineErrs = append([]string{fmt.Sprintf("Medicine selection is required for medicine item %d.", i+1)}, lineErrs...)
		}
		errs = append(errs, lineErrs...)
		v.Medicines = append(v.Medicines, line)
	}

	sessionDiscount, msg := parseNonNegative(p.Discount, true)
	if msg != "" {
		errs = append(errs, msg)
	}

	totals, err := billing.ComputeTotals(v.Treatments, v.Medicines, sessionDiscount)
	switch {
	case err != nil:
		errs = append(errs, "Session discount cannot exceed item total.")
	case !money.WithinLimit(totals.Subtotal):
		errs = append(errs, "Session total cannot exceed "+money.MaxAmountText+".")
	}
	v.Totals = totals

	return v, errs
}

func validateLine(refRaw json.RawMessage, item SessionLinePayload, kind string, n int) (billing.Line, []string) {
	var errs []string

	refID, _ := money.ParseID(refRaw)

	qty, present, err := money.ParseInt(item.Quantity)
	if !present || err != nil || qty <= 0 {
		qty = 1
	}
	if qty > MaxQuantity {
		errs = append(errs, fmt.Sprintf("Quantity cannot exceed %d for %s item %d.", MaxQuantity, kind, n))
		qty = 1
	}

	unitPrice, msg := parseNonNegative(item.UnitPrice, false)
	if msg != "" {
		errs = append(errs, fmt.Sprintf("Unit price is invalid for %s item %d.", kind, n))
	}

	discount, msg := parseNonNegative(item.Discount, true)
	if msg != "" {
		errs = append(errs, fmt.Sprintf("Discount is invalid for %s item %d.", kind, n))
	}

	line, err := billing.NewLine(refID, qty, unitPrice, discount)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Discount cannot exceed subtotal for %s item %d.", kind, n))
		line = billing.Line{
			RefID:     refID,
			Quantity:  qty,
			UnitPrice: unitPrice,
			Discount:  discount,
			Total:     decimal.Zero,
		}
	}
	if !money.WithinLimit(line.Total) {
		errs = append(errs, fmt.Sprintf("Line total cannot exceed %s for %s item %d.", money.MaxAmountText, kind, n))
	}

	return line, errs
}

func parseSessionDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

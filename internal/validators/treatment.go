package validators

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

type TreatmentPayload struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price json.RawMessage `json:"price"`
}

type TreatmentValues struct {
	Code  string
	Name  string
	Price decimal.Decimal
}

func NormalizeCode(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

func ValidateTreatment(p TreatmentPayload) (TreatmentValues, []string) {
	var errs []string

	v := TreatmentValues{
		Code: NormalizeCode(p.Code),
		Name: strings.TrimSpace(p.Name),
	}

	if v.Code == "" {
		errs = append(errs, "Treatment code is required.")
	}
	if v.Name == "" {
		errs = append(errs, "Treatment name is required.")
	}

	price, msg := parsePrice(p.Price)
	if msg != "" {
		errs = append(errs, msg)
	}
	v.Price = price

	return v, errs
}

// parsePrice requires a strictly positive amount with at most two decimals.
func parsePrice(raw json.RawMessage) (decimal.Decimal, string) {
	d, present, err := money.Parse(raw)
	switch {
	case !present:
		return decimal.Zero, "Price is required."
	case err != nil || !d.IsPositive():
		return decimal.Zero, "Price must be a positive number."
	case !money.WithinLimit(d):
		return decimal.Zero, "Price cannot exceed " + money.MaxAmountText + "."
	case !money.HasAtMostCents(d):
		return decimal.Zero, "Price can only have up to two decimal places."
	}
	return d, ""
}

// parseNonNegative accepts zero. When allowMissing is set an absent value
// reads as zero.
func parseNonNegative(raw json.RawMessage, allowMissing bool) (decimal.Decimal, string) {
	d, present, err := money.Parse(raw)
	switch {
	case !present && allowMissing:
		return decimal.Zero, ""
	case !present:
		return decimal.Zero, "Value is required."
	case err != nil || d.IsNegative():
		return decimal.Zero, "Value must be zero or a positive number."
	case !money.WithinLimit(d):
		return decimal.Zero, "Value cannot exceed " + money.MaxAmountText + "."
	case !money.HasAtMostCents(d):
		return decimal.Zero, "Value can only have up to two decimal places."
	}
	return d, ""
}

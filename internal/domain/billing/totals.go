package billing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrLineDiscountTooLarge    = errors.New("discount exceeds line subtotal")
	ErrSessionDiscountTooLarge = errors.New("session discount exceeds item total")
)

// Line is one treatment or medicine row of a billing session.
type Line struct {
	RefID     uint
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

type Totals struct {
	TreatmentsTotal decimal.Decimal
	MedicinesTotal  decimal.Decimal
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
}

// ComputeLine returns max(0, quantity*unitPrice - discount). A discount larger
// than quantity*unitPrice is rejected.
func ComputeLine(quantity int, unitPrice, discount decimal.Decimal) (decimal.Decimal, error) {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.GreaterThan(subtotal) {
		return decimal.Zero, ErrLineDiscountTooLarge
	}
	return nonNegative(subtotal.Sub(discount)), nil
}

// NewLine computes the total of a line and returns it filled in.
func NewLine(refID uint, quantity int, unitPrice, discount decimal.Decimal) (Line, error) {
	total, err := ComputeLine(quantity, unitPrice, discount)
	if err != nil {
		return Line{}, err
	}
	return Line{
		RefID:     refID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Discount:  discount,
		Total:     total,
	}, nil
}

// ComputeTotals sums line totals and applies the session-level discount.
func ComputeTotals(treatments, medicines []Line, sessionDiscount decimal.Decimal) (Totals, error) {
	t := Totals{
		TreatmentsTotal: SumLines(treatments),
		MedicinesTotal:  SumLines(medicines),
		Discount:        sessionDiscount,
	}
	t.Subtotal = t.TreatmentsTotal.Add(t.MedicinesTotal)

	if sessionDiscount.GreaterThan(t.Subtotal) {
		return t, ErrSessionDiscountTooLarge
	}

	t.Total = nonNegative(t.Subtotal.Sub(sessionDiscount))
	return t, nil
}

func SumLines(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total)
	}
	return sum
}

// LoyaltyPoints awarded for a paid invoice: the total rounded to the nearest
// whole unit, kept as integer cent-points.
func LoyaltyPoints(total decimal.Decimal) int64 {
	if total.IsNegative() {
		return 0
	}
	return total.Round(0).IntPart()
}

// RemainingStock is the quantity left after consuming, floored at zero.
func RemainingStock(current, consumed int) int {
	if consumed >= current {
		return 0
	}
	return current - consumed
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

package validators

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

// MaxQuantity bounds stock and session line quantities.
const MaxQuantity = 100000

type MedicineTypePayload struct {
	Name string `json:"name"`
}

func ValidateMedicineType(p MedicineTypePayload) (string, []string) {
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		return name, []string{"Medicine type name is required."}
	case len([]rune(name)) > 100:
		return name, []string{"Medicine type name must be 100 characters or less."}
	}
	return name, nil
}

type StockPayload struct {
	MedicineTypeID json.RawMessage `json:"medicineTypeId"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Quantity       json.RawMessage `json:"quantity"`
	IncomingPrice  json.RawMessage `json:"incomingPrice"`
	SellingPrice   json.RawMessage `json:"sellingPrice"`
}

type StockValues struct {
	MedicineTypeID uint
	Code           string
	Name           string
	Quantity       int
	IncomingPrice  decimal.Decimal
	SellingPrice   decimal.Decimal
}

func ValidateStock(p StockPayload) (StockValues, []string) {
	var errs []string

	v := StockValues{
		Code: NormalizeCode(p.Code),
		Name: strings.TrimSpace(p.Name),
	}

	typeID, ok := money.ParseID(p.MedicineTypeID)
	if !ok {
		errs = append(errs, "Medicine type is required.")
	}
	v.MedicineTypeID = typeID

	if v.Code == "" {
		errs = append(errs, "Medicine code is required.")
	}
	if v.Name == "" {
		errs = append(errs, "Medicine name is required.")
	}

	qty, present, err := money.ParseInt(p.Quantity)
	switch {
	case !present || err != nil || qty <= 0:
		errs = append(errs, "Quantity must be a positive whole number.")
	case qty > MaxQuantity:
		errs = append(errs, fmt.Sprintf("Quantity cannot exceed %d.", MaxQuantity))
	}
	v.Quantity = qty

	incoming, incomingMsg := parsePrice(p.IncomingPrice)
	if incomingMsg != "" {
		errs = append(errs, incomingMsg)
	}
	selling, sellingMsg := parsePrice(p.SellingPrice)
	if sellingMsg != "" {
		errs = append(errs, sellingMsg)
	}

	if incomingMsg == "" && sellingMsg == "" && incoming.GreaterThan(selling) {
		errs = append(errs, "Selling price should be greater than or equal to incoming price.")
	}

	v.IncomingPrice = incoming
	v.SellingPrice = selling

	return v, errs
}

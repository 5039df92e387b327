package models

import "github.com/shopspring/decimal"

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Admin{},
		&Patient{},
		&Treatment{},
		&MedicineType{},
		&MedicineStock{},
		&Appointment{},
		&Session{},
		&SessionTreatment{},
		&SessionMedicine{},
		&AuditLog{},
	}
}

func init() {
	// Amounts are sent to clients as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

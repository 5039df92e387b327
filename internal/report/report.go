// Package report builds the session and medicine sales reports.
package report

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

// Range is the half-open interval [From, To).
type Range struct {
	From time.Time
	To   time.Time
}

// ParseRange reads inclusive YYYY-MM-DD bounds. A missing or unreadable
// from is 1970-01-01, a missing or unreadable to is today.
func ParseRange(fromRaw, toRaw string, today time.Time) Range {
	from, ok := appointment.ParseDate(fromRaw)
	if !ok {
		from = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	to, ok := appointment.ParseDate(toRaw)
	if !ok {
		to = today
	}
	return Range{From: from, To: to.AddDate(0, 0, 1)}
}

// Label renders the inclusive bounds for report subtitles.
func (r Range) Label() string {
	return r.From.Format(appointment.DateLayout) + " to " + r.To.AddDate(0, 0, -1).Format(appointment.DateLayout)
}

type SessionRow struct {
	ID          uint            `json:"id"`
	Date        string          `json:"date"`
	PatientName string          `json:"patientName"`
	Description string          `json:"description"`
	Total       decimal.Decimal `json:"total"`
}

type MedicineRow struct {
	ID       uint            `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	TypeName string          `json:"typeName"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Sessions lists every session dated inside r, oldest first.
func Sessions(ctx context.Context, db *gorm.DB, r Range) ([]SessionRow, error) {
	var sessions []models.Session
	if err := db.WithContext(ctx).
		Preload("Patient").
		Where("date >= ? AND date < ?", r.From, r.To).
		Order("date ASC").
		Order("id ASC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	rows := make([]SessionRow, 0, len(sessions))
	for _, s := range sessions {
		name := s.Patient.Name
		if name == "" {
			name = "Unknown"
		}
		desc := ""
		if s.Description != nil {
			desc = *s.Description
		}
		rows = append(rows, SessionRow{
			ID:          s.ID,
			Date:        s.Date.UTC().Format(appointment.DateLayout),
			PatientName: name,
			Description: desc,
			Total:       s.Total,
		})
	}
	return rows, nil
}

// Medicines aggregates the medicine lines of paid sessions dated inside r,
// one row per medicine sorted by name.
func Medicines(ctx context.Context, db *gorm.DB, r Range) ([]MedicineRow, error) {
	var items []models.SessionMedicine
	if err := db.WithContext(ctx).
		Select("session_medicines.*").
		Joins("JOIN sessions ON sessions.id = session_medicines.session_id").
		Where("sessions.is_paid = ? AND sessions.date >= ? AND sessions.date < ?", true, r.From, r.To).
		Preload("Medicine.Type").
		Find(&items).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*MedicineRow)
	for _, it := range items {
		agg, ok := byID[it.MedicineID]
		if !ok {
			name := it.Medicine.Name
			if name == "" {
				name = "Unknown"
			}
			agg = &MedicineRow{
				ID:       it.MedicineID,
				Code:     it.Medicine.Code,
				Name:     name,
				TypeName: it.Medicine.Type.Name,
				Revenue:  decimal.Zero,
			}
			byID[it.MedicineID] = agg
		}
		agg.Quantity += it.Quantity
		agg.Revenue = agg.Revenue.Add(it.Total)
	}

	rows := make([]MedicineRow, 0, len(byID))
	for _, agg := range byID {
		rows = append(rows, *agg)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if a == b {
			return rows[i].ID < rows[j].ID
		}
		return a < b
	})
	return rows, nil
}

// ----------------------------------------------------------------------------
// Tabular forms shared by the PDF and XLSX exports
// ----------------------------------------------------------------------------

var (
	SessionHeaders  = []string{"Session ID", "Date", "Patient", "Description", "Total"}
	MedicineHeaders = []string{"Code", "Medicine", "Type", "Quantity Sold", "Revenue"}
)

func SessionText(rows []SessionRow, currency string) [][]string {
	out := make([][]string, 0, len(rows)+1)
	total := decimal.Zero
	for _, r := range rows {
		out = append(out, []string{
			strconv.FormatUint(uint64(r.ID), 10), r.Date, r.PatientName, r.Description, money.Format(currency, r.Total),
		})
		total = total.Add(r.Total)
	}
	if len(rows) > 0 {
		out = append(out, []string{"", "", "", "Total", money.Format(currency, total)})
	}
	return out
}

func MedicineText(rows []MedicineRow, currency string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Code, r.Name, r.TypeName, strconv.Itoa(r.Quantity), money.Format(currency, r.Revenue),
		})
	}
	return out
}

func SessionCells(rows []SessionRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.ID, r.Date, r.PatientName, r.Description, r.Total.InexactFloat64()})
	}
	return out
}

func MedicineCells(rows []MedicineRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Code, r.Name, r.TypeName, r.Quantity, r.Revenue.InexactFloat64()})
	}
	return out
}

package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/invoice"
	"github.com/BruksfildServices01/clinic-admin/internal/report"
	"github.com/BruksfildServices01/clinic-admin/internal/timezone"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	db       *gorm.DB
	settings InvoiceSettings
	timezone string
	log      *zap.Logger
}

func NewReportHandler(db *gorm.DB, settings InvoiceSettings, tz string, log *zap.Logger) *ReportHandler {
	return &ReportHandler{db: db, settings: settings, timezone: tz, log: log}
}

type ReportMeta struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type reportResponse[T any] struct {
	Data []T        `json:"data"`
	Meta ReportMeta `json:"meta"`
}

func (h *ReportHandler) reportRange(c *gin.Context) report.Range {
	return report.ParseRange(c.Query("from"), c.Query("to"), timezone.TodayIn(h.timezone))
}

func rangeMeta(r report.Range) ReportMeta {
	return ReportMeta{
		From: r.From.Format(domain.DateLayout),
		To:   r.To.AddDate(0, 0, -1).Format(domain.DateLayout),
	}
}

func attachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}

func stamp(r report.Range) string {
	return r.From.Format("20060102") + "-" + r.To.AddDate(0, 0, -1).Format("20060102")
}

// ------------------------------------------------------
// Sessions
// ------------------------------------------------------

func (h *ReportHandler) sessionRows(c *gin.Context) (report.Range, []report.SessionRow, bool) {
	r := h.reportRange(c)
	rows, err := report.Sessions(c.Request.Context(), h.db, r)
	if err != nil {
		writeError(c, h.log, err, "Unable to build session report.")
		return r, nil, false
	}
	return r, rows, true
}

func (h *ReportHandler) Sessions(c *gin.Context) {
	r, rows, ok := h.sessionRows(c)
	if !ok {
		return
	}
	if rows == nil {
		rows = []report.SessionRow{}
	}
	c.JSON(http.StatusOK, reportResponse[report.SessionRow]{Data: rows, Meta: rangeMeta(r)})
}

func (h *ReportHandler) SessionsPDF(c *gin.Context) {
	r, rows, ok := h.sessionRows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := invoice.RenderTable(&buf,
		h.settings.ClinicName+" - Session Report",
		r.Label(),
		report.SessionHeaders,
		report.SessionText(rows, h.settings.Currency),
	); err != nil {
		writeError(c, h.log, err, "Unable to build session report.")
		return
	}

	attachment(c, "application/pdf", "sessions-"+stamp(r)+".pdf", buf.Bytes())
}

func (h *ReportHandler) SessionsXLSX(c *gin.Context) {
	r, rows, ok := h.sessionRows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, "Sessions", report.SessionHeaders, report.SessionCells(rows)); err != nil {
		writeError(c, h.log, err, "Unable to build session report.")
		return
	}

	attachment(c, xlsxContentType, "sessions-"+stamp(r)+".xlsx", buf.Bytes())
}

// ------------------------------------------------------
// Medicines
// ------------------------------------------------------

func (h *ReportHandler) medicineRows(c *gin.Context) (report.Range, []report.MedicineRow, bool) {
	r := h.reportRange(c)
	rows, err := report.Medicines(c.Request.Context(), h.db, r)
	if err != nil {
		writeError(c, h.log, err, "Unable to build medicine report.")
		return r, nil, false
	}
	return r, rows, true
}

func (h *ReportHandler) Medicines(c *gin.Context) {
	r, rows, ok := h.medicineRows(c)
	if !ok {
		return
	}
	if rows == nil {
		rows = []report.MedicineRow{}
	}
	c.JSON(http.StatusOK, reportResponse[report.MedicineRow]{Data: rows, Meta: rangeMeta(r)})
}

func (h *ReportHandler) MedicinesPDF(c *gin.Context) {
	r, rows, ok := h.medicineRows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := invoice.RenderTable(&buf,
		h.settings.ClinicName+" - Medicine Sales",
		r.Label(),
		report.MedicineHeaders,
		report.MedicineText(rows, h.settings.Currency),
	); err != nil {
		writeError(c, h.log, err, "Unable to build medicine report.")
		return
	}

	attachment(c, "application/pdf", "medicines-"+stamp(r)+".pdf", buf.Bytes())
}

func (h *ReportHandler) MedicinesXLSX(c *gin.Context) {
	r, rows, ok := h.medicineRows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, "Medicines", report.MedicineHeaders, report.MedicineCells(rows)); err != nil {
		writeError(c, h.log, err, "Unable to build medicine report.")
		return
	}

	attachment(c, xlsxContentType, "medicines-"+stamp(r)+".xlsx", buf.Bytes())
}

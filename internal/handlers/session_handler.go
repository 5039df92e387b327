package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-admin/internal/archive"
	"github.com/BruksfildServices01/clinic-admin/internal/dto"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/invoice"
	"github.com/BruksfildServices01/clinic-admin/internal/middleware"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	ucBilling "github.com/BruksfildServices01/clinic-admin/internal/usecase/billing"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

// InvoiceSettings carries the clinic details printed on invoices.
type InvoiceSettings struct {
	ClinicName string
	Currency   string
	Location   *time.Location
}

type SessionHandler struct {
	createUC  *ucBilling.CreateSession
	setPaidUC *ucBilling.SetSessionPaid
	listUC    *ucBilling.ListSessions
	getUC     *ucBilling.GetSession
	uploads   *archive.Background
	invoice   InvoiceSettings
	log       *zap.Logger
}

func NewSessionHandler(
	createUC *ucBilling.CreateSession,
	setPaidUC *ucBilling.SetSessionPaid,
	listUC *ucBilling.ListSessions,
	getUC *ucBilling.GetSession,
	uploads *archive.Background,
	settings InvoiceSettings,
	log *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		createUC:  createUC,
		setPaidUC: setPaidUC,
		listUC:    listUC,
		getUC:     getUC,
		uploads:   uploads,
		invoice:   settings,
		log:       log,
	}
}

type SetPaidRequest struct {
	IsPaid *bool `json:"isPaid"`
}

// ======================================================
// LIST
// ======================================================
func (h *SessionHandler) List(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	sessions, total, err := h.listUC.Execute(c.Request.Context(), query, p)
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch sessions.")
		return
	}

	httpresp.List(c, dto.NewSessions(sessions), httpresp.NewMeta(p, total, query))
}

// ======================================================
// CREATE
// ======================================================
func (h *SessionHandler) Create(c *gin.Context) {
	var req validators.SessionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), ucBilling.CreateSessionInput{
		AdminID: middleware.AdminID(c),
		Payload: req,
	})
	if err != nil {
		writeError(c, h.log, err, "Unable to create session.")
		return
	}

	httpresp.Created(c, dto.NewSession(*s))
}

// ======================================================
// GET
// ======================================================
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	s, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch session.")
		return
	}

	httpresp.OK(c, dto.NewSession(*s))
}

// ======================================================
// PAYMENT STATUS
// ======================================================
func (h *SessionHandler) SetPaid(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	var req SetPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPaid == nil {
		httperr.BadRequest(c, "invalid_request", "isPaid boolean is required.")
		return
	}

	s, err := h.setPaidUC.Execute(c.Request.Context(), middleware.AdminID(c), id, *req.IsPaid)
	if err != nil {
		writeError(c, h.log, err, "Unable to update session.")
		return
	}

	httpresp.OK(c, dto.NewSession(*s))
}

// ======================================================
// INVOICE
// ======================================================
func (h *SessionHandler) Invoice(c *gin.Context) {
	id, ok := pathID(c, "session")
	if !ok {
		return
	}

	s, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "Unable to generate invoice.")
		return
	}

	var buf bytes.Buffer
	if err := invoice.RenderSession(&buf, invoice.Data{
		ClinicName: h.invoice.ClinicName,
		Currency:   h.invoice.Currency,
		Location:   h.invoice.Location,
		Session:    *s,
	}); err != nil {
		writeError(c, h.log, err, "Unable to generate invoice.")
		return
	}

	pdf := buf.Bytes()
	h.uploads.Submit(s.ID, pdf)

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="session-%d.pdf"`, s.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

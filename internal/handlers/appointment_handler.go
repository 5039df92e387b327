package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/clinic-admin/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/dto"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/middleware"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	ucAppointment "github.com/BruksfildServices01/clinic-admin/internal/usecase/appointment"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	deleteUC *ucAppointment.DeleteAppointment
	listUC   *ucAppointment.ListAppointments
	log      *zap.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
		log:      log,
	}
}

type AppointmentMeta struct {
	httpresp.Meta
	Date *string `json:"date"`
	From *string `json:"from"`
	To   *string `json:"to"`
}

// dateFilter reads an optional YYYY-MM-DD query parameter. ok is false when
// the parameter is present but unreadable; the 400 has been written.
func dateFilter(c *gin.Context, name string) (*time.Time, *string, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil, true
	}
	d, ok := domain.ParseDate(raw)
	if !ok {
		httperr.BadRequest(c, "invalid_"+name,
			"Invalid "+name+" filter. Use YYYY-MM-DD format.")
		return nil, nil, false
	}
	return &d, &raw, true
}

// ======================================================
// LIST
// ======================================================
func (h *AppointmentHandler) List(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	date, dateRaw, ok := dateFilter(c, "date")
	if !ok {
		return
	}
	from, fromRaw, ok := dateFilter(c, "from")
	if !ok {
		return
	}
	to, toRaw, ok := dateFilter(c, "to")
	if !ok {
		return
	}

	apps, total, err := h.listUC.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Query: query,
		Date:  date,
		From:  from,
		To:    to,
		Page:  p,
	})
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch appointments.")
		return
	}

	httpresp.List(c, dto.NewAppointments(apps), AppointmentMeta{
		Meta: httpresp.NewMeta(p, total, query),
		Date: dateRaw,
		From: fromRaw,
		To:   toRaw,
	})
}

// ======================================================
// CREATE
// ======================================================
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req validators.AppointmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		AdminID: middleware.AdminID(c),
		Payload: req,
	})
	if err != nil {
		writeError(c, h.log, err, "Unable to create appointment.")
		return
	}

	httpresp.Created(c, dto.NewAppointment(*ap))
}

// ======================================================
// UPDATE
// ======================================================
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "appointment")
	if !ok {
		return
	}

	var req validators.AppointmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.log, err, "Unable to update appointment.")
		return
	}

	httpresp.OK(c, dto.NewAppointment(*ap))
}

// ======================================================
// DELETE
// ======================================================
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "appointment")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.AdminID(c), id); err != nil {
		writeError(c, h.log, err, "Unable to delete appointment.")
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

type PatientHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewPatientHandler(db *gorm.DB, log *zap.Logger) *PatientHandler {
	return &PatientHandler{db: db, log: log}
}

func (h *PatientHandler) list(ctx context.Context, query string, p pagination.Params) ([]models.Patient, int64, error) {
	q := h.db.WithContext(ctx).Model(&models.Patient{})

	if query != "" {
		like := pagination.LikePattern(query)
		q = q.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			like, like, like,
		)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []models.Patient
	if err := q.Session(&gorm.Session{}).
		Order("created_at ASC").
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&patients).Error; err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}

// ======================================================
// LIST
// ======================================================
func (h *PatientHandler) List(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	patients, total, err := h.list(c.Request.Context(), query, p)
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch patients.")
		return
	}

	httpresp.List(c, patients, httpresp.NewMeta(p, total, query))
}

// ======================================================
// CREATE
// ======================================================
func (h *PatientHandler) Create(c *gin.Context) {
	var req validators.PatientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, errs := validators.ValidatePatient(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	if h.phoneTaken(c, v.Phone, 0) {
		return
	}

	patient := models.Patient{
		Name:    v.Name,
		Phone:   v.Phone,
		Email:   v.Email,
		Address: v.Address,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "patient_exists", "A patient with that phone already exists.")
			return
		}
		writeError(c, h.log, err, "Unable to create patient.")
		return
	}

	httpresp.Created(c, patient)
}

// ======================================================
// UPDATE
// ======================================================
func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "patient")
	if !ok {
		return
	}

	var req validators.PatientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, errs := validators.ValidatePatient(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var patient models.Patient
	if err := db.First(&patient, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "patient_not_found", "Patient not found.")
			return
		}
		writeError(c, h.log, err, "Unable to update patient.")
		return
	}

	if h.phoneTaken(c, v.Phone, patient.ID) {
		return
	}

	patient.Name = v.Name
	patient.Phone = v.Phone
	patient.Email = v.Email
	patient.Address = v.Address

	if err := db.Save(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "patient_exists", "A patient with that phone already exists.")
			return
		}
		writeError(c, h.log, err, "Unable to update patient.")
		return
	}

	httpresp.OK(c, patient)
}

// phoneTaken answers 409 when another patient already uses phone.
func (h *PatientHandler) phoneTaken(c *gin.Context, phone string, exceptID uint) bool {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Patient{}).
		Where("phone = ? AND id <> ?", phone, exceptID).
		Count(&count).Error; err != nil {
		writeError(c, h.log, err, "Unable to save patient.")
		return true
	}
	if count > 0 {
		httperr.Conflict(c, "patient_exists", "A patient with that phone already exists.")
		return true
	}
	return false
}

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

type TreatmentHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTreatmentHandler(db *gorm.DB, log *zap.Logger) *TreatmentHandler {
	return &TreatmentHandler{db: db, log: log}
}

func (h *TreatmentHandler) list(ctx context.Context, query string, p pagination.Params) ([]models.Treatment, int64, error) {
	q := h.db.WithContext(ctx).Model(&models.Treatment{})

	if query != "" {
		like := pagination.LikePattern(query)
		q = q.Where(`LOWER(code) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var treatments []models.Treatment
	if err := q.Session(&gorm.Session{}).
		Order("name ASC").
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&treatments).Error; err != nil {
		return nil, 0, err
	}

	return treatments, total, nil
}

func (h *TreatmentHandler) List(c *gin.Context) {
	p := pagination.FromContext(c)
	query := strings.TrimSpace(c.Query("query"))

	treatments, total, err := h.list(c.Request.Context(), query, p)
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch treatments.")
		return
	}

	httpresp.List(c, treatments, httpresp.NewMeta(p, total, query))
}

func (h *TreatmentHandler) Create(c *gin.Context) {
	var req validators.TreatmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, errs := validators.ValidateTreatment(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	if h.codeTaken(c, v.Code, 0) {
		return
	}

	treatment := models.Treatment{Code: v.Code, Name: v.Name, Price: v.Price}
	if err := h.db.WithContext(c.Request.Context()).Create(&treatment).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "treatment_exists", "A treatment with that code already exists.")
			return
		}
		writeError(c, h.log, err, "Unable to create treatment.")
		return
	}

	httpresp.Created(c, treatment)
}

func (h *TreatmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "treatment")
	if !ok {
		return
	}

	var req validators.TreatmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, errs := validators.ValidateTreatment(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var treatment models.Treatment
	if err := db.First(&treatment, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "treatment_not_found", "Treatment not found.")
			return
		}
		writeError(c, h.log, err, "Unable to update treatment.")
		return
	}

	if h.codeTaken(c, v.Code, treatment.ID) {
		return
	}

	treatment.Code = v.Code
	treatment.Name = v.Name
	treatment.Price = v.Price

	if err := db.Save(&treatment).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "treatment_exists", "A treatment with that code already exists.")
			return
		}
		writeError(c, h.log, err, "Unable to update treatment.")
		return
	}

	httpresp.OK(c, treatment)
}

func (h *TreatmentHandler) codeTaken(c *gin.Context, code string, exceptID uint) bool {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Treatment{}).
		Where("code = ? AND id <> ?", code, exceptID).
		Count(&count).Error; err != nil {
		writeError(c, h.log, err, "Unable to save treatment.")
		return true
	}
	if count > 0 {
		httperr.Conflict(c, "treatment_exists", "A treatment with that code already exists.")
		return true
	}
	return false
}

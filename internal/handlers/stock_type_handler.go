package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

type StockTypeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStockTypeHandler(db *gorm.DB, log *zap.Logger) *StockTypeHandler {
	return &StockTypeHandler{db: db, log: log}
}

type MedicineTypeDTO struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	StockCount int64     `json:"stockCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (h *StockTypeHandler) all(ctx context.Context) ([]MedicineTypeDTO, error) {
	var out []MedicineTypeDTO
	err := h.db.WithContext(ctx).
		Model(&models.MedicineType{}).
		Select("medicine_types.id, medicine_types.name, medicine_types.created_at, medicine_types.updated_at, " +
			"COUNT(medicine_stocks.id) AS stock_count").
		Joins("LEFT JOIN medicine_stocks ON medicine_stocks.medicine_type_id = medicine_types.id").
		Group("medicine_types.id, medicine_types.name, medicine_types.created_at, medicine_types.updated_at").
		Order("medicine_types.name ASC").
		Scan(&out).Error
	return out, err
}

func (h *StockTypeHandler) withCount(ctx context.Context, t models.MedicineType) (MedicineTypeDTO, error) {
	out := MedicineTypeDTO{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
	err := h.db.WithContext(ctx).
		Model(&models.MedicineStock{}).
		Where("medicine_type_id = ?", t.ID).
		Count(&out.StockCount).Error
	return out, err
}

func (h *StockTypeHandler) List(c *gin.Context) {
	types, err := h.all(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch medicine types.")
		return
	}
	if types == nil {
		types = []MedicineTypeDTO{}
	}
	httpresp.OK(c, types)
}

func (h *StockTypeHandler) Create(c *gin.Context) {
	var req validators.MedicineTypePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	name, errs := validators.ValidateMedicineType(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	if h.nameTaken(c, name, 0) {
		return
	}

	t := models.MedicineType{Name: name}
	if err := h.db.WithContext(c.Request.Context()).Create(&t).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "medicine_type_exists", "A medicine type with that name already exists.")
			return
		}
		writeError(c, h.log, err, "Unable to create medicine type.")
		return
	}

	httpresp.Created(c, MedicineTypeDTO{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt})
}

func (h *StockTypeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "medicine type")
	if !ok {
		return
	}

	var req validators.MedicineTypePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	name, errs := validators.ValidateMedicineType(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	ctx := c.Request.Context()
	db := h.db.WithContext(ctx)

	var t models.MedicineType
	if err := db.First(&t, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "medicine_type_not_found", "Medicine type not found.")
			return
		}
		writeError(c, h.log, err, "Unable to update medicine type.")
		return
	}

	if h.nameTaken(c, name, t.ID) {
		return
	}

	t.Name = name
	if err := db.Save(&t).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "medicine_type_exists", "A medicine type with that name already exists.")
			return
		}
		writeError(c, h.log, err, "Unable to update medicine type.")
		return
	}

	out, err := h.withCount(ctx, t)
	if err != nil {
		writeError(c, h.log, err, "Unable to update medicine type.")
		return
	}

	httpresp.OK(c, out)
}

func (h *StockTypeHandler) nameTaken(c *gin.Context, name string, exceptID uint) bool {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.MedicineType{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error; err != nil {
		writeError(c, h.log, err, "Unable to save medicine type.")
		return true
	}
	if count > 0 {
		httperr.Conflict(c, "medicine_type_exists", "A medicine type with that name already exists.")
		return true
	}
	return false
}

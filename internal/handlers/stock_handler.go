package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
	"github.com/BruksfildServices01/clinic-admin/internal/pagination"
	"github.com/BruksfildServices01/clinic-admin/internal/validators"
)

type StockHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStockHandler(db *gorm.DB, log *zap.Logger) *StockHandler {
	return &StockHandler{db: db, log: log}
}

// StockMeta extends the list meta with valuation figures computed over the
// whole inventory, not only the current page.
type StockMeta struct {
	httpresp.Meta
	TypeID          *uint           `json:"typeId"`
	InventoryValue  decimal.Decimal `json:"inventoryValue"`
	ExpectedRevenue decimal.Decimal `json:"expectedRevenue"`
}

type StockFilter struct {
	Query  string
	TypeID *uint
}

func (h *StockHandler) list(ctx context.Context, f StockFilter, p pagination.Params) ([]models.MedicineStock, int64, error) {
	q := h.db.WithContext(ctx).Model(&models.MedicineStock{})

	if f.TypeID != nil {
		q = q.Where("medicine_type_id = ?", *f.TypeID)
	}
	if f.Query != "" {
		like := pagination.LikePattern(f.Query)
		q = q.Where(`LOWER(code) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stocks []models.MedicineStock
	if err := q.Session(&gorm.Session{}).
		Preload("Type").
		Order("updated_at DESC").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&stocks).Error; err != nil {
		return nil, 0, err
	}

	return stocks, total, nil
}

type valuation struct {
	InventoryValue  decimal.Decimal
	ExpectedRevenue decimal.Decimal
}

func (h *StockHandler) valuation(ctx context.Context) (valuation, error) {
	var v valuation
	err := h.db.WithContext(ctx).
		Model(&models.MedicineStock{}).
		Select(
			"COALESCE(SUM(quantity * incoming_price), 0) AS inventory_value, " +
				"COALESCE(SUM(quantity * selling_price), 0) AS expected_revenue",
		).
		Scan(&v).Error
	v.InventoryValue = v.InventoryValue.Round(2)
	v.ExpectedRevenue = v.ExpectedRevenue.Round(2)
	return v, err
}

// ======================================================
// LIST
// ======================================================
func (h *StockHandler) List(c *gin.Context) {
	p := pagination.FromContext(c)
	f := StockFilter{Query: strings.TrimSpace(c.Query("query"))}

	if n, err := strconv.ParseUint(c.Query("typeId"), 10, 32); err == nil && n > 0 {
		id := uint(n)
		f.TypeID = &id
	}

	ctx := c.Request.Context()

	stocks, total, err := h.list(ctx, f, p)
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch stocks.")
		return
	}

	v, err := h.valuation(ctx)
	if err != nil {
		writeError(c, h.log, err, "Unable to fetch stocks.")
		return
	}

	httpresp.List(c, stocks, StockMeta{
		Meta:            httpresp.NewMeta(p, total, f.Query),
		TypeID:          f.TypeID,
		InventoryValue:  v.InventoryValue,
		ExpectedRevenue: v.ExpectedRevenue,
	})
}

// ======================================================
// CREATE
// ======================================================
func (h *StockHandler) Create(c *gin.Context) {
	var req validators.StockPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, errs := validators.ValidateStock(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	if !h.checkReferences(c, v, 0) {
		return
	}

	stock := models.MedicineStock{}
	applyStock(&stock, v)

	db := h.db.WithContext(c.Request.Context())
	if err := db.Omit("Type").Create(&stock).Error; err != nil {
		h.saveFailed(c, err, "Unable to create stock item.")
		return
	}
	if err := db.Preload("Type").First(&stock, stock.ID).Error; err != nil {
		writeError(c, h.log, err, "Unable to create stock item.")
		return
	}

	httpresp.Created(c, stock)
}

// ======================================================
// UPDATE
// ======================================================
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "stock")
	if !ok {
		return
	}

	var req validators.StockPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	v, errs := validators.ValidateStock(req)
	if len(errs) > 0 {
		httperr.Validation(c, errs)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var stock models.MedicineStock
	if err := db.First(&stock, id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.NotFound(c, "stock_not_found", "Stock item not found.")
			return
		}
		writeError(c, h.log, err, "Unable to update stock item.")
		return
	}

	if !h.checkReferences(c, v, stock.ID) {
		return
	}

	applyStock(&stock, v)

	if err := db.Omit("Type").Save(&stock).Error; err != nil {
		h.saveFailed(c, err, "Unable to update stock item.")
		return
	}
	if err := db.Preload("Type").First(&stock, stock.ID).Error; err != nil {
		writeError(c, h.log, err, "Unable to update stock item.")
		return
	}

	httpresp.OK(c, stock)
}

func applyStock(s *models.MedicineStock, v validators.StockValues) {
	s.MedicineTypeID = v.MedicineTypeID
	s.Type = models.MedicineType{}
	s.Code = v.Code
	s.Name = v.Name
	s.Quantity = v.Quantity
	s.IncomingPrice = v.IncomingPrice
	s.SellingPrice = v.SellingPrice
}

// checkReferences verifies the medicine type exists and the code is free.
func (h *StockHandler) checkReferences(c *gin.Context, v validators.StockValues, exceptID uint) bool {
	db := h.db.WithContext(c.Request.Context())

	var types int64
	if err := db.Model(&models.MedicineType{}).Where("id = ?", v.MedicineTypeID).Count(&types).Error; err != nil {
		writeError(c, h.log, err, "Unable to save stock item.")
		return false
	}
	if types == 0 {
		httperr.BadRequest(c, "medicine_type_not_found", "Please select a valid medicine type.")
		return false
	}

	var codes int64
	if err := db.Model(&models.MedicineStock{}).
		Where("code = ? AND id <> ?", v.Code, exceptID).
		Count(&codes).Error; err != nil {
		writeError(c, h.log, err, "Unable to save stock item.")
		return false
	}
	if codes > 0 {
		httperr.Conflict(c, "stock_exists", "A stock item with that code already exists.")
		return false
	}

	return true
}

func (h *StockHandler) saveFailed(c *gin.Context, err error, fallback string) {
	switch {
	case httperr.IsUniqueViolation(err):
		httperr.Conflict(c, "stock_exists", "A stock item with that code already exists.")
	case httperr.IsForeignKeyViolation(err):
		httperr.BadRequest(c, "medicine_type_not_found", "Please select a valid medicine type.")
	default:
		writeError(c, h.log, err, fallback)
	}
}

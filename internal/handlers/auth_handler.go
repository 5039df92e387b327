package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-admin/internal/audit"
	"github.com/BruksfildServices01/clinic-admin/internal/auth"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
	"github.com/BruksfildServices01/clinic-admin/internal/middleware"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.Issuer
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, issuer *auth.Issuer, audit *audit.Dispatcher, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer, audit: audit, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MeResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	_ = c.ShouldBindJSON(&req)

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	var admin models.Admin
	if err := h.db.WithContext(c.Request.Context()).
		Where("username = ?", username).
		First(&admin).Error; err != nil {

		if httperr.IsNotFound(err) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		writeError(c, h.log, err, "Unable to process login at the moment.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.issuer.Sign(admin.ID, admin.Username)
	if err != nil {
		writeError(c, h.log, err, "Unable to process login at the moment.")
		return
	}

	h.issuer.SetCookie(c, token)

	h.audit.Dispatch(audit.Event{
		AdminID:  &admin.ID,
		Action:   audit.ActionLogin,
		Entity:   "admin",
		EntityID: &admin.ID,
		Metadata: map[string]any{"ip": c.ClientIP()},
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.issuer.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me reports the admin behind the current cookie.
func (h *AuthHandler) Me(c *gin.Context) {
	id := middleware.AdminID(c)
	if id == nil {
		httperr.Unauthorized(c, "unauthorized", "Unauthorized.")
		return
	}

	var admin models.Admin
	if err := h.db.WithContext(c.Request.Context()).First(&admin, *id).Error; err != nil {
		if httperr.IsNotFound(err) {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized.")
			return
		}
		writeError(c, h.log, err, "Unable to load admin.")
		return
	}

	httpresp.OK(c, MeResponse{ID: admin.ID, Username: admin.Username})
}

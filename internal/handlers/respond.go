package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
	"github.com/BruksfildServices01/clinic-admin/internal/middleware"
)

// Business codes answered with 404. Every other business error is a 400.
var notFoundCodes = map[string]bool{
	"appointment_not_found": true,
	"session_not_found":     true,
}

// writeError maps usecase and gorm errors onto responses. Unknown failures
// are logged and answered with fallback.
func writeError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	if ve, ok := httperr.AsValidation(err); ok {
		httperr.Validation(c, ve.Errors)
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		if notFoundCodes[be.Code] {
			httperr.NotFound(c, be.Code, msg)
		} else {
			httperr.BadRequest(c, be.Code, msg)
		}
		return
	}

	switch {
	case httperr.IsNotFound(err):
		httperr.NotFound(c, "not_found", "Record not found.")
	case httperr.IsForeignKeyViolation(err):
		httperr.BadRequest(c, "invalid_reference", "A referenced record does not exist.")
	case httperr.IsUniqueViolation(err):
		httperr.Conflict(c, "conflict", "A record with the same value already exists.")
	default:
		log.Error(fallback,
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		httperr.Internal(c, "internal_error", fallback)
	}
}

func invalidBody(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Invalid request body.")
}

// pathID reads the :id parameter; it must be a positive integer.
func pathID(c *gin.Context, label string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+label+" id.")
		return 0, false
	}
	return uint(n), true
}

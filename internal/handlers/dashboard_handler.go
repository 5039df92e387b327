package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-admin/internal/dashboard"
	"github.com/BruksfildServices01/clinic-admin/internal/httpresp"
)

type DashboardHandler struct {
	svc *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary always answers 200; HasError flags placeholder values.
func (h *DashboardHandler) Summary(c *gin.Context) {
	httpresp.OK(c, h.svc.Summary(c.Request.Context()))
}

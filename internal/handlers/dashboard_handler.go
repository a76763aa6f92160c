package handlers

import (
	"github.com/gin-gonic/gin"

	"taxidesk/internal/middleware"
	"taxidesk/internal/services"
	"taxidesk/internal/utils"
	"taxidesk/pkg/logger"
)

type DashboardHandler struct {
	analytics *services.AnalyticsService
	logger    *logger.Logger
}

func NewDashboardHandler(analytics *services.AnalyticsService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		analytics: analytics,
		logger:    log.WithField("handler", "dashboard"),
	}
}

// Stats serves the landing page tiles, scoped for vendor logins.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.analytics.Dashboard(c.Request.Context(), middleware.GetVendorScope(c))
	if err != nil {
		h.logger.WithError(err).Error("dashboard stats failed")
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponse(c, "", stats)
}

// Traces lists the raw visit log (admin-only).
func (h *DashboardHandler) Traces(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	traces, total, err := h.analytics.ListTraces(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	utils.SuccessResponseWithMeta(c, "", traces, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

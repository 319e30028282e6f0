package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/internal/pkg/response"
	"github.com/vbook/vbook_go_server/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Dashboard 数据总览
// GET /api/v1/admin/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	resp, err := h.analyticsService.Dashboard()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, resp)
}

// Conversions VIP 转化统计
// GET /api/v1/admin/analytics/conversions
func (h *AnalyticsHandler) Conversions(c *gin.Context) {
	resp, err := h.analyticsService.ConversionStats()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, resp)
}

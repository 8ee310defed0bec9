package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopledger-api/internal/application/service"
	"github.com/sangkips/shopledger-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard metrics requests
type DashboardHandler struct {
	metricsService *service.MetricsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(metricsService *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{metricsService: metricsService}
}

// Snapshot handles getting the point-in-time business snapshot
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.metricsService.GetSnapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard metrics retrieved successfully", snapshot)
}

// MonthlyTrend handles getting the monthly sales/profit trend
func (h *DashboardHandler) MonthlyTrend(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	trend, err := h.metricsService.GetMonthlyTrend(c.Request.Context(), months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly trend retrieved successfully", trend)
}

// DailyTrend handles getting the daily sales/profit trend
func (h *DashboardHandler) DailyTrend(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	trend, err := h.metricsService.GetDailyTrend(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily trend retrieved successfully", trend)
}

// ExpenseBreakdown handles getting the per-category expense breakdown
func (h *DashboardHandler) ExpenseBreakdown(c *gin.Context) {
	breakdown, err := h.metricsService.GetExpenseBreakdown(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense breakdown retrieved successfully", breakdown)
}

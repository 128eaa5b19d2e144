package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// DailySales returns the sales summary for one day, defaulting to today.
func (h *ReportHandler) DailySales(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	summary, err := h.reportService.DailySalesSummary(date)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date, expected YYYY-MM-DD.", err.Error()))
		} else {
			utils.LogError(err, "DailySales: error from reportService.DailySalesSummary")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build sales report.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ItemSales returns per-item sales over a date range.
func (h *ReportHandler) ItemSales(c *gin.Context) {
	params := models.ReportRequestParams{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	if params.StartDate == "" || params.EndDate == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "start_date and end_date are required.", ""))
		return
	}

	rows, err := h.reportService.ItemSales(params)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date range, expected YYYY-MM-DD.", err.Error()))
		} else {
			utils.LogError(err, "ItemSales: error from reportService.ItemSales")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build item sales report.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Dashboard returns the landing-page metrics.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reportService.DashboardSummary()
	if err != nil {
		utils.LogError(err, "Dashboard: error from reportService.DashboardSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard summary.", ""))
		return
	}
	c.JSON(http.StatusOK, summary)
}

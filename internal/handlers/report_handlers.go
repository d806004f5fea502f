package handlers

import (
	"errors"
	"net/http"
	"strings"

	"retail_backend/internal/models"
	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service plus the shift service for the
// shift report ownership check.
type ReportHandler struct {
	reportService services.ReportService
	shiftService  services.ShiftService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService, ss services.ShiftService) *ReportHandler {
	return &ReportHandler{reportService: rs, shiftService: ss}
}

func reportFilters(c *gin.Context) models.ReportFilters {
	return models.ReportFilters{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
}

// GetSummary returns netted revenue, cost, profit and margin over a date
// range.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.Summary(reportFilters(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date filter, expected YYYY-MM-DD.", err.Error()))
			return
		}
		utils.LogError(err, "GetSummary: Error from reportService.Summary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build summary report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSalesReport lists every operation in a date range, newest first.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	operations, err := h.reportService.SalesReport(reportFilters(c))
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date filter, expected YYYY-MM-DD.", err.Error()))
			return
		}
		utils.LogError(err, "GetSalesReport: Error from reportService.SalesReport")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build sales report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"operations": operations})
}

// GetShiftReport returns the per-shift report. Admins can read any shift;
// a seller only their own.
func (h *ReportHandler) GetShiftReport(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	shiftID, ok := pathID(c, "id")
	if !ok {
		return
	}

	role, _ := c.Get("userRole")
	if roleStr, _ := role.(string); !strings.EqualFold(roleStr, models.RoleAdmin) {
		shift, err := h.shiftService.GetShift(shiftID)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
			return
		}
		if shift.EmployeeID != employeeID {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Access to this shift report is not allowed.", "shift belongs to another employee"))
			return
		}
	}

	report, err := h.reportService.ShiftReport(shiftID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrShiftNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Shift not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetShiftReport: Error from reportService.ShiftReport")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build shift report.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, report)
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// respondShiftError maps shift gate failures shared by sales and returns.
// Reports whether the error was handled.
func respondShiftError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrShiftRequired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeShiftRequired, "An open shift is required.", err.Error()))
	case errors.Is(err, services.ErrShiftExpired):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeShiftExpired, "Shift duration exceeded, the shift has been closed.", err.Error()))
	default:
		return false
	}
	return true
}

// CreateSale commits a sale under the seller's live shift.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}

	var req services.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.saleService.CreateSale(employeeID, storeID, req)
	if err != nil {
		if respondShiftError(c, err) {
			return
		}
		var stockErr *services.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInsufficientStock, stockErr.Error(), stockErr.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.LogError(err, "CreateSale: Error from saleService.CreateSale")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record sale.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "check_id": result.OperationID, "total": result.TotalRevenue})
}

// CreateReturn commits a return against an earlier sale of the same store.
func (h *SaleHandler) CreateReturn(c *gin.Context) {
	employeeID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}

	var req services.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.saleService.CreateReturn(employeeID, storeID, req)
	if err != nil {
		if respondShiftError(c, err) {
			return
		}
		switch {
		case errors.Is(err, services.ErrOperationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found.", err.Error()))
		case errors.Is(err, services.ErrReturnExceedsRemaining):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Return quantity exceeds what is left to return.", err.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.LogError(err, "CreateReturn: Error from saleService.CreateReturn")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record return.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "return_id": result.OperationID, "total": result.TotalRevenue})
}

// ListOpenSales lists the store's sales for a date that still have something
// left to return. Defaults to today.
func (h *SaleHandler) ListOpenSales(c *gin.Context) {
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	sales, err := h.saleService.ListOpenSales(storeID, date)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid date, expected YYYY-MM-DD.", err.Error()))
			return
		}
		utils.LogError(err, "ListOpenSales: Error from saleService.ListOpenSales")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sales.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// GetSaleLines returns the line items of one of the store's sales with
// already-returned and remaining quantities.
func (h *SaleHandler) GetSaleLines(c *gin.Context) {
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}
	operationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	lines, err := h.saleService.SaleLines(operationID, storeID)
	if err != nil {
		if errors.Is(err, services.ErrOperationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetSaleLines: Error from saleService.SaleLines")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch sale items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": lines})
}

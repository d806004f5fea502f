package handlers

import (
	"errors"
	"net/http"

	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StockHandler holds the stock service.
type StockHandler struct {
	stockService services.StockService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ss services.StockService) *StockHandler {
	return &StockHandler{stockService: ss}
}

// ReceiveStock credits incoming goods to a store or a warehouse.
func (h *StockHandler) ReceiveStock(c *gin.Context) {
	var req services.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.stockService.Receive(req); err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.LogError(err, "ReceiveStock: Error from stockService.Receive")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to receive stock.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// DistributeStock moves goods from a warehouse to a store or another
// warehouse.
func (h *StockHandler) DistributeStock(c *gin.Context) {
	var req services.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.stockService.Distribute(req); err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeInsufficientStock, stockErr.Error(), stockErr.Error()))
		case errors.Is(err, services.ErrValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		default:
			utils.LogError(err, "DistributeStock: Error from stockService.Distribute")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to distribute stock.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// GetStoreStock lists a store's stock with product names.
func (h *StockHandler) GetStoreStock(c *gin.Context) {
	storeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.stockService.StoreStock(storeID)
	if err != nil {
		utils.LogError(err, "GetStoreStock: Error from stockService.StoreStock")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch store stock.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": entries})
}

// GetWarehouseStock lists a warehouse's stock with product names.
func (h *StockHandler) GetWarehouseStock(c *gin.Context) {
	warehouseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.stockService.WarehouseStock(warehouseID)
	if err != nil {
		utils.LogError(err, "GetWarehouseStock: Error from stockService.WarehouseStock")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch warehouse stock.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": entries})
}

// GetOwnStoreStock lists the stock of the seller's own store.
func (h *StockHandler) GetOwnStoreStock(c *gin.Context) {
	storeID, ok := currentStoreID(c)
	if !ok {
		return
	}

	entries, err := h.stockService.StoreStock(storeID)
	if err != nil {
		utils.LogError(err, "GetOwnStoreStock: Error from stockService.StoreStock")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch store stock.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": entries})
}

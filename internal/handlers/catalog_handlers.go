package handlers

import (
	"errors"
	"net/http"

	"retail_backend/internal/services"
	"retail_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the catalog service.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func respondCatalogError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found.", err.Error()))
	case errors.Is(err, services.ErrArticleTaken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Product article already exists.", err.Error()))
	default:
		utils.LogError(err, action)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Request failed.", "Internal error"))
	}
}

// --- Stores ---

func (h *CatalogHandler) CreateStore(c *gin.Context) {
	var req services.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	store, err := h.catalogService.CreateStore(req)
	if err != nil {
		respondCatalogError(c, err, "CreateStore: Error from catalogService.CreateStore")
		return
	}
	c.JSON(http.StatusCreated, store)
}

func (h *CatalogHandler) GetStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	store, err := h.catalogService.GetStore(id)
	if err != nil {
		respondCatalogError(c, err, "GetStore: Error from catalogService.GetStore")
		return
	}
	c.JSON(http.StatusOK, store)
}

func (h *CatalogHandler) GetStores(c *gin.Context) {
	stores, err := h.catalogService.ListStores()
	if err != nil {
		respondCatalogError(c, err, "GetStores: Error from catalogService.ListStores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

func (h *CatalogHandler) UpdateStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.catalogService.UpdateStore(id, req); err != nil {
		respondCatalogError(c, err, "UpdateStore: Error from catalogService.UpdateStore")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CatalogHandler) DeleteStore(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteStore(id); err != nil {
		respondCatalogError(c, err, "DeleteStore: Error from catalogService.DeleteStore")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Warehouses ---

func (h *CatalogHandler) CreateWarehouse(c *gin.Context) {
	var req services.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	warehouse, err := h.catalogService.CreateWarehouse(req)
	if err != nil {
		respondCatalogError(c, err, "CreateWarehouse: Error from catalogService.CreateWarehouse")
		return
	}
	c.JSON(http.StatusCreated, warehouse)
}

func (h *CatalogHandler) GetWarehouse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	warehouse, err := h.catalogService.GetWarehouse(id)
	if err != nil {
		respondCatalogError(c, err, "GetWarehouse: Error from catalogService.GetWarehouse")
		return
	}
	c.JSON(http.StatusOK, warehouse)
}

func (h *CatalogHandler) GetWarehouses(c *gin.Context) {
	warehouses, err := h.catalogService.ListWarehouses()
	if err != nil {
		respondCatalogError(c, err, "GetWarehouses: Error from catalogService.ListWarehouses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": warehouses})
}

func (h *CatalogHandler) UpdateWarehouse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.catalogService.UpdateWarehouse(id, req); err != nil {
		respondCatalogError(c, err, "UpdateWarehouse: Error from catalogService.UpdateWarehouse")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CatalogHandler) DeleteWarehouse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteWarehouse(id); err != nil {
		respondCatalogError(c, err, "DeleteWarehouse: Error from catalogService.DeleteWarehouse")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Products ---

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	product, err := h.catalogService.CreateProduct(req)
	if err != nil {
		respondCatalogError(c, err, "CreateProduct: Error from catalogService.CreateProduct")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		respondCatalogError(c, err, "GetProduct: Error from catalogService.GetProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts()
	if err != nil {
		respondCatalogError(c, err, "GetProducts: Error from catalogService.ListProducts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.catalogService.UpdateProduct(id, req); err != nil {
		respondCatalogError(c, err, "UpdateProduct: Error from catalogService.UpdateProduct")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteProduct(id); err != nil {
		respondCatalogError(c, err, "DeleteProduct: Error from catalogService.DeleteProduct")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Categories ---

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category, err := h.catalogService.CreateCategory(req.Name)
	if err != nil {
		respondCatalogError(c, err, "CreateCategory: Error from catalogService.CreateCategory")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondCatalogError(c, err, "GetCategories: Error from catalogService.ListCategories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

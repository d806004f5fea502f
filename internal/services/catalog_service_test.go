package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCatalogService() (*catalogService, *fakeLocationRepo) {
	locations := newFakeLocationRepo()
	return &catalogService{locationRepo: locations, productRepo: newFakeProductRepo()}, locations
}

func TestCreateStoreTrimsAndActivates(t *testing.T) {
	svc, _ := newTestCatalogService()

	store, err := svc.CreateStore(StoreRequest{Name: "  Central  ", Address: "Abaya 1", Phone: "+7 701 123 45 67"})
	assert.NoError(t, err)
	assert.Equal(t, "Central", store.Name)
	assert.True(t, store.IsActive)
}

func TestCreateStoreValidation(t *testing.T) {
	svc, _ := newTestCatalogService()

	_, err := svc.CreateStore(StoreRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.CreateStore(StoreRequest{Name: "Central", Phone: "12345"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, validatePhone(""))
	assert.NoError(t, validatePhone("+7 (701) 123-45-67"))
	assert.NoError(t, validatePhone("87011234567"))
	assert.ErrorIs(t, validatePhone("555-0123"), ErrValidation)
}

func TestDeleteStoreIsSoft(t *testing.T) {
	svc, locations := newTestCatalogService()

	store, err := svc.CreateStore(StoreRequest{Name: "Central"})
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteStore(store.ID))
	stored := locations.stores[store.ID]
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, svc.DeleteStore(9999), ErrNotFound)
}

func TestCreateWarehouseKeepsArea(t *testing.T) {
	svc, _ := newTestCatalogService()

	warehouse, err := svc.CreateWarehouse(WarehouseRequest{Name: "North", Area: 1200.5})
	assert.NoError(t, err)
	assert.Equal(t, 1200.5, warehouse.Area)
	assert.True(t, warehouse.IsActive)
}

func TestCreateProductDefaults(t *testing.T) {
	svc, _ := newTestCatalogService()

	product, err := svc.CreateProduct(ProductRequest{Name: "Bread", RetailPrice: 150, PurchasePrice: 90})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.Article, "ART-"))
	assert.Equal(t, "pcs", product.Unit)
	assert.Equal(t, 5, product.MinStockLevel)
	assert.True(t, product.IsActive)
}

func TestCreateProductKeepsExplicitValues(t *testing.T) {
	svc, _ := newTestCatalogService()

	minStock := 12
	product, err := svc.CreateProduct(ProductRequest{
		Article:  "SKU-001",
		Name:     "Milk",
		Unit:     "l",
		MinStock: &minStock,
	})
	assert.NoError(t, err)
	assert.Equal(t, "SKU-001", product.Article)
	assert.Equal(t, "l", product.Unit)
	assert.Equal(t, 12, product.MinStockLevel)
}

func TestCreateProductDuplicateArticle(t *testing.T) {
	svc, _ := newTestCatalogService()

	_, err := svc.CreateProduct(ProductRequest{Article: "SKU-001", Name: "Milk"})
	assert.NoError(t, err)

	_, err = svc.CreateProduct(ProductRequest{Article: "SKU-001", Name: "Milk 2%"})
	assert.ErrorIs(t, err, ErrArticleTaken)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, _ := newTestCatalogService()

	_, err := svc.CreateCategory(" ")
	assert.ErrorIs(t, err, ErrValidation)

	category, err := svc.CreateCategory(" Dairy ")
	assert.NoError(t, err)
	assert.Equal(t, "Dairy", category.Name)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retail_backend/internal/models"
)

func newTestStockService() (*stockService, *fakeStockRepo) {
	repo := newFakeStockRepo()
	return &stockService{stockRepo: repo, db: &fakeTxBeginner{}}, repo
}

func TestReceiveStock(t *testing.T) {
	svc, repo := newTestStockService()
	storeID := int64(10)

	err := svc.Receive(ReceiveStockRequest{StoreID: &storeID, ProductID: 7, Quantity: 15})
	assert.NoError(t, err)
	assert.Equal(t, 15, repo.get(models.StoreLocation(10), 7))

	// Receipts accumulate.
	err = svc.Receive(ReceiveStockRequest{StoreID: &storeID, ProductID: 7, Quantity: 5})
	assert.NoError(t, err)
	assert.Equal(t, 20, repo.get(models.StoreLocation(10), 7))

	warehouseID := int64(3)
	err = svc.Receive(ReceiveStockRequest{WarehouseID: &warehouseID, ProductID: 7, Quantity: 40})
	assert.NoError(t, err)
	assert.Equal(t, 40, repo.get(models.WarehouseLocation(3), 7))
}

func TestReceiveStockValidation(t *testing.T) {
	svc, _ := newTestStockService()
	storeID := int64(10)

	assert.ErrorIs(t, svc.Receive(ReceiveStockRequest{ProductID: 7, Quantity: 5}), ErrValidation)
	assert.ErrorIs(t, svc.Receive(ReceiveStockRequest{StoreID: &storeID, ProductID: 7, Quantity: 0}), ErrValidation)
	assert.ErrorIs(t, svc.Receive(ReceiveStockRequest{StoreID: &storeID, ProductID: 7, Quantity: -2}), ErrValidation)
	assert.ErrorIs(t, svc.Receive(ReceiveStockRequest{StoreID: &storeID, Quantity: 5}), ErrValidation)
}

func TestDistributeMovesStock(t *testing.T) {
	svc, repo := newTestStockService()
	repo.set(models.WarehouseLocation(3), 7, 10)
	storeID := int64(10)

	err := svc.Distribute(DistributeRequest{
		FromWarehouseID: 3,
		ToStoreID:       &storeID,
		ProductID:       7,
		Quantity:        10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, repo.get(models.WarehouseLocation(3), 7))
	assert.Equal(t, 10, repo.get(models.StoreLocation(10), 7))
}

func TestDistributeToAnotherWarehouse(t *testing.T) {
	svc, repo := newTestStockService()
	repo.set(models.WarehouseLocation(3), 7, 10)
	warehouseID := int64(4)

	err := svc.Distribute(DistributeRequest{
		FromWarehouseID: 3,
		ToWarehouseID:   &warehouseID,
		ProductID:       7,
		Quantity:        4,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, repo.get(models.WarehouseLocation(3), 7))
	assert.Equal(t, 4, repo.get(models.WarehouseLocation(4), 7))
}

func TestDistributeInsufficientSource(t *testing.T) {
	svc, repo := newTestStockService()
	repo.set(models.WarehouseLocation(3), 7, 3)
	storeID := int64(10)

	err := svc.Distribute(DistributeRequest{
		FromWarehouseID: 3,
		ToStoreID:       &storeID,
		ProductID:       7,
		Quantity:        5,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)

	// Neither side moved.
	assert.Equal(t, 3, repo.get(models.WarehouseLocation(3), 7))
	assert.Equal(t, 0, repo.get(models.StoreLocation(10), 7))
}

func TestDistributeValidation(t *testing.T) {
	svc, _ := newTestStockService()
	storeID := int64(10)

	assert.ErrorIs(t, svc.Distribute(DistributeRequest{ToStoreID: &storeID, ProductID: 7, Quantity: 5}), ErrValidation)
	assert.ErrorIs(t, svc.Distribute(DistributeRequest{FromWarehouseID: 3, ProductID: 7, Quantity: 5}), ErrValidation)
	assert.ErrorIs(t, svc.Distribute(DistributeRequest{FromWarehouseID: 3, ToStoreID: &storeID, ProductID: 7, Quantity: 0}), ErrValidation)
}

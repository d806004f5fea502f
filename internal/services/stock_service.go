package services

import (
	"database/sql"
	"fmt"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
)

// --- DTOs ---

// ReceiveStockRequest is the body of POST /receipts. Exactly one of StoreID
// and WarehouseID must be set.
type ReceiveStockRequest struct {
	StoreID     *int64 `json:"store_id"`
	WarehouseID *int64 `json:"warehouse_id"`
	ProductID   int64  `json:"product_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

// DistributeRequest is the body of POST /distributions. The destination is
// either a store or another warehouse.
type DistributeRequest struct {
	FromWarehouseID int64  `json:"from_warehouse_id" binding:"required"`
	ToStoreID       *int64 `json:"to_store_id"`
	ToWarehouseID   *int64 `json:"to_warehouse_id"`
	ProductID       int64  `json:"product_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required"`
}

// StockService covers goods receiving and warehouse-to-store distribution on
// top of the stock ledger.
type StockService interface {
	Receive(req ReceiveStockRequest) error
	// Distribute moves stock from a warehouse to a store or another
	// warehouse: the source debit and the destination credit commit in one
	// transaction.
	Distribute(req DistributeRequest) error
	StoreStock(storeID int64) ([]models.StockEntry, error)
	WarehouseStock(warehouseID int64) ([]models.StockEntry, error)
}

type stockService struct {
	stockRepo repositories.StockRepository
	db        repositories.TxBeginner
}

// NewStockService creates a new instance of StockService.
func NewStockService(stockRepo repositories.StockRepository, db *sql.DB) StockService {
	return &stockService{stockRepo: stockRepo, db: repositories.NewTxBeginner(db)}
}

func (s *stockService) Receive(req ReceiveStockRequest) error {
	if (req.StoreID == nil && req.WarehouseID == nil) || req.ProductID == 0 || req.Quantity <= 0 {
		return fmt.Errorf("%w: specify the location, product and a positive quantity", ErrValidation)
	}

	var loc models.StockLocation
	if req.StoreID != nil {
		loc = models.StoreLocation(*req.StoreID)
	} else {
		loc = models.WarehouseLocation(*req.WarehouseID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.stockRepo.AddQuantity(tx, loc, req.ProductID, req.Quantity); err != nil {
		return fmt.Errorf("failed to receive stock: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stock receipt: %w", err)
	}
	return nil
}

func (s *stockService) Distribute(req DistributeRequest) error {
	if req.FromWarehouseID == 0 || req.ProductID == 0 || req.Quantity <= 0 {
		return fmt.Errorf("%w: specify the source warehouse, product and a positive quantity", ErrValidation)
	}
	if req.ToStoreID == nil && req.ToWarehouseID == nil {
		return fmt.Errorf("%w: specify the destination (store or warehouse)", ErrValidation)
	}

	source := models.WarehouseLocation(req.FromWarehouseID)
	var destination models.StockLocation
	if req.ToStoreID != nil {
		destination = models.StoreLocation(*req.ToStoreID)
	} else {
		destination = models.WarehouseLocation(*req.ToWarehouseID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the source row so the availability check and the debit serialize
	// with concurrent distributions from the same warehouse.
	available, err := s.stockRepo.GetQuantityForUpdate(tx, source, req.ProductID)
	if err != nil {
		return fmt.Errorf("failed to check warehouse stock: %w", err)
	}
	if available < req.Quantity {
		return &InsufficientStockError{ProductID: req.ProductID, Requested: req.Quantity, Available: available}
	}

	if err := s.stockRepo.SubtractQuantity(tx, source, req.ProductID, req.Quantity); err != nil {
		return fmt.Errorf("failed to debit warehouse stock: %w", err)
	}
	if err := s.stockRepo.AddQuantity(tx, destination, req.ProductID, req.Quantity); err != nil {
		return fmt.Errorf("failed to credit destination stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit distribution: %w", err)
	}
	return nil
}

func (s *stockService) StoreStock(storeID int64) ([]models.StockEntry, error) {
	entries, err := s.stockRepo.ListByLocation(models.StoreLocation(storeID))
	if err != nil {
		return nil, fmt.Errorf("failed to list store stock: %w", err)
	}
	return entries, nil
}

func (s *stockService) WarehouseStock(warehouseID int64) ([]models.StockEntry, error) {
	entries, err := s.stockRepo.ListByLocation(models.WarehouseLocation(warehouseID))
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouse stock: %w", err)
	}
	return entries, nil
}

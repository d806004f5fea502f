package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"retail_backend/internal/config"
	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
	"retail_backend/pkg/utils"
)

var (
	ErrOperationNotFound      = errors.New("sale not found or not accessible")
	ErrReturnExceedsRemaining = errors.New("return quantity exceeds the remaining returnable quantity")
)

// --- Data Transfer Objects (DTOs) ---

// SaleItemRequest is one requested line of a sale or return.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CreateSaleRequest is the body of POST /sales.
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" binding:"required"`
}

// CreateReturnRequest is the body of POST /returns.
type CreateReturnRequest struct {
	OriginalOperationID int64             `json:"original_operation_id" binding:"required"`
	Items               []SaleItemRequest `json:"items" binding:"required"`
}

// OperationResult reports a committed sale or return.
type OperationResult struct {
	OperationID  int64
	TotalRevenue float64
}

// saleLine is a priced, validated line ready to commit.
type saleLine struct {
	productID int64
	quantity  int
	price     float64
	cost      float64
	revenue   float64
	lineCost  float64
	profit    float64
}

// --- SaleService Interface ---

// SaleService is the transaction engine. Sales and returns are recorded as
// immutable operations; every commit is a single all-or-nothing database
// transaction covering the operation, its items, the stock adjustments and any
// low-stock notifications.
type SaleService interface {
	CreateSale(employeeID, storeID int64, req CreateSaleRequest) (*OperationResult, error)
	CreateReturn(employeeID, storeID int64, req CreateReturnRequest) (*OperationResult, error)
	// ListOpenSales returns the store's sales on the given date (YYYY-MM-DD)
	// that still have something left to return.
	ListOpenSales(storeID int64, date string) ([]models.Operation, error)
	// SaleLines returns the line items of one of the store's sales together
	// with already-returned and remaining quantities per product.
	SaleLines(operationID, storeID int64) ([]models.SaleLineStatus, error)
}

// --- saleService Implementation ---

type saleService struct {
	operationRepo    repositories.OperationRepository
	productRepo      repositories.ProductRepository
	stockRepo        repositories.StockRepository
	notificationRepo repositories.NotificationRepository
	shifts           ShiftService
	db               repositories.TxBeginner
	cfg              config.BusinessConfig
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(
	or repositories.OperationRepository,
	pr repositories.ProductRepository,
	sr repositories.StockRepository,
	nr repositories.NotificationRepository,
	shifts ShiftService,
	db *sql.DB,
	cfg config.BusinessConfig,
) SaleService {
	return &saleService{
		operationRepo:    or,
		productRepo:      pr,
		stockRepo:        sr,
		notificationRepo: nr,
		shifts:           shifts,
		db:               repositories.NewTxBeginner(db),
		cfg:              cfg,
	}
}

func (s *saleService) CreateSale(employeeID, storeID int64, req CreateSaleRequest) (*OperationResult, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: add items to the receipt", ErrValidation)
	}

	// An expired shift is auto-closed here and the in-flight sale rejected.
	shift, err := s.shifts.RequireLiveShift(employeeID, storeID)
	if err != nil {
		return nil, err
	}

	lines, totals, err := s.priceLines(req.Items)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	storeLoc := models.StoreLocation(storeID)

	// Lock each stock row before checking, so the check and the decrement
	// below serialize with concurrent sales of the same product.
	postQuantities := make(map[int64]int, len(lines))
	for _, line := range lines {
		available, err := s.stockRepo.GetQuantityForUpdate(tx, storeLoc, line.productID)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock for product %d: %w", line.productID, err)
		}
		if available < line.quantity {
			return nil, &InsufficientStockError{ProductID: line.productID, Requested: line.quantity, Available: available}
		}
		postQuantities[line.productID] = available - line.quantity
	}

	operation := models.Operation{
		Type:         models.OperationTypeSale,
		ShiftID:      shift.ID,
		EmployeeID:   employeeID,
		StoreID:      storeID,
		TotalRevenue: utils.RoundTo(totals.Revenue, s.cfg.MoneyDecimals),
		TotalCost:    utils.RoundTo(totals.Cost, s.cfg.MoneyDecimals),
		TotalProfit:  utils.RoundTo(totals.Profit, s.cfg.MoneyDecimals),
	}
	operationID, err := s.operationRepo.CreateOperation(tx, &operation)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale operation: %w", err)
	}

	for _, line := range lines {
		if err := s.commitLine(tx, operationID, line); err != nil {
			return nil, err
		}
		if err := s.stockRepo.SubtractQuantity(tx, storeLoc, line.productID, line.quantity); err != nil {
			return nil, fmt.Errorf("failed to decrement stock for product %d: %w", line.productID, err)
		}
	}

	for _, line := range lines {
		post := postQuantities[line.productID]
		if post < s.cfg.LowStockThreshold {
			sid := storeID
			notification := models.Notification{
				ProductID:       line.productID,
				StoreID:         &sid,
				CurrentQuantity: post,
				Threshold:       s.cfg.LowStockThreshold,
				Status:          models.NotificationUnread,
			}
			if _, err := s.notificationRepo.Create(tx, &notification); err != nil {
				return nil, fmt.Errorf("failed to create low-stock notification for product %d: %w", line.productID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}
	return &OperationResult{OperationID: operationID, TotalRevenue: operation.TotalRevenue}, nil
}

func (s *saleService) CreateReturn(employeeID, storeID int64, req CreateReturnRequest) (*OperationResult, error) {
	if req.OriginalOperationID == 0 || len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: specify the sale and items to return", ErrValidation)
	}

	original, err := s.operationRepo.GetByID(req.OriginalOperationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to fetch original operation: %w", err)
	}
	if original.StoreID != storeID || original.Type != models.OperationTypeSale {
		return nil, ErrOperationNotFound
	}

	sold, err := s.operationRepo.GetSoldQuantities(original.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sold quantities: %w", err)
	}
	returned, err := s.operationRepo.GetReturnedQuantities(original.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch returned quantities: %w", err)
	}

	// Duplicate lines of one product count against the limit together.
	requested := mergeItems(req.Items)
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: add items to return", ErrValidation)
	}
	for _, item := range requested {
		soldQty, wasSold := sold[item.ProductID]
		remaining := soldQty - returned[item.ProductID]
		if remaining < 0 {
			remaining = 0
		}
		if !wasSold || item.Quantity > remaining {
			return nil, fmt.Errorf("%w: product %d has %d left to return", ErrReturnExceedsRemaining, item.ProductID, remaining)
		}
	}

	shift, err := s.shifts.RequireLiveShift(employeeID, storeID)
	if err != nil {
		return nil, err
	}

	// Return lines are repriced at the product's current price and cost.
	lines, totals, err := s.priceLines(requested)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	originalID := original.ID
	operation := models.Operation{
		Type:                models.OperationTypeReturn,
		ShiftID:             shift.ID,
		EmployeeID:          employeeID,
		StoreID:             storeID,
		TotalRevenue:        utils.RoundTo(totals.Revenue, s.cfg.MoneyDecimals),
		TotalCost:           utils.RoundTo(totals.Cost, s.cfg.MoneyDecimals),
		TotalProfit:         utils.RoundTo(totals.Profit, s.cfg.MoneyDecimals),
		OriginalOperationID: &originalID,
	}
	operationID, err := s.operationRepo.CreateOperation(tx, &operation)
	if err != nil {
		return nil, fmt.Errorf("failed to create return operation: %w", err)
	}

	storeLoc := models.StoreLocation(storeID)
	for _, line := range lines {
		if err := s.commitLine(tx, operationID, line); err != nil {
			return nil, err
		}
		if err := s.stockRepo.AddQuantity(tx, storeLoc, line.productID, line.quantity); err != nil {
			return nil, fmt.Errorf("failed to credit stock for product %d: %w", line.productID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit return transaction: %w", err)
	}
	return &OperationResult{OperationID: operationID, TotalRevenue: operation.TotalRevenue}, nil
}

func (s *saleService) ListOpenSales(storeID int64, date string) ([]models.Operation, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, date)
	}
	ops, err := s.operationRepo.ListOpenSalesByStoreDate(storeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return ops, nil
}

func (s *saleService) SaleLines(operationID, storeID int64) ([]models.SaleLineStatus, error) {
	op, err := s.operationRepo.GetByID(operationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, fmt.Errorf("failed to fetch operation: %w", err)
	}
	if op.StoreID != storeID || op.Type != models.OperationTypeSale {
		return nil, ErrOperationNotFound
	}

	items, err := s.operationRepo.GetItems(operationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch operation items: %w", err)
	}
	returned, err := s.operationRepo.GetReturnedQuantities(operationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch returned quantities: %w", err)
	}

	statuses := make([]models.SaleLineStatus, 0, len(items))
	for _, item := range items {
		already := returned[item.ProductID]
		remaining := item.Quantity - already
		if remaining < 0 {
			remaining = 0
		}
		statuses = append(statuses, models.SaleLineStatus{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			AlreadyReturned: already,
			Remaining:       remaining,
			UnitPrice:       utils.RoundTo(item.UnitPrice, s.cfg.MoneyDecimals),
			TotalPrice:      utils.RoundTo(item.TotalPrice, s.cfg.MoneyDecimals),
		})
	}
	return statuses, nil
}

// mergeItems drops lines with no product or a non-positive quantity and sums
// quantities of repeated products, so every downstream check and mutation sees
// exactly one line per product. First-seen order is kept.
func mergeItems(items []SaleItemRequest) []SaleItemRequest {
	merged := make([]SaleItemRequest, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// priceLines resolves price and cost for each requested line. Duplicate
// product lines are merged first; lines with an unknown product are skipped;
// an empty result is a validation error.
func (s *saleService) priceLines(items []SaleItemRequest) ([]saleLine, models.OperationTotals, error) {
	var totals models.OperationTotals
	items = mergeItems(items)
	lines := make([]saleLine, 0, len(items))
	for _, item := range items {
		price, cost, err := s.productRepo.GetPriceAndCost(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, totals, fmt.Errorf("failed to fetch product %d: %w", item.ProductID, err)
		}
		revenue := price * float64(item.Quantity)
		lineCost := cost * float64(item.Quantity)
		line := saleLine{
			productID: item.ProductID,
			quantity:  item.Quantity,
			price:     price,
			cost:      cost,
			revenue:   revenue,
			lineCost:  lineCost,
			profit:    revenue - lineCost,
		}
		totals.Revenue += line.revenue
		totals.Cost += line.lineCost
		totals.Profit += line.profit
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, totals, fmt.Errorf("%w: no valid items", ErrValidation)
	}
	return lines, totals, nil
}

func (s *saleService) commitLine(tx repositories.SQLExecutor, operationID int64, line saleLine) error {
	item := models.OperationItem{
		OperationID:   operationID,
		ProductID:     line.productID,
		Quantity:      line.quantity,
		UnitPrice:     line.price,
		PurchasePrice: line.cost,
		TotalPrice:    line.revenue,
		Cost:          line.lineCost,
		Profit:        line.profit,
	}
	if _, err := s.operationRepo.CreateItem(tx, &item); err != nil {
		return fmt.Errorf("failed to create operation item for product %d: %w", line.productID, err)
	}
	return nil
}

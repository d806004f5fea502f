package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"retail_backend/internal/models"
)

// OperationRepository defines the interface for operation (sale/return)
// database access. Operations and their items are write-once: there are no
// update or delete methods.
type OperationRepository interface {
	CreateOperation(executor SQLExecutor, op *models.Operation) (int64, error)
	CreateItem(executor SQLExecutor, item *models.OperationItem) (int64, error)
	GetByID(id int64) (*models.Operation, error)
	GetItems(operationID int64) ([]models.OperationItem, error)
	// GetSoldQuantities returns productID -> quantity for one operation's lines.
	GetSoldQuantities(operationID int64) (map[int64]int, error)
	// GetReturnedQuantities sums quantities of all return operations that
	// reference the given original sale, grouped by product.
	GetReturnedQuantities(originalOperationID int64) (map[int64]int, error)
	ListByShift(shiftID int64) ([]models.Operation, error)
	SumByShiftAndType(shiftID int64, opType string) (models.OperationTotals, error)
	SumByTypeAndDateRange(opType string, filters models.ReportFilters) (models.OperationTotals, error)
	ListByDateRange(filters models.ReportFilters) ([]models.Operation, error)
	// ListOpenSalesByStoreDate returns the store's sales on the given date
	// that still have at least one line not fully returned.
	ListOpenSalesByStoreDate(storeID int64, date string) ([]models.Operation, error)
}

type operationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new instance of OperationRepository.
func NewOperationRepository(db *sql.DB) OperationRepository {
	return &operationRepository{db: db}
}

func (r *operationRepository) CreateOperation(executor SQLExecutor, op *models.Operation) (int64, error) {
	query := `INSERT INTO operations
	            (operation_type, shift_id, employee_id, store_id, total_revenue, total_cost, total_profit,
	             original_operation_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id_operation`
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		op.Type, op.ShiftID, op.EmployeeID, op.StoreID,
		op.TotalRevenue, op.TotalCost, op.TotalProfit,
		op.OriginalOperationID, op.CreatedAt,
	).Scan(&op.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating operation: %v", ErrDatabaseError, err)
	}
	return op.ID, nil
}

func (r *operationRepository) CreateItem(executor SQLExecutor, item *models.OperationItem) (int64, error) {
	query := `INSERT INTO operation_items
	            (operation_id, product_id, quantity, unit_price, purchase_price, total_price, cost, profit)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	err := executor.QueryRow(query,
		item.OperationID, item.ProductID, item.Quantity,
		item.UnitPrice, item.PurchasePrice, item.TotalPrice, item.Cost, item.Profit,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating operation item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

func (r *operationRepository) GetByID(id int64) (*models.Operation, error) {
	op := &models.Operation{}
	query := `SELECT id_operation, operation_type, shift_id, employee_id, store_id,
	                 total_revenue, total_cost, total_profit, original_operation_id, created_at
	          FROM operations
	          WHERE id_operation = $1`
	err := r.db.QueryRow(query, id).Scan(
		&op.ID, &op.Type, &op.ShiftID, &op.EmployeeID, &op.StoreID,
		&op.TotalRevenue, &op.TotalCost, &op.TotalProfit, &op.OriginalOperationID, &op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting operation by ID %d: %v", ErrDatabaseError, id, err)
	}
	return op, nil
}

func (r *operationRepository) GetItems(operationID int64) ([]models.OperationItem, error) {
	items := []models.OperationItem{}
	query := `SELECT oi.id, oi.operation_id, oi.product_id, p.name, oi.quantity,
	                 oi.unit_price, oi.purchase_price, oi.total_price, oi.cost, oi.profit
	          FROM operation_items oi
	          JOIN products p ON p.id_product = oi.product_id
	          WHERE oi.operation_id = $1
	          ORDER BY oi.product_id`
	rows, err := r.db.Query(query, operationID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying items for operation %d: %v", ErrDatabaseError, operationID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OperationItem
		if err := rows.Scan(&item.ID, &item.OperationID, &item.ProductID, &item.ProductName, &item.Quantity,
			&item.UnitPrice, &item.PurchasePrice, &item.TotalPrice, &item.Cost, &item.Profit); err != nil {
			return nil, fmt.Errorf("%w: scanning operation item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating operation item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *operationRepository) GetSoldQuantities(operationID int64) (map[int64]int, error) {
	quantities := map[int64]int{}
	rows, err := r.db.Query(`SELECT product_id, quantity FROM operation_items WHERE operation_id = $1`, operationID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sold quantities for operation %d: %v", ErrDatabaseError, operationID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("%w: scanning sold quantity: %v", ErrDatabaseError, err)
		}
		quantities[productID] += qty
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sold quantity rows: %v", ErrDatabaseError, err)
	}
	return quantities, nil
}

func (r *operationRepository) GetReturnedQuantities(originalOperationID int64) (map[int64]int, error) {
	quantities := map[int64]int{}
	query := `SELECT oi.product_id, COALESCE(SUM(oi.quantity), 0)
	          FROM operations o
	          JOIN operation_items oi ON oi.operation_id = o.id_operation
	          WHERE o.operation_type = $1 AND o.original_operation_id = $2
	          GROUP BY oi.product_id`
	rows, err := r.db.Query(query, models.OperationTypeReturn, originalOperationID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying returned quantities for operation %d: %v", ErrDatabaseError, originalOperationID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var qty int
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("%w: scanning returned quantity: %v", ErrDatabaseError, err)
		}
		quantities[productID] = qty
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating returned quantity rows: %v", ErrDatabaseError, err)
	}
	return quantities, nil
}

func (r *operationRepository) ListByShift(shiftID int64) ([]models.Operation, error) {
	ops := []models.Operation{}
	query := `SELECT id_operation, operation_type, shift_id, employee_id, store_id,
	                 total_revenue, total_cost, total_profit, original_operation_id, created_at
	          FROM operations
	          WHERE shift_id = $1 AND operation_type IN ($2, $3)
	          ORDER BY created_at`
	rows, err := r.db.Query(query, shiftID, models.OperationTypeSale, models.OperationTypeReturn)
	if err != nil {
		return nil, fmt.Errorf("%w: querying operations for shift %d: %v", ErrDatabaseError, shiftID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var op models.Operation
		if err := rows.Scan(&op.ID, &op.Type, &op.ShiftID, &op.EmployeeID, &op.StoreID,
			&op.TotalRevenue, &op.TotalCost, &op.TotalProfit, &op.OriginalOperationID, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning shift operation: %v", ErrDatabaseError, err)
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift operation rows: %v", ErrDatabaseError, err)
	}
	return ops, nil
}

func (r *operationRepository) SumByShiftAndType(shiftID int64, opType string) (models.OperationTotals, error) {
	var totals models.OperationTotals
	query := `SELECT COALESCE(SUM(total_revenue), 0), COALESCE(SUM(total_cost), 0), COALESCE(SUM(total_profit), 0)
	          FROM operations
	          WHERE shift_id = $1 AND operation_type = $2`
	err := r.db.QueryRow(query, shiftID, opType).Scan(&totals.Revenue, &totals.Cost, &totals.Profit)
	if err != nil {
		return totals, fmt.Errorf("%w: summing %s operations for shift %d: %v", ErrDatabaseError, opType, shiftID, err)
	}
	return totals, nil
}

func (r *operationRepository) SumByTypeAndDateRange(opType string, filters models.ReportFilters) (models.OperationTotals, error) {
	var totals models.OperationTotals
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT COALESCE(SUM(total_revenue), 0), COALESCE(SUM(total_cost), 0), COALESCE(SUM(total_profit), 0)
	          FROM operations WHERE operation_type = $1`)
	args := []interface{}{opType}
	argCounter := 2
	if filters.DateFrom != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND created_at::date >= $%d", argCounter))
		args = append(args, filters.DateFrom)
		argCounter++
	}
	if filters.DateTo != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND created_at::date <= $%d", argCounter))
		args = append(args, filters.DateTo)
	}
	err := r.db.QueryRow(queryBuilder.String(), args...).Scan(&totals.Revenue, &totals.Cost, &totals.Profit)
	if err != nil {
		return totals, fmt.Errorf("%w: summing %s operations: %v", ErrDatabaseError, opType, err)
	}
	return totals, nil
}

func (r *operationRepository) ListByDateRange(filters models.ReportFilters) ([]models.Operation, error) {
	ops := []models.Operation{}
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
	    SELECT o.id_operation, o.operation_type, o.shift_id, o.employee_id, o.store_id,
	           o.total_revenue, o.total_cost, o.total_profit, o.original_operation_id, o.created_at,
	           s.name AS store_name, e.full_name AS seller_name
	    FROM operations o
	    JOIN stores s ON s.id_store = o.store_id
	    JOIN employees e ON e.id_employee = o.employee_id
	    WHERE o.operation_type IN ($1, $2)`)
	args := []interface{}{models.OperationTypeSale, models.OperationTypeReturn}
	argCounter := 3
	if filters.DateFrom != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.created_at::date >= $%d", argCounter))
		args = append(args, filters.DateFrom)
		argCounter++
	}
	if filters.DateTo != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND o.created_at::date <= $%d", argCounter))
		args = append(args, filters.DateTo)
	}
	queryBuilder.WriteString(" ORDER BY o.created_at DESC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying operations for report: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var op models.Operation
		var storeName, sellerName string
		if err := rows.Scan(&op.ID, &op.Type, &op.ShiftID, &op.EmployeeID, &op.StoreID,
			&op.TotalRevenue, &op.TotalCost, &op.TotalProfit, &op.OriginalOperationID, &op.CreatedAt,
			&storeName, &sellerName); err != nil {
			return nil, fmt.Errorf("%w: scanning report operation: %v", ErrDatabaseError, err)
		}
		op.StoreName = &storeName
		op.SellerName = &sellerName
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating report operation rows: %v", ErrDatabaseError, err)
	}
	return ops, nil
}

func (r *operationRepository) ListOpenSalesByStoreDate(storeID int64, date string) ([]models.Operation, error) {
	ops := []models.Operation{}
	query := `WITH sale_products AS (
	            SELECT o.id_operation, oi.product_id, oi.quantity AS sold
	            FROM operations o
	            JOIN operation_items oi ON oi.operation_id = o.id_operation
	            WHERE o.store_id = $1 AND o.operation_type = $2 AND o.created_at::date = $3
	          ),
	          returned_by_sale_product AS (
	            SELECT r.original_operation_id AS id_operation, oi.product_id, SUM(oi.quantity) AS returned
	            FROM operations r
	            JOIN operation_items oi ON oi.operation_id = r.id_operation
	            WHERE r.operation_type = $4 AND r.original_operation_id IS NOT NULL
	            GROUP BY r.original_operation_id, oi.product_id
	          ),
	          not_fully_returned AS (
	            SELECT DISTINCT s.id_operation
	            FROM sale_products s
	            LEFT JOIN returned_by_sale_product r ON r.id_operation = s.id_operation AND r.product_id = s.product_id
	            WHERE s.sold > COALESCE(r.returned, 0)
	          )
	          SELECT o.id_operation, o.operation_type, o.shift_id, o.employee_id, o.store_id,
	                 o.total_revenue, o.total_cost, o.total_profit, o.original_operation_id, o.created_at
	          FROM operations o
	          WHERE o.id_operation IN (SELECT id_operation FROM not_fully_returned)
	          ORDER BY o.created_at`
	rows, err := r.db.Query(query, storeID, models.OperationTypeSale, date, models.OperationTypeReturn)
	if err != nil {
		return nil, fmt.Errorf("%w: querying open sales for store %d: %v", ErrDatabaseError, storeID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var op models.Operation
		if err := rows.Scan(&op.ID, &op.Type, &op.ShiftID, &op.EmployeeID, &op.StoreID,
			&op.TotalRevenue, &op.TotalCost, &op.TotalProfit, &op.OriginalOperationID, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning open sale: %v", ErrDatabaseError, err)
		}
		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating open sale rows: %v", ErrDatabaseError, err)
	}
	return ops, nil
}

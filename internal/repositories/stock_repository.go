package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"retail_backend/internal/models"
)

// StockRepository is the stock ledger: per-location, per-product quantity
// counters. Store and warehouse stock live in separate tables keyed by
// (location id, product id); a missing row means quantity 0.
//
// Mutations must run inside the caller's transaction together with the
// availability check: GetQuantityForUpdate takes a row-level lock so the
// check-then-adjust sequence serializes per (location, product) key.
type StockRepository interface {
	GetQuantity(executor SQLExecutor, loc models.StockLocation, productID int64) (int, error)
	GetQuantityForUpdate(executor SQLExecutor, loc models.StockLocation, productID int64) (int, error)
	// AddQuantity additively upserts: creates the row when missing, otherwise
	// increments it. Used for receipts, distribution credits and returns.
	AddQuantity(executor SQLExecutor, loc models.StockLocation, productID int64, qty int) error
	// SubtractQuantity decrements an existing row. Callers validate
	// availability under the same transaction first; quantity never goes
	// negative.
	SubtractQuantity(executor SQLExecutor, loc models.StockLocation, productID int64, qty int) error
	ListByLocation(loc models.StockLocation) ([]models.StockEntry, error)
}

type stockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new instance of StockRepository.
func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

// tableFor maps a location kind onto its stock table and key column.
func tableFor(loc models.StockLocation) (table, keyColumn string, err error) {
	switch loc.Kind {
	case models.LocationStore:
		return "store_product_stock", "store_id", nil
	case models.LocationWarehouse:
		return "warehouse_product_stock", "warehouse_id", nil
	default:
		return "", "", fmt.Errorf("%w: unknown location kind %q", ErrDatabaseError, loc.Kind)
	}
}

func (r *stockRepository) GetQuantity(executor SQLExecutor, loc models.StockLocation, productID int64) (int, error) {
	return r.getQuantity(executor, loc, productID, false)
}

func (r *stockRepository) GetQuantityForUpdate(executor SQLExecutor, loc models.StockLocation, productID int64) (int, error) {
	return r.getQuantity(executor, loc, productID, true)
}

func (r *stockRepository) getQuantity(executor SQLExecutor, loc models.StockLocation, productID int64, forUpdate bool) (int, error) {
	table, keyColumn, err := tableFor(loc)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT quantity FROM %s WHERE %s = $1 AND product_id = $2`, table, keyColumn)
	if forUpdate {
		query += " FOR UPDATE"
	}
	var quantity int
	err = executor.QueryRow(query, loc.ID, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: getting stock quantity for %s %d product %d: %v", ErrDatabaseError, loc.Kind, loc.ID, productID, err)
	}
	return quantity, nil
}

func (r *stockRepository) AddQuantity(executor SQLExecutor, loc models.StockLocation, productID int64, qty int) error {
	table, keyColumn, err := tableFor(loc)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, product_id, quantity, update_date)
		 VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		 ON CONFLICT (%s, product_id)
		 DO UPDATE SET quantity = %s.quantity + EXCLUDED.quantity, update_date = CURRENT_TIMESTAMP`,
		table, keyColumn, keyColumn, table,
	)
	if _, err := executor.Exec(query, loc.ID, productID, qty); err != nil {
		return fmt.Errorf("%w: adding stock for %s %d product %d: %v", ErrDatabaseError, loc.Kind, loc.ID, productID, err)
	}
	return nil
}

func (r *stockRepository) SubtractQuantity(executor SQLExecutor, loc models.StockLocation, productID int64, qty int) error {
	table, keyColumn, err := tableFor(loc)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE %s SET quantity = quantity - $1, update_date = CURRENT_TIMESTAMP WHERE %s = $2 AND product_id = $3`,
		table, keyColumn,
	)
	result, err := executor.Exec(query, qty, loc.ID, productID)
	if err != nil {
		return fmt.Errorf("%w: subtracting stock for %s %d product %d: %v", ErrDatabaseError, loc.Kind, loc.ID, productID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *stockRepository) ListByLocation(loc models.StockLocation) ([]models.StockEntry, error) {
	table, keyColumn, err := tableFor(loc)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		`SELECT p.id_product, p.name, st.quantity
		 FROM %s st
		 JOIN products p ON p.id_product = st.product_id
		 WHERE st.%s = $1
		 ORDER BY p.name`,
		table, keyColumn,
	)
	rows, err := r.db.Query(query, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying stock for %s %d: %v", ErrDatabaseError, loc.Kind, loc.ID, err)
	}
	defer rows.Close()

	entries := []models.StockEntry{}
	for rows.Next() {
		var e models.StockEntry
		if err := rows.Scan(&e.ProductID, &e.ProductName, &e.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning stock entry: %v", ErrDatabaseError, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

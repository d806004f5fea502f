package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"retail_backend/internal/models"
)

// NotificationRepository defines the interface for low-stock notification access.
type NotificationRepository interface {
	Create(executor SQLExecutor, n *models.Notification) (int64, error)
	List(onlyUnread bool) ([]models.Notification, error)
	MarkRead(executor SQLExecutor, id int64) error
	// ListLowStock reports current store and warehouse quantities that sit
	// under the product's own minimum stock level. Dashboard view; independent
	// of stored notification rows.
	ListLowStock() ([]models.LowStockEntry, error)
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(executor SQLExecutor, n *models.Notification) (int64, error) {
	query := `INSERT INTO notifications (product_id, store_id, warehouse_id, current_quantity, threshold, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`
	if n.Status == "" {
		n.Status = models.NotificationUnread
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		n.ProductID, n.StoreID, n.WarehouseID, n.CurrentQuantity, n.Threshold, n.Status, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating notification: %v", ErrDatabaseError, err)
	}
	return n.ID, nil
}

func (r *notificationRepository) List(onlyUnread bool) ([]models.Notification, error) {
	notifications := []models.Notification{}
	query := `SELECT n.id, n.product_id, p.name, n.store_id, n.warehouse_id,
	                 COALESCE(s.name, w.name, '') AS location_name,
	                 n.current_quantity, n.threshold, n.status, n.created_at
	          FROM notifications n
	          JOIN products p ON p.id_product = n.product_id
	          LEFT JOIN stores s ON s.id_store = n.store_id
	          LEFT JOIN warehouses w ON w.id_warehouse = n.warehouse_id`
	if onlyUnread {
		query += ` WHERE n.status = 'unread'`
	}
	query += ` ORDER BY n.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notifications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.ProductID, &n.ProductName, &n.StoreID, &n.WarehouseID,
			&n.LocationName, &n.CurrentQuantity, &n.Threshold, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notification rows: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`UPDATE notifications SET status = $1 WHERE id = $2`, models.NotificationRead, id)
	if err != nil {
		return fmt.Errorf("%w: marking notification %d read: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) ListLowStock() ([]models.LowStockEntry, error) {
	entries := []models.LowStockEntry{}
	query := `SELECT p.name, p.id_product, s.name AS location_name, sps.quantity, sps.store_id, NULL::int AS warehouse_id
	          FROM store_product_stock sps
	          JOIN products p ON p.id_product = sps.product_id
	          JOIN stores s ON s.id_store = sps.store_id
	          WHERE sps.quantity < p.min_stock_level AND sps.quantity >= 0
	          UNION ALL
	          SELECT p.name, p.id_product, w.name, wps.quantity, NULL::int, wps.warehouse_id
	          FROM warehouse_product_stock wps
	          JOIN products p ON p.id_product = wps.product_id
	          JOIN warehouses w ON w.id_warehouse = wps.warehouse_id
	          WHERE wps.quantity < p.min_stock_level AND wps.quantity >= 0
	          ORDER BY quantity ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying low stock: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.LowStockEntry
		var storeID, warehouseID sql.NullInt64
		if err := rows.Scan(&e.ProductName, &e.ProductID, &e.LocationName, &e.Quantity, &storeID, &warehouseID); err != nil {
			return nil, fmt.Errorf("%w: scanning low stock entry: %v", ErrDatabaseError, err)
		}
		if storeID.Valid {
			id := storeID.Int64
			e.StoreID = &id
		}
		if warehouseID.Valid {
			id := warehouseID.Int64
			e.WarehouseID = &id
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating low stock rows: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

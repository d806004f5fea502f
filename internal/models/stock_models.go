package models

import "time"

// LocationKind discriminates the two stock-holding location types.
type LocationKind string

const (
	LocationStore     LocationKind = "store"
	LocationWarehouse LocationKind = "warehouse"
)

// StockLocation addresses one stock-holding location.
type StockLocation struct {
	Kind LocationKind
	ID   int64
}

// StoreLocation builds a store stock location.
func StoreLocation(id int64) StockLocation {
	return StockLocation{Kind: LocationStore, ID: id}
}

// WarehouseLocation builds a warehouse stock location.
func WarehouseLocation(id int64) StockLocation {
	return StockLocation{Kind: LocationWarehouse, ID: id}
}

// StockEntry is the per-location, per-product quantity counter. Quantity must
// stay >= 0; a zero-quantity row is valid and never deleted.
type StockEntry struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Notification statuses.
const (
	NotificationUnread = "unread"
	NotificationRead   = "read"
)

// Notification is a low-stock alert raised automatically when a sale drops a
// store quantity below the configured threshold.
type Notification struct {
	ID              int64     `json:"id" db:"id"`
	ProductID       int64     `json:"product_id" db:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	StoreID         *int64    `json:"store_id,omitempty" db:"store_id"`
	WarehouseID     *int64    `json:"warehouse_id,omitempty" db:"warehouse_id"`
	LocationName    string    `json:"location_name,omitempty"`
	CurrentQuantity int       `json:"current_quantity" db:"current_quantity"`
	Threshold       int       `json:"threshold" db:"threshold"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// LowStockEntry is a dashboard row: a location whose quantity of a product is
// under that product's minimum stock level.
type LowStockEntry struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	StoreID      *int64 `json:"store_id,omitempty"`
	WarehouseID  *int64 `json:"warehouse_id,omitempty"`
	LocationName string `json:"location_name"`
	Quantity     int    `json:"quantity"`
}

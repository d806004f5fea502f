package models

import "time"

// Operation types.
const (
	OperationTypeSale   = "sale"
	OperationTypeReturn = "return"
)

// Operation is an immutable financial transaction record: either a sale or a
// return. Returns reference the original sale through OriginalOperationID and
// are never edits to it.
type Operation struct {
	ID                  int64     `json:"id" db:"id_operation"`
	Type                string    `json:"operation_type" db:"operation_type"`
	ShiftID             int64     `json:"shift_id" db:"shift_id"`
	EmployeeID          int64     `json:"employee_id" db:"employee_id"`
	StoreID             int64     `json:"store_id" db:"store_id"`
	TotalRevenue        float64   `json:"total_revenue" db:"total_revenue"`
	TotalCost           float64   `json:"total_cost" db:"total_cost"`
	TotalProfit         float64   `json:"total_profit" db:"total_profit"`
	OriginalOperationID *int64    `json:"original_operation_id,omitempty" db:"original_operation_id"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`

	StoreName  *string `json:"store_name,omitempty"`
	SellerName *string `json:"seller_name,omitempty"`
}

// OperationItem is one line of an Operation. Owned exclusively by its
// Operation; immutable once written.
type OperationItem struct {
	ID            int64   `json:"id" db:"id"`
	OperationID   int64   `json:"operation_id" db:"operation_id"`
	ProductID     int64   `json:"product_id" db:"product_id"`
	ProductName   string  `json:"product_name,omitempty"`
	Quantity      int     `json:"quantity" db:"quantity"`
	UnitPrice     float64 `json:"unit_price" db:"unit_price"`
	PurchasePrice float64 `json:"purchase_price" db:"purchase_price"`
	TotalPrice    float64 `json:"total_price" db:"total_price"`
	Cost          float64 `json:"cost" db:"cost"`
	Profit        float64 `json:"profit" db:"profit"`
}

// SaleLineStatus describes one line of a sale together with how much of it has
// already been returned. Drives the return form.
type SaleLineStatus struct {
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	AlreadyReturned int     `json:"already_returned"`
	Remaining       int     `json:"remaining"`
	UnitPrice       float64 `json:"unit_price"`
	TotalPrice      float64 `json:"total_price"`
}

package models

// Category groups products.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" binding:"required"`
}

// Product is a sellable item. Prices are money values rounded to the
// configured precision when serialized.
type Product struct {
	ID            int64   `json:"id" db:"id_product"`
	Article       string  `json:"article" db:"article"`
	Name          string  `json:"name" db:"name" binding:"required"`
	CategoryID    *int64  `json:"category_id,omitempty" db:"category_id"`
	CategoryName  *string `json:"category_name,omitempty"`
	Unit          string  `json:"unit" db:"unit"`
	PurchasePrice float64 `json:"purchase_price" db:"purchase_price"`
	RetailPrice   float64 `json:"retail_price" db:"retail_price"`
	MinStockLevel int     `json:"min_stock" db:"min_stock_level"`
	IsActive      bool    `json:"active" db:"is_active"`
}

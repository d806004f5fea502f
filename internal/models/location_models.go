package models

// Store is a retail point of sale.
type Store struct {
	ID       int64  `json:"id" db:"id_store"`
	Name     string `json:"name" db:"name" binding:"required"`
	Address  string `json:"address" db:"address"`
	Phone    string `json:"phone" db:"phone"`
	IsActive bool   `json:"active" db:"is_active"`
}

// Warehouse is a storage location that distributes stock to stores.
type Warehouse struct {
	ID       int64   `json:"id" db:"id_warehouse"`
	Name     string  `json:"name" db:"name" binding:"required"`
	Address  string  `json:"address" db:"address"`
	Phone    string  `json:"phone" db:"phone"`
	Area     float64 `json:"area" db:"area"`
	IsActive bool    `json:"active" db:"is_active"`
}
